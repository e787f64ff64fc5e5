// Package remote is the HTTP consumer of the creation registry used by
// the score ledger (existence check) and the search relay. It is the
// only place that talks across the service boundary, and its contract
// is deliberately strict: a registry 404 is the single definitive
// "does not exist" signal; every other failure — refused connection,
// timeout, 5xx, undecodable body — surfaces as
// creation.ErrUnavailable and must never be read as absence.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Yonajim/NPUPlatform/internal/creation"
	"github.com/Yonajim/NPUPlatform/internal/obs"
)

const (
	defaultTimeout = 5 * time.Second
	maxAttempts    = 3
	baseBackoff    = 100 * time.Millisecond
)

// Client calls the creation registry over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches one creation by id. creation.ErrNotFound reports
// definitive absence; creation.ErrUnavailable reports that the
// registry could not answer.
func (c *Client) Get(ctx context.Context, id string) (*creation.Creation, error) {
	var rec creation.Creation
	err := c.getJSON(ctx, "/creations/"+url.PathEscape(id), &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Search forwards a search term and returns the registry's result
// unchanged.
func (c *Client) Search(ctx context.Context, term string) ([]creation.Creation, error) {
	out := make([]creation.Creation, 0)
	err := c.getJSON(ctx, "/creations/search/"+url.PathEscape(term), &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// getJSON performs a GET with bounded retry. Only transient failures
// are retried; a 404 or 400 is definitive and returns immediately.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				obs.ObserveUpstream("creations", "canceled")
				return fmt.Errorf("%w: %v", creation.ErrUnavailable, ctx.Err())
			}
		}

		definitive, err := c.doOnce(ctx, path, dst)
		if err == nil {
			obs.ObserveUpstream("creations", "ok")
			return nil
		}
		if definitive {
			obs.ObserveUpstream("creations", "not_found")
			return err
		}
		lastErr = err
	}
	obs.ObserveUpstream("creations", "unavailable")
	return lastErr
}

// doOnce runs a single attempt. The bool reports whether the outcome
// is definitive (success path excluded) and retrying would be wrong.
func (c *Client) doOnce(ctx context.Context, path string, dst any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return true, fmt.Errorf("%w: %v", creation.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", creation.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return false, fmt.Errorf("%w: decode response: %v", creation.ErrUnavailable, err)
		}
		return false, nil
	case resp.StatusCode == http.StatusNotFound:
		return true, creation.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return true, creation.ErrInvalidInput
	default:
		return false, fmt.Errorf("%w: registry returned %d", creation.ErrUnavailable, resp.StatusCode)
	}
}
