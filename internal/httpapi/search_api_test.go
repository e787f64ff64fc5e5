package httpapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/Yonajim/NPUPlatform/internal/creation"
	"github.com/Yonajim/NPUPlatform/internal/search"
)

type stubSearcher struct {
	out []creation.Creation
	err error
}

func (s *stubSearcher) Search(_ context.Context, _ string) ([]creation.Creation, error) {
	return s.out, s.err
}

func newSearchClient(t *testing.T, reg *stubSearcher) *apiClient {
	t.Helper()
	api := NewSearchAPI(search.NewService(reg), ReadyProbe{}, testLogger(), "test")
	return newClient(t, api.Handler())
}

func TestSearchRelayPassesResultsThrough(t *testing.T) {
	c := newSearchClient(t, &stubSearcher{out: []creation.Creation{{ID: "c1", Title: "Sky Whale"}}})

	resp := c.get("/search/whale", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	out := decode[[]creation.Creation](t, resp)
	if len(out) != 1 || out[0].ID != "c1" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestSearchRelayBlankTermIsBadRequest(t *testing.T) {
	c := newSearchClient(t, &stubSearcher{})

	resp := c.get("/search/%20", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", resp.StatusCode)
	}
}

func TestSearchRelayRegistryOutage(t *testing.T) {
	c := newSearchClient(t, &stubSearcher{err: creation.ErrUnavailable})

	resp := c.get("/search/whale", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", resp.StatusCode)
	}
}
