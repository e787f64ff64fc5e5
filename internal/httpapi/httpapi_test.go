package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/Yonajim/NPUPlatform/internal/auth"
	"github.com/Yonajim/NPUPlatform/internal/creation"
)

const testSecret = "test-secret-test-secret"

type apiClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, h http.Handler) *apiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &apiClient{baseURL: srv.URL, client: srv.Client(), t: t}
}

func newAuthService() *auth.Service {
	issuer := auth.NewTokenIssuer(testSecret, "npuplatform-auth", "npuplatform", 30*time.Minute)
	revoked := auth.NewRevocationList()
	verifier := auth.NewTokenVerifier(testSecret, "npuplatform-auth", "npuplatform", auth.WithRevocations(revoked))
	return auth.NewService(auth.NewInMemory(), issuer, verifier, revoked)
}

func newAuthClient(t *testing.T) *apiClient {
	t.Helper()
	api := NewAuthAPI(newAuthService(), ReadyProbe{}, testLogger(), "test")
	return newClient(t, api.Handler())
}

// memImages is an in-process image store for handler tests.
type memImages struct {
	saved map[string]string
}

func newMemImages() *memImages { return &memImages{saved: make(map[string]string)} }

func (m *memImages) Save(_ context.Context, key, contentType string, _ io.Reader, _ int64) error {
	m.saved[key] = contentType
	return nil
}

func (m *memImages) Delete(_ context.Context, key string) error {
	delete(m.saved, key)
	return nil
}

func (m *memImages) URL(key string) string { return "http://images.local/npu/" + key }

func newCreationClient(t *testing.T) *apiClient {
	t.Helper()
	svc := creation.NewService(creation.NewInMemory(), newMemImages())
	api := NewCreationAPI(svc, ReadyProbe{}, testLogger(), "test")
	return newClient(t, api.Handler())
}

func (c *apiClient) do(method, path string, body io.Reader, headers map[string]string) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func (c *apiClient) post(path string, body any, headers map[string]string) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json"
	return c.do(http.MethodPost, path, bytes.NewReader(payload), headers)
}

func (c *apiClient) get(path string, headers map[string]string) *http.Response {
	c.t.Helper()
	return c.do(http.MethodGet, path, nil, headers)
}

type filePart struct {
	field       string
	name        string
	contentType string
	data        []byte
}

// multipartBody builds a multipart form with string fields and an
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, file *filePart) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		hdr.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(file.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func (c *apiClient) multipart(method, path string, fields map[string]string, file *filePart) *http.Response {
	c.t.Helper()
	body, contentType := multipartBody(c.t, fields, file)
	return c.do(method, path, body, map[string]string{"Content-Type": contentType})
}

func decode[T any](t *testing.T, r *http.Response) T {
	t.Helper()
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}
