package router

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(name))
	}
}

func newTestRouter(buf *bytes.Buffer) *Router {
	r := New(slog.New(slog.NewTextHandler(buf, nil)))
	r.POST("/api/v1/jobs", named("create"))
	r.GET("/api/v1/jobs", named("list"))
	r.GET("/api/v1/jobs/*/errors", named("errors"))
	r.GET("/api/v1/jobs/*/outputs", named("outputs"))
	r.GET("/api/v1/jobs/*", named("get"))
	r.Handle(http.MethodGet, "/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	}))
	return r
}

func TestRouter_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(&buf)

	tests := []struct {
		method, path string
		wantStatus   int
		wantBody     string
	}{
		{http.MethodPost, "/api/v1/jobs", http.StatusOK, "create"},
		{http.MethodGet, "/api/v1/jobs", http.StatusOK, "list"},
		{http.MethodGet, "/api/v1/jobs/abc", http.StatusOK, "get"},
		{http.MethodGet, "/api/v1/jobs/abc/errors", http.StatusOK, "errors"},
		{http.MethodGet, "/api/v1/jobs/abc/outputs", http.StatusOK, "outputs"},
		{http.MethodGet, "/metrics", http.StatusOK, "metrics"},
		{http.MethodDelete, "/api/v1/jobs", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodPost, "/api/v1/jobs/abc/errors", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodGet, "/api/v2/jobs", http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v2/nothing", nil))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "path=/api/v2/nothing")
	assert.Contains(t, out, "status=404")
}

func TestRouter_Registration(t *testing.T) {
	r := newTestRouter(&bytes.Buffer{})

	assert.Contains(t, r.Routes(), "GET:/api/v1/jobs/*")
	assert.True(t, r.Paths()["/metrics"])
	require.Len(t, r.wildcards, 3)
	assert.Equal(t, "/api/v1/jobs/*/errors", r.wildcards[0])
}

func TestMatchWildcardRoute(t *testing.T) {
	assert.True(t, matchWildcardRoute("/swagger/index.html", "/swagger/*"))
	assert.True(t, matchWildcardRoute("/swagger/a/b.js", "/swagger/*"))
	assert.False(t, matchWildcardRoute("/swagger", "/swagger/*"))
	assert.True(t, matchWildcardRoute("/api/v1/jobs/x/errors", "/api/v1/jobs/*/errors"))
	assert.False(t, matchWildcardRoute("/api/v1/jobs/x/outputs", "/api/v1/jobs/*/errors"))
	assert.False(t, matchWildcardRoute("/api/v1/jobs/x/errors/y", "/api/v1/jobs/*/errors"))
}

func TestPathParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/abc-123/errors", nil)
	assert.Equal(t, "abc-123", PathParam(req, 3))
	assert.Equal(t, "errors", PathParam(req, 4))
	assert.Equal(t, "", PathParam(req, 9))
}

func TestServer(t *testing.T) {
	r := New(nil)
	srv := r.Server(":0", 0)
	assert.Equal(t, ":0", srv.Addr)
	assert.Same(t, r, srv.Handler)
}
