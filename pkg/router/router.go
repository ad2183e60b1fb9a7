// Package router is a small method-aware router over http.ServeMux with
// trailing and per-segment "*" wildcards.
package router

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type Router struct {
	mux       *http.ServeMux
	routes    map[string]http.Handler // key = METHOD:PATH
	paths     map[string]bool         // track registered paths
	wildcards []string                // wildcard paths in registration order
	logger    *slog.Logger
}

// New creates a router that logs each request through logger.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]http.Handler),
		paths:  make(map[string]bool),
		logger: logger,
	}

	// Catch-all handler dispatching every path
	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		r.dispatch(lrw, req)

		r.logger.LogAttrs(req.Context(), levelFor(lrw.statusCode), "http request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", lrw.statusCode),
			slog.Duration("duration", time.Since(start)),
		)
	})

	return r
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.routes[req.Method+":"+req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}

	// Wildcard routes are tried in registration order, so register the
	// more specific ones first.
	methodMismatch := r.paths[req.URL.Path]
	for _, routePath := range r.wildcards {
		if !matchWildcardRoute(req.URL.Path, routePath) {
			continue
		}
		if h, ok := r.routes[req.Method+":"+routePath]; ok {
			h.ServeHTTP(w, req)
			return
		}
		methodMismatch = true
	}

	if methodMismatch {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

// matchWildcardRoute checks if a request path matches a wildcard route pattern
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	// A trailing wildcard matches one or more remaining segments
	if routeSegments[len(routeSegments)-1] == "*" {
		if len(requestSegments) < len(routeSegments) {
			return false
		}
		for i := 0; i < len(routeSegments)-1; i++ {
			if routeSegments[i] != "*" && requestSegments[i] != routeSegments[i] {
				return false
			}
		}
		return true
	}

	if len(requestSegments) != len(routeSegments) {
		return false
	}
	for i, routeSegment := range routeSegments {
		if routeSegment == "*" {
			continue
		}
		if requestSegments[i] != routeSegment {
			return false
		}
	}
	return true
}

// PathParam returns the request path segment at index, e.g. 3 for the job id
// in /api/v1/jobs/{id}/errors.
func PathParam(req *http.Request, index int) string {
	segments := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	if index < 0 || index >= len(segments) {
		return ""
	}
	return segments[index]
}

// --- Register paths ---

// Handle registers an http.Handler for method and path.
func (r *Router) Handle(method, path string, handler http.Handler) {
	key := method + ":" + path
	r.routes[key] = handler
	if !r.paths[path] && strings.Contains(path, "*") {
		r.wildcards = append(r.wildcards, path)
	}
	r.paths[path] = true
}

func (r *Router) register(method, path string, handler HandlerFunc) {
	r.Handle(method, path, http.HandlerFunc(handler))
}

func (r *Router) GET(path string, handler HandlerFunc)   { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)  { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)   { r.register(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc) { r.register(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Getter methods for testing
func (r *Router) Routes() map[string]http.Handler {
	return r.routes
}

func (r *Router) Paths() map[string]bool {
	return r.paths
}

// ServeHTTP lets the router serve as the server's root handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Server returns an http.Server for addr with the router as its handler.
func (r *Router) Server(addr string, readTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: readTimeout,
	}
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func levelFor(code int) slog.Level {
	switch {
	case code >= 500:
		return slog.LevelError
	case code >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
