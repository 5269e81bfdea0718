// Package api implements the svgstack HTTP API.
//
// The API exposes the pipeline operations (stack, rescale, png) and a
// small record store over JSON and raw SVG bodies. It is served by
// "svgstack serve" and shares the CLI's pipeline runner, so results are
// cached the same way.
//
// # Routes
//
//	GET    /healthz
//	POST   /v1/stack              {"svg1", "svg2", "horizontally", "separator", "unit", "minify"}
//	POST   /v1/rescale            {"svg", "scale"}
//	POST   /v1/png?dpi=&format=   raw SVG body; format is "png" (default) or "tag"
//	GET    /v1/records?tag=
//	POST   /v1/records            record JSON
//	GET    /v1/records/{name}     record JSON, decompressed
//	GET    /v1/records/{name}/svg
//	GET    /v1/records/{name}/png?dpi=
//	DELETE /v1/records/{name}
//
// Errors are JSON objects {"code", "message"}; INVALID_* codes map to 400,
// NOT_FOUND to 404, UNSUPPORTED to 501 and everything else to 500.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/svgstack/pkg/observability"
	"github.com/matzehuels/svgstack/pkg/pipeline"
	"github.com/matzehuels/svgstack/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 32 << 20

// Server holds the dependencies shared by all handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	stats  *observability.Counters
}

// New creates a server. A nil runner gets an uncached runner, a nil store
// an in-memory one, and a nil logger log.Default().
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if st == nil {
		st = store.NewMemory()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// WithStats exposes c on GET /v1/stats.
func (s *Server) WithStats(c *observability.Counters) *Server {
	s.stats = c
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stack", s.handleStack)
		r.Post("/rescale", s.handleRescale)
		r.Post("/png", s.handlePNG)
		if s.stats != nil {
			r.Get("/stats", s.handleStats)
		}

		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.handleListRecords)
			r.Post("/", s.handlePutRecord)
			r.Get("/{name}", s.handleGetRecord)
			r.Get("/{name}/svg", s.handleRecordSVG)
			r.Get("/{name}/png", s.handleRecordPNG)
			r.Delete("/{name}", s.handleDeleteRecord)
		})
	})
	return r
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, duration)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", duration.Round(time.Microsecond))
	})
}

// HTTPServer returns an http.Server serving the API on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
