// Package server exposes the roadmap store over HTTP: a small JSON API
// consumed by the CLI and the in-page editor, plus server-rendered pages
// for browsing degrees and viewing, editing, and exporting roadmaps.
package server

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/utrgv-dp/roadmap/pkg/cache"
	"github.com/utrgv-dp/roadmap/pkg/catalog"
	"github.com/utrgv-dp/roadmap/pkg/render"
	"github.com/utrgv-dp/roadmap/pkg/store"
)

// Server wires the store, the read cache, and the renderer behind a
// chi router.
type Server struct {
	store    store.Store
	cache    cache.Cache
	cacheTTL time.Duration
	exporter *render.Exporter
	pageSize int
	logger   *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCache enables read-through caching of listings and collections.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithExporter replaces the PDF exporter, mainly for tests.
func WithExporter(e *render.Exporter) Option {
	return func(s *Server) { s.exporter = e }
}

// WithPageSize sets the browser page size.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Server over a store.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		exporter: render.NewExporter(),
		pageSize: catalog.DefaultPageSize,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recover)

	r.Route("/api", func(r chi.Router) {
		r.Use(noStore)
		r.Get("/colleges-degrees", s.handleListings)
		r.Put("/update-course", s.handleUpdateCourse)
		r.Get("/{courseType}", s.handleRoadmaps)
	})

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleBrowser)
	r.Get("/roadmap", s.handleRoadmapPage)
	r.Get("/roadmap/export", s.handleExport)

	static, err := fs.Sub(render.StaticFS(), "static")
	if err != nil {
		// The assets are embedded; a missing subtree is a build defect.
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return r
}

// noStore disables client caching of API responses so edits are always
// re-read.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
