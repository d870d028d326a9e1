// Package server exposes layout documents over a JSON HTTP API.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/layouts
//	POST   /api/layouts
//	GET    /api/layouts/{id}
//	PUT    /api/layouts/{id}
//	DELETE /api/layouts/{id}
//	GET    /api/layouts/{id}/view?width=&row_height=
//	POST   /api/layouts/{id}/resize      {"left":0,"right":1,"delta":2}
//	POST   /api/layouts/{id}/move        {"id":3,"target":{"placement":"before","component":1}}
//	POST   /api/layouts/{id}/normalize
//	GET    /api/layouts/{id}/render.{svg,dot,png}
//
// Mutations run load-mutate-save under one process-wide lock, so concurrent
// requests against the same store never interleave inside this process.
// Errors are returned as {"error":{"code":"...","message":"..."}} with the
// status chosen from the error code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/store"
	"github.com/matzehuels/rowgrid/pkg/view"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache caches rendered artifacts and views.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithGridOptions sets the options applied to every loaded layout.
// grid.WithStrictSizes is always added.
func WithGridOptions(opts ...grid.Option) Option {
	return func(s *Server) { s.gridOpts = opts }
}

// WithViewOptions sets the default view geometry.
func WithViewOptions(o view.Options) Option {
	return func(s *Server) { s.viewOpts = o }
}

// Server is the HTTP API.
type Server struct {
	store    store.Store
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger
	gridOpts []grid.Option
	viewOpts view.Options

	mu     sync.Mutex
	router chi.Router
}

// New creates a server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		logger:   log.New(io.Discard),
		viewOpts: view.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	// Every mutation is persisted, so undersized results must be rejected.
	s.gridOpts = append(slices.Clone(s.gridOpts), grid.WithStrictSizes())
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/layouts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/view", s.handleView)
			r.Post("/resize", s.handleResize)
			r.Post("/move", s.handleMove)
			r.Post("/normalize", s.handleNormalize)
			r.Get("/render.{format}", s.handleRender)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
