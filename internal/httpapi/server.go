// Package httpapi is the HTTP surface: the small demo endpoints, headless
// simulation (JSON and PNG) and read access to the run journal.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-flight/internal/config"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

// Limits on client-controlled work.
const (
	MaxDelay     = 5 * time.Second
	MaxSimTicks  = 10000
	DefaultTicks = 200
	maxEchoBytes = 1 << 20
)

// Options configures a Server.
type Options struct {
	// Store enables /runs. Nil disables the journal endpoints.
	Store *storage.Store

	// Config supplies the field and default theme for /sim.
	// Nil means the built-in defaults.
	Config *config.Holder

	// Theme overrides the configured default theme when set.
	Theme string

	Logger *log.Logger
}

// Server bundles the router and its dependencies.
type Server struct {
	r      *chi.Mux
	store  *storage.Store
	cfg    *config.Holder
	theme  string
	logger *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewHolder("", config.DefaultFlightConfig(), logger)
	}

	s := &Server{r: chi.NewRouter(), store: opts.Store, cfg: cfg, theme: opts.Theme, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))

	s.r.Get("/", s.handleHello)
	s.r.Post("/echo", s.handleEcho)
	s.r.Get("/hello/{name}", s.handleHelloName)
	s.r.Get("/users", s.handleUsers)
	s.r.Get("/users/{id}", s.handleUser)
	s.r.Get("/delayed/{seconds}", s.handleDelayed)

	s.r.Get("/themes", s.handleThemes)
	s.r.Get("/sim", s.handleSim)
	s.r.Get("/sim.png", s.handleSimPNG)

	s.r.Route("/runs", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.handleRuns)
		r.Get("/{id}", s.handleRun)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// requireStore answers 404 when the journal is disabled.
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "journal_disabled"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
