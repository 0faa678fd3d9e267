// Package httpapi exposes game sessions over a JSON HTTP API.
//
// Routes:
//   - GET  /health, GET /difficulties, GET /scores
//   - POST /sessions, GET/DELETE /sessions/{id}
//   - POST /sessions/{id}/guess, /round, /restart
//   - PUT  /sessions/{id}/difficulty, /mode
//
// Sessions live in memory. Each one is guarded by its own mutex because
// handlers and deferred round resets run on different goroutines.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
	"github.com/vovakirdan/huematch/internal/storage"
)

// Defaults for Options.
const (
	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 30 * time.Minute
)

// ScheduleFunc runs f once after d. time.AfterFunc is the production
// implementation; tests substitute a manual clock.
type ScheduleFunc func(d time.Duration, f func())

// Options configures a Server.
type Options struct {
	Config      config.GameConfig
	Store       *storage.Store // Nil keeps bests in memory and skips history
	Logger      *log.Logger    // Nil discards logs
	Seed        int64          // Non-zero makes session seeds deterministic
	MaxSessions int
	SessionTTL  time.Duration
	Schedule    ScheduleFunc
}

// Server bundles the router and the live sessions.
type Server struct {
	r        *chi.Mux
	opts     Options
	logger   *log.Logger
	schedule ScheduleFunc

	mu       sync.Mutex
	sessions map[string]*liveSession
	seeds    int64
	bests    map[string]game.PersistentStore // in-memory bests by player
	http     *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	schedule := opts.Schedule
	if schedule == nil {
		schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}

	s := &Server{
		r:        chi.NewRouter(),
		opts:     opts,
		logger:   logger,
		schedule: schedule,
		sessions: make(map[string]*liveSession),
		bests:    make(map[string]game.PersistentStore),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/difficulties", s.handleDifficulties)
	s.r.Get("/scores", s.handleScores)

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/guess", s.handleGuess)
			r.Post("/round", s.handleNewRound)
			r.Post("/restart", s.handleRestart)
			r.Put("/difficulty", s.handleDifficulty)
			r.Put("/mode", s.handleMode)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() http.Handler { return s.r }

// ListenAndServe serves HTTP on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.saveAll()
		return s.http.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
