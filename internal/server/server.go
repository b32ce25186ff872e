package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/frecd/internal/frecency"
	"github.com/lazypower/frecd/internal/history"
)

// Server is the frecd HTTP API server. It owns the mutex around the
// frecency store — the store itself is single-writer — and the debounced
// background save that flushes rankings to disk after mutations settle.
type Server struct {
	mu      sync.Mutex
	store   *frecency.Store
	hist    *history.DB // nil when history is disabled
	router  chi.Router
	version string
	started time.Time

	stopCh    chan struct{}
	flushedAt uint64 // store revision as of the last successful save
}

// New creates a new Server around the given store. hist may be nil to
// disable the invocation journal.
func New(store *frecency.Store, hist *history.DB, version string) *Server {
	s := &Server{
		store:   store,
		hist:    hist,
		version: version,
		started: time.Now(),
		stopCh:  make(chan struct{}),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/revision", s.handleRevision)

		r.Post("/uses", s.handleRecordUse)

		r.Get("/items", s.handleItems)
		r.Get("/items/score", s.handleScore)
		r.Post("/items/remove", s.handleRemove)
		r.Post("/items/clear", s.handleClear)

		r.Get("/history/top", s.handleHistoryTop)
		r.Get("/history/recent", s.handleHistoryRecent)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	length := s.store.Len()
	revision := s.store.Revision()
	path := s.store.Path()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"version":    s.version,
		"uptime":     time.Since(s.started).Seconds(),
		"store_path": path,
		"items":      length,
		"revision":   revision,
		"history":    s.hist != nil,
	})
}

func (s *Server) handleRevision(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	revision := s.store.Revision()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]uint64{"revision": revision})
}
