// Package server provides the optional HTTP status server for mudra.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/version"
)

// Event listing limits.
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

const shutdownTimeout = 5 * time.Second

// Source is the live state of the frame loop. *app.App implements it.
type Source interface {
	Snapshot() app.Snapshot
	LatestJPEG() []byte
	Subscribe() (<-chan app.Snapshot, func())
}

// Config holds the server configuration. Every field is optional; routes whose
// backing component is nil are not registered.
type Config struct {
	Source  Source
	Store   *store.Store
	Metrics *metrics.Metrics

	// StreamInterval paces the MJPEG stream. Zero means DefaultStreamInterval.
	StreamInterval time.Duration
}

// Server represents the HTTP server for the mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Source != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.Handle("/api/ws", NewStateHandler(s.config.Source))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Source, s.config.StreamInterval))
	}

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/events", s.handleEvents)
		s.mux.HandleFunc("/api/sessions", s.handleSessions)
	}

	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uptime":  time.Since(s.start).Round(time.Second).String(),
		"version": version.Short(),
	})
}

// handleState handles GET requests to /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.config.Source.Snapshot())
}

// handleEvents handles GET /api/events?limit=N[&session=ID].
// With a session the whole session is returned in recording order,
// otherwise the newest events across all sessions.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var events []*store.Event
	if id := r.URL.Query().Get("session"); id != "" {
		events, err = s.config.Store.Events().ListBySession(id)
	} else {
		events, err = s.config.Store.Events().ListRecent(limit)
	}
	if err != nil {
		logger.ErrorKV(r.Context(), "list events failed", "error", err)
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []*store.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

type sessionSummary struct {
	*store.Session
	Activations map[string]int `json:"activations"`
}

// handleSessions handles GET /api/sessions?limit=N.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessions, err := s.config.Store.Sessions().List(limit)
	if err != nil {
		logger.ErrorKV(r.Context(), "list sessions failed", "error", err)
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		return
	}

	out := make([]sessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		counts, err := s.config.Store.Events().CountBySymbol(sess.ID)
		if err != nil {
			logger.ErrorKV(r.Context(), "count events failed", "session", sess.ID, "error", err)
			http.Error(w, "Failed to count events", http.StatusInternalServerError)
			return
		}
		activations := make(map[string]int, len(counts))
		for sym, n := range counts {
			activations[sym.String()] = n
		}
		out = append(out, sessionSummary{Session: sess, Activations: activations})
	}

	writeJSON(w, http.StatusOK, out)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultEventLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return min(n, MaxEventLimit), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf(context.Background(), "encode response: %v", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoKV(ctx, "status server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info(ctx, "status server stopped")
	return nil
}
