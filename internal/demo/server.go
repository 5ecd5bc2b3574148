// Package demo serves a few sample endpoints wrapped in the timeline
// middleware, so reports can be seen against live requests.
package demo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/huangsam/chronometrist/core"
	"github.com/huangsam/chronometrist/middleware"
	"github.com/huangsam/chronometrist/schema"
)

// Server wraps HTTP serving of the demo endpoints.
type Server struct {
	httpServer *http.Server
	pause      func(ctx context.Context, d time.Duration)
}

// New creates a configured HTTP server whose requests are timed with cfg.
func New(addr string, cfg core.Config) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{Addr: addr, ReadHeaderTimeout: 5 * time.Second},
		pause:      sleep,
	}
	s.registerRoutes(mux)
	s.httpServer.Handler = middleware.Timeline(cfg)(mux)
	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/fast", s.handleFast)
	mux.HandleFunc("/slow", s.handleSlow)
	mux.HandleFunc("/fail", s.handleFail)
	mux.Handle("/stages", middleware.Chain(http.HandlerFunc(s.handleFast),
		middleware.Stage("auth", schema.Annotations{"scheme": "bearer"}),
		middleware.Stage("rate-limit", nil),
	))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"endpoints":  []string{"/fast", "/slow?ms=400", "/fail", "/stages"},
		"request_id": core.RequestID(r.Context()),
	})
}

func (s *Server) handleFast(w http.ResponseWriter, r *http.Request) {
	h := core.Track(r.Context(), "lookup", schema.Annotations{"cache": "hit"})
	s.pause(r.Context(), 5*time.Millisecond)
	h.End()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSlow(w http.ResponseWriter, r *http.Request) {
	total := parseMillis(r, 400)
	ctx := r.Context()

	auth := core.Track(ctx, "auth", nil)
	s.pause(ctx, total/8)
	auth.End()

	query := core.Track(ctx, "query", schema.Annotations{"table": "orders", "limit": 50})
	s.pause(ctx, total/2)
	query.End()

	// Left open on purpose: shows up as an unfinished stage.
	core.Track(ctx, "audit", nil)

	render := core.Track(ctx, "render", nil)
	s.pause(ctx, total/4)
	render.End()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	upstream := core.Track(ctx, "upstream", schema.Annotations{"host": "payments"})
	s.pause(ctx, 20*time.Millisecond)
	upstream.Error(&schema.EventError{Code: http.StatusBadGateway, Message: "upstream unavailable"})

	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
}

// parseMillis reads the "ms" query parameter, falling back to def.
func parseMillis(r *http.Request, def int) time.Duration {
	ms, err := strconv.Atoi(r.URL.Query().Get("ms"))
	if err != nil || ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// IsClosed reports whether err only signals a normal shutdown.
func IsClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
