// Package server streams pendulum simulations over websockets. Each
// connection is treated as a page load and gets a simulation of its own.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"github.com/san-kum/powerpendulum/internal/config"
	"github.com/san-kum/powerpendulum/internal/panel"
)

const (
	DefaultPingInterval = 25 * time.Second
	DefaultPongWait     = 60 * time.Second
	DefaultWriteWait    = 10 * time.Second
	maxMessageSize      = 1 << 20
)

type Server struct {
	cfg      *config.Config
	log      logr.Logger
	upgrader websocket.Upgrader

	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration

	sessions atomic.Int64
	nextID   atomic.Int64
}

func New(cfg *config.Config, log logr.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		PingInterval: DefaultPingInterval,
		PongWait:     DefaultPongWait,
		WriteWait:    DefaultWriteWait,
	}
}

// Sessions is the number of connected clients.
func (s *Server) Sessions() int64 { return s.sessions.Load() }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/controls", s.handleControls)
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "sessions": s.Sessions()})
}

type controlInfo struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Kind  string  `json:"kind"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Step  float64 `json:"step,omitempty"`
}

// handleControls describes the panel so a client can build its widgets.
func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	controls := panel.Controls()
	out := make([]controlInfo, len(controls))
	for i, c := range controls {
		out[i] = controlInfo{Name: c.Name, Label: c.Label, Kind: c.Kind.String(), Min: c.Min, Max: c.Max, Step: c.Step}
	}
	writeJSON(w, out)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed", "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	id := s.nextID.Add(1)
	log := s.log.WithValues("session", id, "remote", r.RemoteAddr)

	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	log.Info("session opened")
	err = s.runSession(r.Context(), conn, log)
	if err != nil && !isClosed(err) {
		log.Error(err, "session ended")
		return
	}
	log.Info("session closed")
}

func isClosed(err error) bool {
	return errors.Is(err, context.Canceled) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// Open sessions are stopped through their request context, since
// Shutdown does not touch hijacked connections.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "ws", "/ws")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
