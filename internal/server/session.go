package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/sim"
)

const (
	TypeHello  = "hello"
	TypeFrame  = "frame"
	TypeError  = "error"
	TypeChange = "change"
	TypeResize = "resize"
)

// ClientMessage is sent by the browser: a panel change or a viewport
// resize.
type ClientMessage struct {
	Type   string        `json:"type"`
	Change *panel.Change `json:"change,omitempty"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
}

type ServerMessage struct {
	Type     string         `json:"type"`
	Seed     int64          `json:"seed,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Frame    *sim.Frame     `json:"frame,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type viewport struct{ width, height int }

// runSession owns one simulation. The reader goroutine validates client
// messages and hands them over; this goroutine ticks, writes frames and
// pings. Only this goroutine writes to conn.
func (s *Server) runSession(ctx context.Context, conn *websocket.Conn, log logr.Logger) error {
	cfg := *s.cfg
	simulator, err := sim.New(&cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resizes := make(chan viewport, 4)
	rejects := make(chan string, 16)
	readErr := make(chan error, 1)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(s.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.PongWait))
	})

	settings := simulator.Settings()
	go func() {
		readErr <- s.readLoop(ctx, conn, settings, simulator.Queue(), resizes, rejects)
	}()

	hello := ServerMessage{Type: TypeHello, Seed: simulator.Seed(), Settings: settings.Values()}
	if err := s.write(conn, hello); err != nil {
		return err
	}

	frameTicker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer frameTicker.Stop()
	pingTicker := time.NewTicker(s.PingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(s.WriteWait))
			return ctx.Err()

		case err := <-readErr:
			return err

		case v := <-resizes:
			simulator.Resize(v.width, v.height)

		case msg := <-rejects:
			if err := s.write(conn, ServerMessage{Type: TypeError, Error: msg}); err != nil {
				return err
			}

		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.WriteWait)); err != nil {
				return err
			}

		case <-frameTicker.C:
			if err := simulator.Tick(); err != nil {
				_ = s.write(conn, ServerMessage{Type: TypeError, Error: err.Error()})
				return err
			}
			f := simulator.Frame()
			if err := s.write(conn, ServerMessage{Type: TypeFrame, Frame: &f}); err != nil {
				return err
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg ServerMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.WriteWait))
	return conn.WriteJSON(msg)
}

// readLoop checks each change against its own copy of the settings so
// bad input is answered right away instead of surfacing in the tick log.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, settings panel.Settings, queue *panel.Queue, resizes chan<- viewport, rejects chan<- string) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reject(ctx, rejects, fmt.Sprintf("bad message: %v", err))
			continue
		}

		switch msg.Type {
		case TypeChange:
			if msg.Change == nil {
				reject(ctx, rejects, "change message without change")
				continue
			}
			if err := settings.Apply(*msg.Change); err != nil {
				reject(ctx, rejects, err.Error())
				continue
			}
			queue.Push(*msg.Change)
		case TypeResize:
			select {
			case resizes <- viewport{msg.Width, msg.Height}:
			case <-ctx.Done():
				return ctx.Err()
			}
		default:
			reject(ctx, rejects, fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

func reject(ctx context.Context, rejects chan<- string, msg string) {
	select {
	case rejects <- msg:
	case <-ctx.Done():
	}
}
