package stream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 45 * time.Second
	pingInterval = 15 * time.Second
	sendQueue    = 64
)

// Server accepts websocket subscribers and broadcasts frames to them.
type Server struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a server that will listen on addr.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		hub:    newHub(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
	s.http = &http.Server{Addr: addr, Handler: s}
	return s
}

// ListenAndServe blocks serving websocket upgrades until Shutdown.
func (s *Server) ListenAndServe() error {
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown disconnects all subscribers and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.close()
	return s.http.Shutdown(ctx)
}

// Broadcast pushes a frame to all subscribers. With no subscribers connected
// the frame is not even marshalled.
func (s *Server) Broadcast(f Frame) {
	if s.hub.Count() == 0 {
		return
	}
	msg, err := f.Marshal()
	if err != nil {
		s.logger.Error("marshal frame", "error", err)
		return
	}
	s.hub.Broadcast(msg)
}

// ClientCount returns the number of connected subscribers.
func (s *Server) ClientCount() int {
	return s.hub.Count()
}

// ServeHTTP upgrades the connection and keeps it subscribed until it closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendQueue),
	}
	s.hub.add(sub)
	s.logger.Info("client connected", "client", sub.id, "remote", r.RemoteAddr, "clients", s.hub.Count())

	go s.writePump(sub)
	s.readPump(sub)

	s.hub.remove(sub)
	s.logger.Info("client disconnected", "client", sub.id, "clients", s.hub.Count())
}

// readPump discards inbound messages and keeps the pong deadline fresh.
// Subscribers never send anything we care about; the read loop exists to
// detect disconnects.
func (s *Server) readPump(sub *subscriber) {
	sub.conn.SetReadLimit(512)
	sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the subscription
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
