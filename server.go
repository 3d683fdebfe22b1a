package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Serves codec requests over WebSocket connections
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[*websocket.Conn]string
}

// Creates a new codec server
func NewServer(config *Config) *Server {
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: config.HandshakeTimeout,
		},
		logger:   log.New(os.Stdout, "[Server] ", log.LstdFlags),
		sessions: make(map[*websocket.Conn]string),
	}
}

// Returns the HTTP handler exposing the codec endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.serveWS)
	return mux
}

// Listens until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return s.Serve(ctx, ln)
}

// Serves connections accepted on ln until the context is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler: s.Handler(),
	}
	// Shutdown does not see hijacked connections
	httpServer.RegisterOnShutdown(s.closeSessions)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Printf("Listening on ws://%s%s", ln.Addr(), s.config.Path)
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Println("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) track(conn *websocket.Conn, session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conn] = session
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conn)
}

// Sends a going-away close frame to every open session and drops it
func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn, session := range s.sessions {
		s.logger.Printf("Session %s: closing for shutdown", session)
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(s.config.WriteTimeout),
		)
		conn.Close()
	}
}

// Upgrades the connection and answers requests until the peer leaves
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	s.track(conn, session)
	defer s.untrack(conn)

	conn.SetReadLimit(s.config.MaxMessageSize)
	s.logger.Printf("Session %s opened from %s", session, r.RemoteAddr)

	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				s.logger.Printf("Session %s: unexpected WebSocket error: %v", session, err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			s.logger.Printf("Session %s: ignoring message of type %d", session, messageType)
			continue
		}

		resp := s.handleMessage(session, message)

		reply, err := json.Marshal(resp)
		if err != nil {
			s.logger.Printf("Session %s: failed to marshal response: %v", session, err)
			break
		}

		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			s.logger.Printf("Session %s: failed to send response: %v", session, err)
			break
		}
	}

	s.logger.Printf("Session %s closed", session)
}

// Processes one request message; failures are reported in the response
func (s *Server) handleMessage(session string, message []byte) *Response {
	var req Request
	if err := json.Unmarshal(message, &req); err != nil {
		s.logger.Printf("Session %s: failed to unmarshal request: %v", session, err)
		return &Response{Error: fmt.Sprintf("invalid request: %v", err)}
	}

	resp, err := Process(req)
	if err != nil {
		s.logger.Printf("Session %s: request %s failed: %v", session, req.ID, err)
		return &Response{ID: req.ID, Op: req.Op, Error: err.Error()}
	}

	s.logger.Printf("Session %s: request %s %s, %d bytes in, %d bytes out",
		session, req.ID, req.Op, len(req.Payload), len(resp.Payload))
	return resp
}
