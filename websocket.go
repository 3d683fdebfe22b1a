package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handles WebSocket communication with a remote codec service
type WSClient struct {
	config *Config
	conn   *websocket.Conn
	logger *log.Logger
}

// Creates a new WebSocket client
func NewWSClient(config *Config) *WSClient {
	return &WSClient{
		config: config,
		logger: log.New(os.Stdout, "[WSClient] ", log.LstdFlags),
	}
}

// Establishes a WebSocket connection
func (ws *WSClient) Connect(ctx context.Context) error {
	ws.logger.Printf("Connecting to %s...", ws.config.URL)

	dialer := &websocket.Dialer{
		HandshakeTimeout: ws.config.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, ws.config.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to WebSocket: %w", err)
	}
	conn.SetReadLimit(ws.config.MaxMessageSize)

	ws.conn = conn
	ws.logger.Printf("Connection established with %s", ws.config.URL)

	return nil
}

// Closes the WebSocket connection
func (ws *WSClient) Close() error {
	if ws.conn == nil {
		return nil
	}

	// Send close message
	err := ws.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	if err != nil {
		ws.logger.Printf("Error sending close message: %v", err)
	}

	// Close the connection
	err = ws.conn.Close()
	ws.conn = nil
	return err
}

// Sends a codec request to the WebSocket
func (ws *WSClient) SendRequest(req Request) error {
	if ws.conn == nil {
		return fmt.Errorf("connection not established")
	}

	message, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	ws.conn.SetWriteDeadline(time.Now().Add(ws.config.WriteTimeout))
	if err := ws.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	ws.logger.Printf("Request %s sent (%s, %d bytes)", req.ID, req.Op, len(req.Payload))
	return nil
}

// Reads messages until the response to the given request arrives
func (ws *WSClient) ReadResponse(ctx context.Context, id string) (*Response, error) {
	conn := ws.conn
	if conn == nil {
		return nil, fmt.Errorf("connection not established")
	}

	// Cancellation expires the read deadline so a blocked ReadMessage returns
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			conn.SetReadDeadline(time.Now().Add(ws.config.ReadTimeout))
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			// Wait for a message from the WebSocket
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
				) {
					return nil, fmt.Errorf("unexpected WebSocket error: %w", err)
				}

				return nil, err
			}

			if messageType != websocket.TextMessage {
				ws.logger.Printf("Ignoring message of type %d", messageType)
				continue
			}

			var resp Response
			if err := json.Unmarshal(message, &resp); err != nil {
				ws.logger.Printf("Failed to unmarshal response: %v", err)
				continue
			}

			if resp.ID != id {
				ws.logger.Printf("Ignoring response to request %s", resp.ID)
				continue
			}

			return &resp, nil
		}
	}
}

// Runs a codec request on the remote service
func (ws *WSClient) Call(ctx context.Context, req Request) (*Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if err := ws.SendRequest(req); err != nil {
		return nil, err
	}

	resp, err := ws.ReadResponse(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}

	return resp, nil
}
