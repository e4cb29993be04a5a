package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cryptoboard/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets tracks connected clients until the server stops.
// There is no push: every message a client gets answers one of its commands.
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clientsMu.Lock()
			s.clients[client] = struct{}{}
			s.clientsMu.Unlock()

		case client := <-s.unregister:
			s.clientsMu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.clientsMu.Unlock()

		case <-s.done:
			// readPump may still be answering a command, so send is left
			// open; cancelling stops both pumps.
			s.clientsMu.Lock()
			for client := range s.clients {
				delete(s.clients, client)
				client.cancel()
				client.conn.Close()
			}
			s.clientsMu.Unlock()
			return
		}
	}
}

func (s *DashboardServer) connectionCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warning("Failed to upgrade websocket: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		hub:    s,
		conn:   conn,
		send:   make(chan interface{}, 16),
		ctx:    ctx,
		cancel: cancel,
	}

	select {
	case s.register <- client:
	case <-s.done:
		cancel()
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage answers one render command. Unparseable input closes
// the connection; render failures are reported as an ERROR message.
func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MRenderCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Warning("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	var response interface{}
	if cmd.Command != "render" {
		response = models.MErrorMessage{Type: "ERROR", Message: fmt.Sprintf("unknown command %q", cmd.Command)}
	} else if payload, err := s.renderCommand(client.ctx, cmd); err != nil {
		s.Logger.Warning("WebSocket render failed: %v", err)
		response = models.MErrorMessage{Type: "ERROR", Message: errorMessage(err)}
	} else {
		response = payload
	}

	// Use select to avoid blocking if client's send buffer is full
	select {
	case client.send <- response:
	default:
		s.Logger.Warning("Dropping websocket response, client send buffer full")
	}
}

// -----------------------------------------------------------------------------

// renderCommand resolves omitted fields from the configured panels.
func (s *DashboardServer) renderCommand(ctx context.Context, cmd models.MRenderCommand) (models.MRenderResponse, error) {
	d := s.Config.Dashboard

	switch cmd.Panel {
	case "":
		page, err := s.Dashboard.Render(ctx)
		if err != nil {
			return models.MRenderResponse{}, err
		}
		return models.MRenderResponse{Type: "DASHBOARD", Data: page}, nil

	case "primary":
		symbol := orDefault(cmd.Symbol, d.Primary.Symbol)
		granularity := orDefaultInt(cmd.Granularity, d.Primary.Granularity)
		panel, err := s.Dashboard.Primary(ctx, symbol, granularity)
		if err != nil {
			return models.MRenderResponse{}, err
		}
		return models.MRenderResponse{Type: "PRIMARY", Data: panel}, nil

	case "cross":
		base := orDefault(cmd.Base, d.Cross.Base)
		quote := orDefault(cmd.Quote, d.Cross.Quote)
		granularity := orDefaultInt(cmd.Granularity, d.Cross.Granularity)
		panel, err := s.Dashboard.CrossPair(ctx, base, quote, granularity)
		if err != nil {
			return models.MRenderResponse{}, err
		}
		return models.MRenderResponse{Type: "CROSS", Data: panel}, nil

	default:
		return models.MRenderResponse{}, fmt.Errorf("unknown panel %q", cmd.Panel)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
