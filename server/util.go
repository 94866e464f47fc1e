package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// WebSocket buffer sizes; messages are short texts and their traces.
const (
	wsReadBufferSize  = 2048
	wsWriteBufferSize = 4096
)

// newUpgrader creates a WebSocket upgrader with origin checking from config
func (s *Server) newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  wsReadBufferSize,
		WriteBufferSize: wsWriteBufferSize,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin validates the request origin against server.allowed_origins.
// An allowed origin also matches itself with any port.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Direct clients (curl, tests) send no origin
	if origin == "" {
		return true
	}

	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || origin == allowed || strings.HasPrefix(origin, allowed+":") {
			return true
		}
	}
	return false
}
