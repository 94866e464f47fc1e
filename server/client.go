package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/translit"
)

// WebSocket timeouts, following the gorilla chat example.
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum frame size accepted from the peer
	maxMessageSize = 64 * 1024
)

// Client is one live conversion socket. All data writes happen on the read
// goroutine; the ping goroutine only sends control frames.
type Client struct {
	server *Server
	conn   *websocket.Conn
	id     string
	remote string
	logger *zap.SugaredLogger
	done   chan struct{}
}

// HandleWebSocket upgrades the connection and converts every text frame.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error
		logger.FromContext(r.Context(), s.logger).Warnw("WebSocket upgrade failed", logger.FieldError, err)
		return
	}

	id := uuid.NewString()
	client := &Client{
		server: s,
		conn:   conn,
		id:     id,
		remote: clientKey(r),
		logger: logger.FromContext(r.Context(), s.logger).With("client_id", id),
		done:   make(chan struct{}),
	}
	client.logger.Infow("Client connected", logger.FieldRemote, client.remote)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		client.readPump()
	}()
	go func() {
		defer s.wg.Done()
		client.pingPump()
	}()
}

// readPump reads frames until the peer leaves or the server shuts down.
func (c *Client) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
		c.logger.Infow("Client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}
		if err := c.conn.WriteJSON(c.respond(kind, data)); err != nil {
			c.logger.Debugw("Message write error", logger.FieldError, err)
			return
		}
	}
}

// respond builds the answer to one frame.
func (c *Client) respond(kind int, data []byte) SocketMessage {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if !c.server.limiter.allow(c.remote) {
		return SocketMessage{Type: "error", Error: "Rate limit exceeded"}
	}
	if kind != websocket.TextMessage {
		return SocketMessage{Type: "error", Error: "only text frames are converted"}
	}

	text := string(data)
	output, trace := translit.ConvertWithTrace(text)
	_, unsupported := translit.Validate(text)

	c.server.record(c.server.ctx, text, output)
	c.logger.Debugw("Converted socket message", logger.FieldSize, len(data))

	return SocketMessage{
		Type:        "trace",
		Input:       text,
		Output:      output,
		Trace:       trace,
		Unsupported: translit.Unsupported(unsupported),
	}
}

// pingPump keeps the connection alive and closes it on server shutdown.
func (c *Client) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-c.server.ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			c.conn.Close()
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// handleReadError logs unexpected WebSocket read errors.
// Expected closure codes (going away, abnormal, no status) are silently ignored.
func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseNoStatusReceived,
	) {
		c.logger.Warnw("WebSocket read error", logger.FieldError, err)
	}
}
