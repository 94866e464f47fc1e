package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/hiero/translit"
)

func dialSocket(t *testing.T, s *Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	return websocket.DefaultDialer.Dial(url, header)
}

func TestWebSocketConvertsFrames(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	conn, _, err := dialSocket(t, s, nil)
	require.NoError(t, err)
	defer conn.Close()

	for _, text := range []string{"hello", "nile@", ""} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(text)))
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))

		var msg SocketMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "trace", msg.Type)
		assert.Equal(t, translit.Convert(text), msg.Output)

		_, trace := translit.ConvertWithTrace(text)
		assert.Len(t, msg.Trace, len(trace))
	}
}

func TestWebSocketReportsUnsupported(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	conn, _, err := dialSocket(t, s, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("a@b#@")))
	var msg SocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, []string{"@", "#"}, msg.Unsupported)
}

func TestWebSocketRejectsBinaryFrames(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	conn, _, err := dialSocket(t, s, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}))
	var msg SocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
}

func TestWebSocketOriginCheck(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := dialSocket(t, s, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocketClosedOnShutdown(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	conn, _, err := dialSocket(t, s, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Make sure the server side is running before closing
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ra")))
	var msg SocketMessage
	require.NoError(t, conn.ReadJSON(&msg))

	s.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "connection should be closed by the server")
}
