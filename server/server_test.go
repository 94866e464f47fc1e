package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/history"
	qtest "github.com/teranos/hiero/internal/testing"
	"github.com/teranos/hiero/sym"
	"github.com/teranos/hiero/translit"
)

func testConfig() am.ServerConfig {
	return am.ServerConfig{
		Port:           am.DefaultServerPort,
		AllowedOrigins: []string{"http://localhost", "http://127.0.0.1"},
		MaxBodyBytes:   1 << 20,
	}
}

func newTestServer(t *testing.T, cfg am.ServerConfig) (*Server, *history.Store) {
	t.Helper()
	store := history.NewStore(qtest.CreateTestDB(t), nil)
	s := New(cfg, store, nil)
	t.Cleanup(s.Close)
	return s, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandleConvert(t *testing.T) {
	s, store := newTestServer(t, testConfig())
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/convert", `{"text": "Hello, World! 123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	resp := decode[ConvertResponse](t, rec)
	assert.Equal(t, translit.Convert("Hello, World! 123"), resp.Output)
	assert.True(t, resp.Supported)
	assert.Empty(t, resp.Unsupported)
	assert.Nil(t, resp.Trace)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandleConvertTrace(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s.Handler(), http.MethodPost, "/api/convert", `{"text": "a@", "trace": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ConvertResponse](t, rec)
	assert.Equal(t, sym.Vulture+sym.Placeholder, resp.Output)
	assert.False(t, resp.Supported)
	assert.Equal(t, []string{"@"}, resp.Unsupported)
	require.Len(t, resp.Trace, 2)
	assert.Equal(t, translit.CategoryLetter, resp.Trace[0].Category)
	assert.Equal(t, translit.CategoryUnsupported, resp.Trace[1].Category)
}

func TestHandleConvertErrors(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	h := s.Handler()

	tests := []struct {
		name   string
		method string
		body   string
		status int
		substr string
	}{
		{"number", http.MethodPost, `{"text": 42}`, http.StatusBadRequest, "invalid input kind"},
		{"missing text", http.MethodPost, `{}`, http.StatusBadRequest, "invalid input kind"},
		{"array", http.MethodPost, `{"text": ["a"]}`, http.StatusBadRequest, "invalid input kind"},
		{"malformed", http.MethodPost, `{"text": `, http.StatusBadRequest, "Invalid request body"},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/api/convert", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, decode[errorResponse](t, rec).Error, tt.substr)
		})
	}
}

func TestHandleConvertBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 32
	s, _ := newTestServer(t, cfg)

	body := `{"text": "` + strings.Repeat("a", 100) + `"}`
	rec := do(t, s.Handler(), http.MethodPost, "/api/convert", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleBatch(t *testing.T) {
	s, store := newTestServer(t, testConfig())
	h := s.Handler()

	t.Run("fail fast", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/batch", `{"texts": ["hi", "nile"]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[BatchResponse](t, rec)
		assert.Equal(t, translit.BatchConvertStrings([]string{"hi", "nile"}), resp.Outputs)
		assert.NotEmpty(t, resp.RunID)
	})

	t.Run("fail fast error", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/batch", `{"texts": ["hi", 3]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[errorResponse](t, rec).Error, "batch item 1")
	})

	t.Run("tolerant", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/batch", `{"texts": ["hi", 3, "ra"], "tolerant": true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[BatchResponse](t, rec)
		require.Len(t, resp.Results, 3)
		assert.Equal(t, translit.Convert("hi"), resp.Results[0].Output)
		assert.Contains(t, resp.Results[1].Error, "invalid input kind")
		assert.Equal(t, translit.Convert("ra"), resp.Results[2].Output)
	})

	t.Run("empty", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/batch", `{"texts": []}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outputs":[]`)
		assert.NotContains(t, rec.Body.String(), `"results"`)
		resp := decode[BatchResponse](t, rec)
		assert.NotNil(t, resp.Outputs)
		assert.Empty(t, resp.Outputs)
	})

	t.Run("empty tolerant", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/batch", `{"texts": [], "tolerant": true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"results":[]`)
		assert.NotContains(t, rec.Body.String(), `"outputs"`)
	})

	entries, err := store.Recent(context.Background(), 10, "")
	require.NoError(t, err)
	require.Len(t, entries, 4, "two fail-fast items and two tolerant successes")
	for _, e := range entries {
		assert.NotEmpty(t, e.RunID)
		assert.Equal(t, history.SourceServer, e.Source)
	}
}

func TestHandleDescribe(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/describe?c=A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, translit.DescribeCharacter("a"), decode[DescribeResponse](t, rec).Description)

	rec = do(t, h, http.MethodGet, "/api/describe?c=ab", "")
	assert.Equal(t, "Please provide a single character", decode[DescribeResponse](t, rec).Description)
}

func TestHandleAlphabet(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s.Handler(), http.MethodGet, "/api/alphabet", "")
	require.Equal(t, http.StatusOK, rec.Code)

	letters := decode[[]translit.AlphabetEntry](t, rec)
	require.Len(t, letters, 26)
	assert.Equal(t, "a", letters[0].Letter)
	assert.Equal(t, sym.Vulture, letters[0].Glyph)
	assert.Equal(t, "z", letters[25].Letter)
}

func TestHandleValidate(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/validate", `{"text": "a#b@c#"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ValidateResponse](t, rec)
	assert.False(t, resp.Supported)
	assert.Equal(t, []string{"#", "@"}, resp.Unsupported)

	rec = do(t, h, http.MethodPost, "/api/validate", `{"text": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s.Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, sym.TableVersion, resp.TableVersion)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	h := s.Handler()

	t.Run("allowed origin with port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("lookalike host rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/convert", nil)
		req.Header.Set("Origin", "http://127.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 2
	s, _ := newTestServer(t, cfg)
	h := s.Handler()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestServeGracefulShutdown(t *testing.T) {
	s := New(testConfig(), nil, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
