package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/config"
	"projecthub/internal/middleware"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Port:          "8080",
		Environment:   "test",
		StorageDriver: config.StorageDriverMemory,
		CORSOrigins:   "*",
	}
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *httptest.Server {
	t.Helper()
	cfg := memoryConfig()
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler(cfg, limiter))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"
	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sqlite"`)
}

func TestHandlerChain(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/projects", strings.NewReader(`{"name":"Chained"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHandlerRateLimits(t *testing.T) {
	srv := newTestServer(t, middleware.NewRateLimiter(0.01, 1))

	first, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.NotEmpty(t, second.Header.Get("X-Request-ID"), "rejected requests are still tagged")
}

func TestServerUsesConfiguredPort(t *testing.T) {
	cfg := memoryConfig()
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	s := a.Server(cfg, http.NotFoundHandler())
	assert.Equal(t, ":8080", s.Addr)
	assert.NotZero(t, s.ReadHeaderTimeout)
}
