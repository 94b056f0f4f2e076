package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/learnpath/internal/catalog"
	"github.com/at-ishikawa/learnpath/internal/config"
	"github.com/at-ishikawa/learnpath/internal/metrics"
	"github.com/at-ishikawa/learnpath/internal/progress"
	"github.com/at-ishikawa/learnpath/internal/server"
)

func newTestServer(t *testing.T, cfg config.ServerConfig) *httptest.Server {
	t.Helper()
	contents := catalog.NewStaticCatalog(catalog.Collection{
		ID:    "go-basics",
		Steps: []catalog.Step{{ID: "intro", Videos: []catalog.Video{{ID: "v1"}}}},
	})
	tracker := progress.NewTracker(progress.NewMemoryStore(), contents, progress.WithObserver(metrics.Observer{}))
	handler, err := newHandler(cfg, tracker)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewHandler_Routes(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	t.Run("healthz", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("rpc and metrics", func(t *testing.T) {
		client := server.NewProgressServiceClient(srv.Client(), srv.URL)
		_, err := client.Enroll(context.Background(), connect.NewRequest(&server.EnrollRequest{
			UserID:       "alice",
			CollectionID: "go-basics",
		}))
		require.NoError(t, err)

		res, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `learnpath_operations_total{operation="enroll",outcome="ok"}`)
	})
}

func TestNewHandler_RateLimit(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{RateLimit: config.RateLimitConfig{RequestsPerMinute: 1}})
	client := server.NewProgressServiceClient(srv.Client(), srv.URL)
	req := &server.GetProgressRequest{UserID: "alice"}

	_, err := client.GetProgress(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)

	_, err = client.GetProgress(context.Background(), connect.NewRequest(req))
	require.Error(t, err)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode, "health checks are not rate limited")
}

func TestCorsMiddleware(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), []string{"http://localhost:3000"})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantOrigin: "http://localhost:3000"},
		{name: "allowed origin", method: http.MethodPost, origin: "http://localhost:3000", wantStatus: http.StatusTeapot, wantOrigin: "http://localhost:3000"},
		{name: "unknown origin", method: http.MethodPost, origin: "https://example.com", wantStatus: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/learnpath.v1.ProgressService/Enroll", strings.NewReader("{}"))
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
