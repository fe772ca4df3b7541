package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bid-leveler/internal/api/handlers"
	"bid-leveler/pkg/auth"
	"bid-leveler/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T) (*fiber.App, *auth.JWTManager) {
	logger := zaptest.NewLogger(t)
	jwtManager := auth.NewJWTManager("router-secret", time.Hour, 24*time.Hour)

	app := SetupRouter(Handlers{
		Auth:       handlers.NewAuthHandler(nil, logger),
		Project:    handlers.NewProjectHandler(nil, logger),
		Bid:        handlers.NewBidHandler(nil, logger),
		Comparison: handlers.NewComparisonHandler(nil, nil, logger),
		Preprocess: handlers.NewPreprocessHandler(nil, logger),
		Usage:      handlers.NewUsageHandler(nil, logger),
	}, jwtManager, config.ServerConfig{BodyLimit: 1024 * 1024}, logger)
	return app, jwtManager
}

func TestRouter_PublicEndpoints(t *testing.T) {
	app, _ := newTestRouter(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "bidleveler_http_request_duration_seconds")
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	app, jwtManager := newTestRouter(t)

	for _, path := range []string{"/api/v1/projects", "/api/v1/usage"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}

	refresh, err := jwtManager.GenerateRefreshToken("8c7d2e52-2b9e-4d0c-9a55-0f3c8a4f1e10")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app, _ := newTestRouter(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"error"`)
}
