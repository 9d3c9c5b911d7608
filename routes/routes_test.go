package routes

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/google/uuid"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/jwt"
	"github.com/shihabsss1/portfolio/middlewares"
	"github.com/shihabsss1/portfolio/store"
	"github.com/shihabsss1/portfolio/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAll struct{}

func (denyAll) ParseAccessToken(_ string) (*jwt.Claims, error) {
	return nil, errors.New("invalid token")
}

func (denyAll) IsAccessTokenRevoked(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (denyAll) UserExists(_ context.Context, _ uuid.UUID, _ string) bool {
	return false
}

func (denyAll) HasPermission(_ []string, _ string, _ string) bool {
	return false
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	t.Setenv("APP_DEBUG", "true")
	t.Setenv("COOKIE_SECRET_KEY", encryptcookie.GenerateKey())

	r, err := views.New()
	require.NoError(t, err)

	h := &controllers.Handler{
		Content: store.New(store.NewMemoryBackend(), time.Second),
		Views:   r,
	}

	app := NewApp()
	SetupRoutes(app, h, denyAll{}, middlewares.CaptchaConfig{Disabled: true})

	return app
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		method string
		target string
		body   string
		status int
	}{
		{fiber.MethodGet, "/api/health", "", fiber.StatusOK},
		{fiber.MethodGet, "/api/v1/content", "", fiber.StatusOK},
		{fiber.MethodGet, "/api/v1/system/csrf", "", fiber.StatusNoContent},
		{fiber.MethodGet, "/", "", fiber.StatusOK},
		{fiber.MethodGet, "/gallery", "", fiber.StatusOK},
		{fiber.MethodGet, "/experience", "", fiber.StatusOK},
		{fiber.MethodPut, "/api/v1/admin/content", `{"hero":{"title":"x"}}`, fiber.StatusBadRequest},
		{fiber.MethodPost, "/api/v1/media/upload", `{}`, fiber.StatusBadRequest},
		{fiber.MethodPost, "/api/v1/auth/check", `{}`, fiber.StatusBadRequest},
		{fiber.MethodPost, "/api/v1/contact", `{"name":"Visitor","email":"visitor@example.com","message":"Hi"}`, fiber.StatusServiceUnavailable},
		{fiber.MethodGet, "/api/v1/missing", "", fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAdminRoutesRejectInvalidTokens(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPut, "/api/v1/admin/content", strings.NewReader(`{"hero":{"title":"x"}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer forged")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"error"`)
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("APP_DOMAIN", "https://shihab.example.com")
	t.Setenv("LIMIT_REQUESTS_MAX", "-3")

	cfg := ServerConfigFromEnv()
	assert.Equal(t, "https://shihab.example.com", cfg.AllowOrigins)
	assert.Equal(t, 60, cfg.MaxRequests)
	assert.True(t, cfg.cors().AllowCredentials)

	t.Setenv("APP_DEBUG", "true")

	cfg = ServerConfigFromEnv()
	assert.Equal(t, "*", cfg.AllowOrigins)
	assert.Equal(t, 250, cfg.MaxRequests)
	assert.False(t, cfg.cors().AllowCredentials)
	assert.True(t, cfg.csrf().Next(nil))
}
