package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsApp(cfg CORSConfig) *fiber.App {
	app := fiber.New()
	app.Use(CORS(cfg))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(200) })
	return app
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	app := corsApp(CORSConfig{AllowedSuffix: ".automind.app"})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestCORS_AllowedSuffix(t *testing.T) {
	app := corsApp(CORSConfig{AllowedSuffix: ".automind.app"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://www.Automind.App")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "https://www.Automind.App", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	app := corsApp(CORSConfig{AllowedSuffix: ".automind.app"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestCORS_DevPassword(t *testing.T) {
	app := corsApp(CORSConfig{AllowedSuffix: ".automind.app", DevPassword: "letmein"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("dev-password", "letmein")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestCORS_LocalhostPreflight(t *testing.T) {
	app := corsApp(CORSConfig{AllowedSuffix: ".automind.app"})

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}
