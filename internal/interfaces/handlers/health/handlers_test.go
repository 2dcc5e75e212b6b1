package health

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"automind-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f *fakePinger) Ping() error { return f.err }

func setupHealthTest(t *testing.T) (*Handlers, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &Handlers{Rdb: rdb, DB: &fakePinger{}, HealthAdminKey: "admin-key"}, mr
}

func TestJSON_AllConnected(t *testing.T) {
	h, _ := setupHealthTest(t)
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "automind-api", result["service"])
	assert.Equal(t, "ok", result["status"])
	deps := result["dependencies"].(map[string]interface{})
	db := deps["database"].(map[string]interface{})
	assert.Equal(t, "connected", db["status"])
}

func TestJSON_DBDown(t *testing.T) {
	h, _ := setupHealthTest(t)
	h.DB = &fakePinger{err: errors.New("dial refused")}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "issue", result["status"])
}

func TestReset_RequiresKey(t *testing.T) {
	h, mr := setupHealthTest(t)
	require.NoError(t, mr.Set(middleware.KeyReqTotal, "42"))

	app := fiber.New()
	app.Get("/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	assert.True(t, mr.Exists(middleware.KeyReqTotal))

	resp, err = app.Test(httptest.NewRequest("GET", "/reset?key=admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.False(t, mr.Exists(middleware.KeyReqTotal))
}
