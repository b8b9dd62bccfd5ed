package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	healthsvc "station-listings/internal/application/health"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthHandlers(t *testing.T) (*fiber.App, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	h := &Handlers{
		Service:        &healthsvc.Service{Redis: rdb},
		HealthAdminKey: "test-admin-key",
	}
	app := fiber.New()
	app.Get("/reset", h.Reset)
	app.Get("/health/json", h.JSON)
	app.Get("/health/errors", h.Errors)
	return app, rdb
}

func TestReset_Unauthorized(t *testing.T) {
	app, _ := setupHealthHandlers(t)

	for _, path := range []string{"/reset", "/reset?key=wrong"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)
		var out map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "error", out["status"])
		assert.Equal(t, "Unauthorized", out["error"].(map[string]interface{})["message"])
	}
}

func TestReset_Success(t *testing.T) {
	app, rdb := setupHealthHandlers(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, healthsvc.KeyReqTotal, "5", 0).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=test-admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Stats reset successfully", out["message"])

	_, err = rdb.Get(ctx, healthsvc.KeyReqTotal).Result()
	assert.ErrorIs(t, err, redis.Nil)
	_, err = rdb.Get(ctx, healthsvc.KeyStartTime).Result()
	assert.NoError(t, err)
}

func TestReset_NoRedis(t *testing.T) {
	h := &Handlers{Service: &healthsvc.Service{}, HealthAdminKey: "k"}
	app := fiber.New()
	app.Get("/reset", h.Reset)
	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=k", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestJSON_ReturnsStructure(t *testing.T) {
	app, _ := setupHealthHandlers(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, healthsvc.ServiceName, out["service"])
	assert.Equal(t, "issue", out["status"])
	deps := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["redis"].(map[string]interface{})["status"])
	assert.Equal(t, "disconnected", deps["database"].(map[string]interface{})["status"])
	assert.Contains(t, out, "runtime")
	assert.Contains(t, out, "traffic")
}

func TestErrors_ReturnsArray(t *testing.T) {
	app, rdb := setupHealthHandlers(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var arr []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&arr))
	assert.Empty(t, arr)

	rdb.LPush(context.Background(), healthsvc.KeyErrorLog, `{"time":"2025-09-10T00:00:00Z","path":"/api/properties","method":"POST","message":"test"}`)
	resp, err = app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	var arr2 []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&arr2))
	require.Len(t, arr2, 1)
	assert.Equal(t, "test", arr2[0]["message"])
}
