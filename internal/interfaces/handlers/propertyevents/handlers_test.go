package propertyevents

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	pesvc "station-listings/internal/application/propertyevents"
	"station-listings/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEventsTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.PropertyEvent{}))
	h := &Handlers{Service: &pesvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/api/properties/:id/events", h.GetPropertyEvents)
	return app, db
}

func TestGetPropertyEvents(t *testing.T) {
	app, db := setupEventsTest(t)
	base := time.Date(2025, 9, 10, 1, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&domain.PropertyEvent{PropertyID: 7, Code: "2025091001", EventType: domain.PropertyCreated, EventData: []byte(`{"price":10}`), CreatedAt: base}).Error)
	require.NoError(t, db.Create(&domain.PropertyEvent{PropertyID: 7, Code: "2025091001", EventType: domain.PropertyDeleted, EventData: []byte(`{}`), CreatedAt: base.Add(time.Hour)}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties/7/events", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	events := out["data"].([]interface{})
	require.Len(t, events, 2)
	first := events[0].(map[string]interface{})
	assert.Equal(t, domain.PropertyCreated, first["event_type"])
	assert.Equal(t, 10.0, first["event_data"].(map[string]interface{})["price"])
	assert.Equal(t, domain.PropertyDeleted, events[1].(map[string]interface{})["event_type"])
}

func TestGetPropertyEvents_Empty(t *testing.T) {
	app, _ := setupEventsTest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties/8/events", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out["data"])
}

func TestGetPropertyEvents_BadID(t *testing.T) {
	app, _ := setupEventsTest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/properties/x/events", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
