package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValues_FillsEveryColumn(t *testing.T) {
	values := CreateValues(map[string]interface{}{
		"location":       "경기도 화성시",
		"deal_type":      "lease",
		"deposit":        "보증금 3,000",
		"monthly_rent":   "",
		"pump_count":     4.0,
		"floor":          2.0,
		"is_recommended": "on",
		"unknown":        "dropped",
		"code":           "9999",
	})
	assert.Len(t, values, len(propertyFields))
	assert.Equal(t, "경기도 화성시", values["location"])
	assert.Equal(t, "임대", values["deal_type"])
	assert.Equal(t, 3000.0, values["deposit"])
	assert.Nil(t, values["monthly_rent"])
	assert.Nil(t, values["price"])
	assert.Equal(t, 4.0, values["pump_count"])
	assert.Equal(t, "2", values["floor"])
	assert.Equal(t, true, values["is_recommended"])
	assert.Equal(t, false, values["is_urgent"])
	assert.NotContains(t, values, "unknown")
	assert.NotContains(t, values, "code")
}

func TestPatchValues_OnlyPresentKeys(t *testing.T) {
	patch := PatchValues(map[string]interface{}{
		"price":      "1,000",
		"features":   nil,
		"is_urgent":  nil,
		"id":         7.0,
		"code":       "2025091099",
		"created_at": "2020-01-01",
	})
	assert.Equal(t, map[string]interface{}{
		"price":     1000.0,
		"features":  nil,
		"is_urgent": false,
	}, patch)
}

func TestPatchValues_Empty(t *testing.T) {
	assert.Empty(t, PatchValues(map[string]interface{}{}))
	assert.Empty(t, PatchValues(nil))
}

func TestNewProperty(t *testing.T) {
	p, err := newProperty(CreateValues(map[string]interface{}{
		"property_type": "gas_station",
		"deal_type":     "매매",
		"price":         "매매가 12억 5,000",
		"area":          "1,234.5",
		"is_urgent":     true,
	}))
	require.NoError(t, err)
	require.NotNil(t, p.PropertyType)
	assert.Equal(t, "gas_station", *p.PropertyType)
	assert.Equal(t, "매매", *p.DealType)
	require.NotNil(t, p.Price)
	assert.Equal(t, 12.0, *p.Price)
	assert.Equal(t, 1234.5, *p.Area)
	assert.Nil(t, p.Location)
	assert.True(t, p.IsUrgent)
	assert.False(t, p.IsRecommended)
	assert.Zero(t, p.ID)
	assert.Empty(t, p.Code)
}
