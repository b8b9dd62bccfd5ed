package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property event types.
const (
	PropertyCreated = "CREATED"
	PropertyUpdated = "UPDATED"
	PropertyDeleted = "DELETED"
)

// PropertyEvent records a mutation of a property. property_id is not a foreign
// key so the history survives the delete it records.
type PropertyEvent struct {
	EventID    uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	PropertyID int64          `gorm:"column:property_id;not null;index" json:"property_id"`
	Code       string         `gorm:"column:code;type:varchar(32)" json:"code"`
	EventType  string         `gorm:"column:event_type;type:varchar(16);not null" json:"event_type"`
	EventData  datatypes.JSON `gorm:"column:event_data;type:jsonb" json:"event_data"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (PropertyEvent) TableName() string {
	return "property_events"
}

func (e *PropertyEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
