package properties

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"station-listings/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormStore is the CodeStore over the properties table.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) CountCodePrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).Where("code LIKE ?", prefix+"%").Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// InsertWithCode inserts p and its CREATED event in one transaction, so a
// failed attempt leaves nothing behind.
func (s *GormStore) InsertWithCode(ctx context.Context, p *domain.Property, code string) error {
	p.ID = 0
	p.Code = code
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(newEvent(p.ID, p.Code, domain.PropertyCreated, p)).Error
	})
	if err != nil {
		p.ID = 0
		if IsCodeConflict(err) {
			return fmt.Errorf("%w: %s", ErrCodeConflict, code)
		}
		return err
	}
	return nil
}

// IsCodeConflict reports whether err is a unique violation on the code column.
// Unique violations on any other constraint are not code conflicts.
func IsCodeConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation && strings.Contains(pgErr.ConstraintName, "code")
	}
	// sqlite: "UNIQUE constraint failed: properties.code"
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "properties.code")
}

func newEvent(propertyID int64, code, eventType string, data interface{}) *domain.PropertyEvent {
	b, err := json.Marshal(data)
	if err != nil {
		b = []byte("{}")
	}
	return &domain.PropertyEvent{
		PropertyID: propertyID,
		Code:       code,
		EventType:  eventType,
		EventData:  datatypes.JSON(b),
	}
}
