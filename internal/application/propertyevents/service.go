package propertyevents

import (
	"context"
	"errors"

	"station-listings/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetPropertyEvents returns the history of a property, oldest first. The
// property itself may already be deleted.
func (s *Service) GetPropertyEvents(ctx context.Context, propertyID int64) ([]domain.PropertyEvent, error) {
	if propertyID <= 0 {
		return nil, errors.New("property_id is required")
	}
	var events []domain.PropertyEvent
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
