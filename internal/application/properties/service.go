package properties

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"station-listings/internal/domain"
	"station-listings/internal/pkg/constants"

	"gorm.io/gorm"
)

// DefaultListLimit caps list queries.
const DefaultListLimit = 100

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

// CreateResult is returned by CreateProperty.
type CreateResult struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// CreateProperty normalizes body, assigns a listing code and inserts the row.
// The create is detached from request cancellation: once started it runs to
// success, a fatal store error or ErrCodeExhausted.
func (s *Service) CreateProperty(ctx context.Context, body map[string]interface{}) (*CreateResult, error) {
	ctx = context.WithoutCancel(ctx)
	p, err := newProperty(CreateValues(body))
	if err != nil {
		return nil, ErrInvalidBody
	}
	gen := &CodeGenerator{Store: &GormStore{DB: s.DB}, Now: s.Now}
	code, err := gen.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	propertiesCreated.Inc()
	return &CreateResult{ID: p.ID, Code: code}, nil
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProperty applies the normalized patch and returns the stored row.
// Fields missing from body are left untouched.
func (s *Service) UpdateProperty(ctx context.Context, id int64, body map[string]interface{}) (*domain.Property, error) {
	patch := PatchValues(body)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Property
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(patch) == 0 {
			return nil
		}
		if err := tx.Model(&domain.Property{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return err
		}
		return tx.Create(newEvent(p.ID, p.Code, domain.PropertyUpdated, patch)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetProperty(ctx, id)
}

func (s *Service) DeleteProperty(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Property
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Property{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(newEvent(p.ID, p.Code, domain.PropertyDeleted, p)).Error
	})
}

// ListQuery holds the list filters. Category is a site slug (see
// constants.ResolveCategory); DealType accepts "sale"/"lease" or the stored
// form; ListingID matches an exact id or a code substring.
type ListQuery struct {
	Category     string
	PropertyType string
	DealType     string
	ListingID    string
	Limit        int
}

// ListProperties returns properties newest first, ties broken by id.
func (s *Service) ListProperties(ctx context.Context, q ListQuery) ([]domain.Property, error) {
	db := s.DB.WithContext(ctx).Model(&domain.Property{})

	catType, catDeal := constants.ResolveCategory(q.Category)
	if catType != "" {
		db = db.Where("property_type = ?", catType)
	}
	if catDeal != "" {
		db = db.Where("deal_type = ?", catDeal)
	}
	if constants.IsValidPropertyType(q.PropertyType) {
		db = db.Where("property_type = ?", q.PropertyType)
	}
	if deal := constants.DealTypeFromParam(q.DealType); deal != "" {
		db = db.Where("deal_type = ?", deal)
	}
	if lid := strings.ToLower(strings.TrimSpace(q.ListingID)); lid != "" {
		like := "%" + strings.NewReplacer("%", "", "_", "").Replace(lid) + "%"
		if n, err := strconv.ParseInt(lid, 10, 64); err == nil {
			db = db.Where("id = ? OR code LIKE ?", n, like)
		} else {
			db = db.Where("LOWER(code) LIKE ?", like)
		}
	}

	limit := q.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	var out []domain.Property
	if err := db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
