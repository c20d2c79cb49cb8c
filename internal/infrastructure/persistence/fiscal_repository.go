package persistence

import (
	"context"
	"errors"

	"github.com/comunidad/backend/internal/domain/fiscal"
	"github.com/comunidad/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFiscalRepository implements fiscal.Repository using GORM.
// The fiscal_settings table holds a single row.
type GormFiscalRepository struct {
	db *gorm.DB
}

// NewGormFiscalRepository creates a new GormFiscalRepository
func NewGormFiscalRepository(db *gorm.DB) *GormFiscalRepository {
	return &GormFiscalRepository{db: db}
}

// Load returns the current settings, or nil when none exist yet
func (r *GormFiscalRepository) Load(ctx context.Context) (*fiscal.Settings, error) {
	var model models.FiscalSettingsModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the settings row
func (r *GormFiscalRepository) Save(ctx context.Context, settings *fiscal.Settings) error {
	model := models.FiscalSettingsModelFromDomain(settings)
	return r.db.WithContext(ctx).Save(model).Error
}
