package persistence

import (
	"context"
	"errors"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFuneralPlanRepository implements funeral.PlanRepository using GORM
type GormFuneralPlanRepository struct {
	db *gorm.DB
}

// NewGormFuneralPlanRepository creates a new GormFuneralPlanRepository
func NewGormFuneralPlanRepository(db *gorm.DB) *GormFuneralPlanRepository {
	return &GormFuneralPlanRepository{db: db}
}

// FindByID finds a plan by ID
func (r *GormFuneralPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*funeral.Plan, error) {
	var model models.FuneralPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all plans matching the filter
func (r *GormFuneralPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]funeral.Plan, error) {
	var planModels []models.FuneralPlanModel
	query := r.db.WithContext(ctx).Model(&models.FuneralPlanModel{})

	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&planModels).Error; err != nil {
		return nil, err
	}

	plans := make([]funeral.Plan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans, nil
}

// Save creates or updates a plan
func (r *GormFuneralPlanRepository) Save(ctx context.Context, p *funeral.Plan) error {
	model := models.FuneralPlanModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a plan
func (r *GormFuneralPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FuneralPlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
