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

// GormCasketRepository implements funeral.CasketRepository using GORM
type GormCasketRepository struct {
	db *gorm.DB
}

// NewGormCasketRepository creates a new GormCasketRepository
func NewGormCasketRepository(db *gorm.DB) *GormCasketRepository {
	return &GormCasketRepository{db: db}
}

// FindByID finds a casket by ID
func (r *GormCasketRepository) FindByID(ctx context.Context, id uuid.UUID) (*funeral.Casket, error) {
	var model models.CasketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all caskets matching the filter
func (r *GormCasketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]funeral.Casket, error) {
	var casketModels []models.CasketModel
	query := r.db.WithContext(ctx).Model(&models.CasketModel{})

	if inStock, ok := filter.Filters["in_stock"]; ok && inStock == true {
		query = query.Where("stock > 0")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("model ASC").Find(&casketModels).Error; err != nil {
		return nil, err
	}

	caskets := make([]funeral.Casket, len(casketModels))
	for i, model := range casketModels {
		caskets[i] = *model.ToDomain()
	}
	return caskets, nil
}

// Save creates or updates a casket
func (r *GormCasketRepository) Save(ctx context.Context, c *funeral.Casket) error {
	model := models.CasketModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a casket
func (r *GormCasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CasketModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
