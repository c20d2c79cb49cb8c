package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFuneralClientRepository implements funeral.ClientRepository using GORM
type GormFuneralClientRepository struct {
	db *gorm.DB
}

// NewGormFuneralClientRepository creates a new GormFuneralClientRepository
func NewGormFuneralClientRepository(db *gorm.DB) *GormFuneralClientRepository {
	return &GormFuneralClientRepository{db: db}
}

// FindByID finds a client by ID
func (r *GormFuneralClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*funeral.Client, error) {
	var model models.FuneralClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCedula finds a client by national ID
func (r *GormFuneralClientRepository) FindByCedula(ctx context.Context, cedula string) (*funeral.Client, error) {
	var model models.FuneralClientModel
	if err := r.db.WithContext(ctx).First(&model, "cedula = ?", cedula).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPlan finds clients enrolled in a plan
func (r *GormFuneralClientRepository) FindByPlan(ctx context.Context, planID uuid.UUID, filter shared.Filter) ([]funeral.Client, error) {
	var clientModels []models.FuneralClientModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FuneralClientModel{}).
			Where("plan_id = ?", planID),
		filter,
	)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]funeral.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// FindAll finds all clients matching the filter
func (r *GormFuneralClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]funeral.Client, error) {
	var clientModels []models.FuneralClientModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FuneralClientModel{}), filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]funeral.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormFuneralClientRepository) Save(ctx context.Context, c *funeral.Client) error {
	model := models.FuneralClientModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a client
func (r *GormFuneralClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FuneralClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients matching the filter
func (r *GormFuneralClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FuneralClientModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFuneralClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query.Order("last_name ASC, first_name ASC")
}

func (r *GormFuneralClientRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(cedula) LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "plan_id":
			query = query.Where("plan_id = ?", value)
		case "canceled":
			if value == true {
				query = query.Where("canceled_at IS NOT NULL")
			} else {
				query = query.Where("canceled_at IS NULL")
			}
		}
	}

	return query
}
