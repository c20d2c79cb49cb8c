package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormResidentRepository implements resident.Repository using GORM
type GormResidentRepository struct {
	db *gorm.DB
}

// NewGormResidentRepository creates a new GormResidentRepository
func NewGormResidentRepository(db *gorm.DB) *GormResidentRepository {
	return &GormResidentRepository{db: db}
}

// FindByID finds a resident by ID
func (r *GormResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	var model models.ResidentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCedula finds a resident by national ID
func (r *GormResidentRepository) FindByCedula(ctx context.Context, cedula string) (*resident.Resident, error) {
	var model models.ResidentModel
	if err := r.db.WithContext(ctx).First(&model, "cedula = ?", cedula).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all residents matching the filter
func (r *GormResidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]resident.Resident, error) {
	var residentModels []models.ResidentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ResidentModel{}), filter)

	if err := query.Find(&residentModels).Error; err != nil {
		return nil, err
	}

	residents := make([]resident.Resident, len(residentModels))
	for i, model := range residentModels {
		residents[i] = *model.ToDomain()
	}
	return residents, nil
}

// FindByPaymentState finds residents in the given payment state
func (r *GormResidentRepository) FindByPaymentState(ctx context.Context, state resident.PaymentState, filter shared.Filter) ([]resident.Resident, error) {
	var residentModels []models.ResidentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ResidentModel{}).
			Where("payment_state = ?", state),
		filter,
	)

	if err := query.Find(&residentModels).Error; err != nil {
		return nil, err
	}

	residents := make([]resident.Resident, len(residentModels))
	for i, model := range residentModels {
		residents[i] = *model.ToDomain()
	}
	return residents, nil
}

// FindPendingDueBefore returns pending residents whose next payment date is
// strictly before the cutoff
func (r *GormResidentRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time) ([]resident.Resident, error) {
	var residentModels []models.ResidentModel
	if err := r.db.WithContext(ctx).
		Where("payment_state = ? AND next_payment_date IS NOT NULL AND next_payment_date < ?",
			resident.PaymentStatePending, cutoff).
		Order("next_payment_date ASC").
		Find(&residentModels).Error; err != nil {
		return nil, err
	}

	residents := make([]resident.Resident, len(residentModels))
	for i, model := range residentModels {
		residents[i] = *model.ToDomain()
	}
	return residents, nil
}

// FindPendingDueBetween returns pending residents whose next payment date
// falls inside [from, to]
func (r *GormResidentRepository) FindPendingDueBetween(ctx context.Context, from, to time.Time) ([]resident.Resident, error) {
	var residentModels []models.ResidentModel
	if err := r.db.WithContext(ctx).
		Where("payment_state = ? AND next_payment_date >= ? AND next_payment_date <= ?",
			resident.PaymentStatePending, from, to).
		Order("next_payment_date ASC").
		Find(&residentModels).Error; err != nil {
		return nil, err
	}

	residents := make([]resident.Resident, len(residentModels))
	for i, model := range residentModels {
		residents[i] = *model.ToDomain()
	}
	return residents, nil
}

// Save creates or updates a resident
func (r *GormResidentRepository) Save(ctx context.Context, res *resident.Resident) error {
	model := models.ResidentModelFromDomain(res)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a resident. Payments, tokens and notification entries are
// removed by the database cascade.
func (r *GormResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ResidentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts residents matching the filter
func (r *GormResidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ResidentModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormResidentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		query = query.Order(residentSort.Clause(filter.OrderBy, filter.OrderDir))
	} else {
		query = query.Order("last_name ASC, first_name ASC")
	}

	return query
}

func (r *GormResidentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(cedula) LIKE ? OR LOWER(registration_number) LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_state":
			query = query.Where("payment_state = ?", value)
		case "delinquent":
			if value == true {
				query = query.Where("payment_state IN ?", []string{
					resident.PaymentStateOverdue.String(),
					resident.PaymentStateLate.String(),
				})
			}
		}
	}

	return query
}
