package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTokenRepository implements resident.TokenRepository using GORM
type GormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GormTokenRepository
func NewGormTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// FindByID finds a token by ID
func (r *GormTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Token, error) {
	var model models.TokenModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByResident returns all tokens owned by a resident
func (r *GormTokenRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]resident.Token, error) {
	var tokenModels []models.TokenModel
	if err := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("created_at ASC").
		Find(&tokenModels).Error; err != nil {
		return nil, err
	}

	tokens := make([]resident.Token, len(tokenModels))
	for i, model := range tokenModels {
		tokens[i] = *model.ToDomain()
	}
	return tokens, nil
}

// Save creates or updates a token
func (r *GormTokenRepository) Save(ctx context.Context, t *resident.Token) error {
	model := models.TokenModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// MirrorPaymentStateForResident rewrites the payment-state fields of every
// token owned by the resident in one statement
func (r *GormTokenRepository) MirrorPaymentStateForResident(ctx context.Context, residentID uuid.UUID, state resident.PaymentState, lastPayment, nextPayment *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.TokenModel{}).
		Where("resident_id = ?", residentID).
		Updates(map[string]interface{}{
			"payment_state":     string(state),
			"last_payment_date": lastPayment,
			"next_payment_date": nextPayment,
			"updated_at":        time.Now(),
		}).Error
}

// Delete deletes a token
func (r *GormTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TokenModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
