package funeral

import (
	"context"
	"fmt"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CasketService handles casket inventory
type CasketService struct {
	casketRepo funeral.CasketRepository
	logger     *zap.Logger
}

// NewCasketService creates a new CasketService
func NewCasketService(casketRepo funeral.CasketRepository, logger *zap.Logger) *CasketService {
	return &CasketService{
		casketRepo: casketRepo,
		logger:     logger,
	}
}

// Create registers a casket model
func (s *CasketService) Create(ctx context.Context, req CreateCasketRequest) (*CasketDTO, error) {
	casket, err := funeral.NewCasket(req.Model, req.Material, valueobject.NewMoneyUSD(req.Price), req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.casketRepo.Save(ctx, casket); err != nil {
		return nil, fmt.Errorf("failed to save casket: %w", err)
	}

	s.logger.Info("Casket model registered",
		zap.String("casket_id", casket.ID.String()),
		zap.String("model", casket.Model))

	dto := ToCasketDTO(casket)
	return &dto, nil
}

// Get returns one casket model by ID
func (s *CasketService) Get(ctx context.Context, id uuid.UUID) (*CasketDTO, error) {
	casket, err := s.casketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if casket == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Casket not found")
	}

	dto := ToCasketDTO(casket)
	return &dto, nil
}

// List returns the casket inventory
func (s *CasketService) List(ctx context.Context, filter shared.Filter) ([]CasketDTO, error) {
	caskets, err := s.casketRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list caskets: %w", err)
	}

	dtos := make([]CasketDTO, 0, len(caskets))
	for i := range caskets {
		dtos = append(dtos, ToCasketDTO(&caskets[i]))
	}
	return dtos, nil
}

// AdjustStock applies a stock delta. Negative deltas cannot push stock
// below zero.
func (s *CasketService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*CasketDTO, error) {
	casket, err := s.casketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if casket == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Casket not found")
	}

	if err := casket.AdjustStock(delta); err != nil {
		return nil, err
	}

	if err := s.casketRepo.Save(ctx, casket); err != nil {
		return nil, fmt.Errorf("failed to save casket: %w", err)
	}

	s.logger.Info("Casket stock adjusted",
		zap.String("casket_id", id.String()),
		zap.Int("delta", delta),
		zap.Int("stock", casket.Stock))

	dto := ToCasketDTO(casket)
	return &dto, nil
}

// Delete removes a casket model from inventory
func (s *CasketService) Delete(ctx context.Context, id uuid.UUID) error {
	casket, err := s.casketRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if casket == nil {
		return shared.NewDomainError("NOT_FOUND", "Casket not found")
	}

	if err := s.casketRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete casket: %w", err)
	}

	return nil
}
