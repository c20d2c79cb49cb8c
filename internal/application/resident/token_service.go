package resident

import (
	"context"
	"fmt"

	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenService handles access token issuance and lifecycle
type TokenService struct {
	tokenRepo    resident.TokenRepository
	residentRepo resident.Repository
	logger       *zap.Logger
}

// NewTokenService creates a new TokenService
func NewTokenService(tokenRepo resident.TokenRepository, residentRepo resident.Repository, logger *zap.Logger) *TokenService {
	return &TokenService{
		tokenRepo:    tokenRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Create issues a token for a resident. The token starts active and
// mirrors the owner's current payment-state fields.
func (s *TokenService) Create(ctx context.Context, req CreateTokenRequest) (*TokenDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "token", "create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrResidentID, req.ResidentID.String())

	owner, err := s.residentRepo.FindByID(ctx, req.ResidentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if owner == nil {
		err := shared.NewDomainError("NOT_FOUND", "Resident not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	token, err := resident.NewToken(req.ResidentID, req.Name)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	token.PaymentState = owner.PaymentState
	token.LastPaymentDate = owner.LastPaymentDate
	token.NextPaymentDate = owner.NextPaymentDate

	if err := s.tokenRepo.Save(ctx, token); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.logger.Info("Token issued",
		zap.String("token_id", token.ID.String()),
		zap.String("resident_id", req.ResidentID.String()),
		zap.String("name", token.Name))

	dto := ToTokenDTO(token)
	return &dto, nil
}

// ListByResident returns all tokens owned by a resident
func (s *TokenService) ListByResident(ctx context.Context, residentID uuid.UUID) ([]TokenDTO, error) {
	tokens, err := s.tokenRepo.FindByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	dtos := make([]TokenDTO, 0, len(tokens))
	for i := range tokens {
		dtos = append(dtos, ToTokenDTO(&tokens[i]))
	}
	return dtos, nil
}

// Activate enables a token
func (s *TokenService) Activate(ctx context.Context, id uuid.UUID) (*TokenDTO, error) {
	return s.setActivation(ctx, id, true)
}

// Deactivate disables a token without deleting it
func (s *TokenService) Deactivate(ctx context.Context, id uuid.UUID) (*TokenDTO, error) {
	return s.setActivation(ctx, id, false)
}

func (s *TokenService) setActivation(ctx context.Context, id uuid.UUID, active bool) (*TokenDTO, error) {
	token, err := s.tokenRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Token not found")
	}

	if active {
		token.Activate()
	} else {
		token.Deactivate()
	}

	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	dto := ToTokenDTO(token)
	return &dto, nil
}

// Delete removes a token
func (s *TokenService) Delete(ctx context.Context, id uuid.UUID) error {
	token, err := s.tokenRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if token == nil {
		return shared.NewDomainError("NOT_FOUND", "Token not found")
	}

	if err := s.tokenRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	s.logger.Info("Token deleted",
		zap.String("token_id", id.String()),
		zap.String("resident_id", token.ResidentID.String()))

	return nil
}
