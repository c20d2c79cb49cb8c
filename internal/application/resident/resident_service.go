package resident

import (
	"context"
	"fmt"
	"time"

	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResidentService handles resident registration and upkeep
type ResidentService struct {
	residentRepo resident.Repository
	logger       *zap.Logger

	now func() time.Time
}

// NewResidentService creates a new ResidentService
func NewResidentService(residentRepo resident.Repository, logger *zap.Logger) *ResidentService {
	return &ResidentService{
		residentRepo: residentRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Create registers a resident. The cedula must be unique across the
// community; the new resident starts pending for the current cycle.
func (s *ResidentService) Create(ctx context.Context, req CreateResidentRequest) (*ResidentDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "resident", "create")
	defer span.End()

	cedula, err := resident.NormalizeCedula(req.Cedula)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	existing, err := s.residentRepo.FindByCedula(ctx, cedula)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check cedula: %w", err)
	}
	if existing != nil {
		err := shared.NewDomainError("CEDULA_EXISTS", "A resident with this cedula is already registered")
		telemetry.RecordError(span, err)
		return nil, err
	}

	res, err := resident.NewResident(req.FirstName, req.LastName, cedula,
		req.RegistrationNumber, req.Phone, req.Address, s.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.residentRepo.Save(ctx, res); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save resident: %w", err)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrResidentID, res.ID.String())
	s.logger.Info("Resident registered",
		zap.String("resident_id", res.ID.String()),
		zap.String("cedula", res.Cedula))

	dto := ToResidentDTO(res)
	return &dto, nil
}

// Get returns one resident by ID
func (s *ResidentService) Get(ctx context.Context, id uuid.UUID) (*ResidentDTO, error) {
	res, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Resident not found")
	}

	dto := ToResidentDTO(res)
	return &dto, nil
}

// List returns residents filtered by payment state and search term
func (s *ResidentService) List(ctx context.Context, state string, filter shared.Filter) (*ResidentListResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "resident", "list")
	defer span.End()

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var (
		residents []resident.Resident
		err       error
	)
	if state != "" {
		paymentState := resident.PaymentState(state)
		if !paymentState.IsValid() {
			err := shared.NewDomainError("INVALID_STATE", "Unknown payment state filter")
			telemetry.RecordError(span, err)
			return nil, err
		}
		residents, err = s.residentRepo.FindByPaymentState(ctx, paymentState, filter)
	} else {
		residents, err = s.residentRepo.FindAll(ctx, filter)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	total, err := s.residentRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count residents: %w", err)
	}

	dtos := make([]ResidentDTO, 0, len(residents))
	for i := range residents {
		dtos = append(dtos, ToResidentDTO(&residents[i]))
	}

	result := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a resident's names and contact data. Payment state is
// never touched here; that belongs to the payment flow.
func (s *ResidentService) Update(ctx context.Context, id uuid.UUID, req UpdateResidentRequest) (*ResidentDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "resident", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrResidentID, id.String())

	res, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if res == nil {
		err := shared.NewDomainError("NOT_FOUND", "Resident not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := res.FirstName
		lastName := res.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := res.Rename(firstName, lastName); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if req.Phone != nil || req.Address != nil {
		phone := res.Phone
		address := res.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := res.UpdateContact(phone, address); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.residentRepo.Save(ctx, res); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save resident: %w", err)
	}

	dto := ToResidentDTO(res)
	return &dto, nil
}

// Delete removes a resident. Payments, tokens and notification log entries
// are owned by the resident and go with it.
func (s *ResidentService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "resident", "delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrResidentID, id.String())

	res, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if res == nil {
		err := shared.NewDomainError("NOT_FOUND", "Resident not found")
		telemetry.RecordError(span, err)
		return err
	}

	if err := s.residentRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to delete resident: %w", err)
	}

	s.logger.Info("Resident deleted",
		zap.String("resident_id", id.String()),
		zap.String("cedula", res.Cedula))

	return nil
}
