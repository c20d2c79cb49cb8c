package funeral

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientService handles funeral-plan client enrollment
type ClientService struct {
	clientRepo funeral.ClientRepository
	planRepo   funeral.PlanRepository
	logger     *zap.Logger

	now func() time.Time
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo funeral.ClientRepository, planRepo funeral.PlanRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		planRepo:   planRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Create enrolls a client in a plan. The plan must exist and be active;
// the cedula must not already be enrolled.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "funeral_client", "create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPlanID, req.PlanID.String())

	plan, err := s.planRepo.FindByID(ctx, req.PlanID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if plan == nil {
		err := shared.NewDomainError("NOT_FOUND", "Plan not found")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !plan.Active {
		err := shared.NewDomainError("PLAN_INACTIVE", "Plan is no longer open for enrollment")
		telemetry.RecordError(span, err)
		return nil, err
	}

	cedula := strings.ToUpper(strings.TrimSpace(req.Cedula))
	existing, err := s.clientRepo.FindByCedula(ctx, cedula)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check cedula: %w", err)
	}
	if existing != nil {
		err := shared.NewDomainError("CEDULA_EXISTS", "A client with this cedula is already enrolled")
		telemetry.RecordError(span, err)
		return nil, err
	}

	client, err := funeral.NewClient(req.FirstName, req.LastName, cedula,
		req.Phone, req.Address, req.PlanID, s.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrClientID, client.ID.String())
	s.logger.Info("Funeral client enrolled",
		zap.String("client_id", client.ID.String()),
		zap.String("plan_id", req.PlanID.String()))

	dto := ToClientDTO(client)
	return &dto, nil
}

// Get returns one client by ID
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
	}

	dto := ToClientDTO(client)
	return &dto, nil
}

// List returns clients, optionally restricted to one plan
func (s *ClientService) List(ctx context.Context, planID *uuid.UUID, filter shared.Filter) (*ClientListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var (
		clients []funeral.Client
		err     error
	)
	if planID != nil {
		clients, err = s.clientRepo.FindByPlan(ctx, *planID, filter)
	} else {
		clients, err = s.clientRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	dtos := make([]ClientDTO, 0, len(clients))
	for i := range clients {
		dtos = append(dtos, ToClientDTO(&clients[i]))
	}

	result := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// SwitchPlan moves a client to a different active plan
func (s *ClientService) SwitchPlan(ctx context.Context, clientID, planID uuid.UUID) (*ClientDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "funeral_client", "switch_plan")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrClientID, clientID.String(),
		telemetry.SpanAttrPlanID, planID.String(),
	)

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if client == nil {
		err := shared.NewDomainError("NOT_FOUND", "Client not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if plan == nil {
		err := shared.NewDomainError("NOT_FOUND", "Plan not found")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !plan.Active {
		err := shared.NewDomainError("PLAN_INACTIVE", "Plan is no longer open for enrollment")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := client.SwitchPlan(planID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	dto := ToClientDTO(client)
	return &dto, nil
}

// Cancel ends a client's enrollment without removing the record
func (s *ClientService) Cancel(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
	}

	if err := client.Cancel(s.now()); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.logger.Info("Funeral client canceled", zap.String("client_id", id.String()))

	dto := ToClientDTO(client)
	return &dto, nil
}

// Delete removes a client record
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return shared.NewDomainError("NOT_FOUND", "Client not found")
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	return nil
}
