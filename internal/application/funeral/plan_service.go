package funeral

import (
	"context"
	"fmt"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanService handles funeral plan management
type PlanService struct {
	planRepo   funeral.PlanRepository
	clientRepo funeral.ClientRepository
	logger     *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo funeral.PlanRepository, clientRepo funeral.ClientRepository, logger *zap.Logger) *PlanService {
	return &PlanService{
		planRepo:   planRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create registers a funeral plan
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "funeral_plan", "create")
	defer span.End()

	price := valueobject.NewMoneyUSD(req.Price)
	plan, err := funeral.NewPlan(req.Name, req.Description, price, req.Installments)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrPlanID, plan.ID.String())
	s.logger.Info("Funeral plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("name", plan.Name))

	dto := ToPlanDTO(plan)
	return &dto, nil
}

// Get returns one plan by ID
func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*PlanDTO, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Plan not found")
	}

	dto := ToPlanDTO(plan)
	return &dto, nil
}

// List returns all plans
func (s *PlanService) List(ctx context.Context, filter shared.Filter) ([]PlanDTO, error) {
	plans, err := s.planRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for i := range plans {
		dtos = append(dtos, ToPlanDTO(&plans[i]))
	}
	return dtos, nil
}

// UpdatePricing changes a plan's price and installment count
func (s *PlanService) UpdatePricing(ctx context.Context, id uuid.UUID, req UpdatePlanPricingRequest) (*PlanDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "funeral_plan", "update_pricing")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPlanID, id.String())

	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if plan == nil {
		err := shared.NewDomainError("NOT_FOUND", "Plan not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := plan.UpdatePricing(valueobject.NewMoneyUSD(req.Price), req.Installments); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	dto := ToPlanDTO(plan)
	return &dto, nil
}

// Deactivate retires a plan from new enrollments. Existing clients keep
// their coverage.
func (s *PlanService) Deactivate(ctx context.Context, id uuid.UUID) (*PlanDTO, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Plan not found")
	}

	plan.Deactivate()

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.logger.Info("Funeral plan deactivated", zap.String("plan_id", id.String()))

	dto := ToPlanDTO(plan)
	return &dto, nil
}

// Delete removes a plan. Plans with enrolled clients cannot be deleted;
// deactivate them instead.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return shared.NewDomainError("NOT_FOUND", "Plan not found")
	}

	clients, err := s.clientRepo.FindByPlan(ctx, id, shared.Filter{Page: 1, PageSize: 1})
	if err != nil {
		return fmt.Errorf("failed to check plan clients: %w", err)
	}
	if len(clients) > 0 {
		return shared.NewDomainError("PLAN_IN_USE", "Plan has enrolled clients and cannot be deleted")
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	return nil
}
