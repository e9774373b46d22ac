package services

import (
	"context"

	"gymdesk/billing"
	"gymdesk/models"
	"gymdesk/store"

	"go.uber.org/zap"
)

type PlanService struct {
	store store.Store
	log   *zap.Logger
}

func NewPlanService(st store.Store, log *zap.Logger) *PlanService {
	return &PlanService{store: st, log: log.Named("plan.service")}
}

type CreatePlanInput struct {
	Name         string
	DurationDays int
	PriceCents   int64
	VisitLimit   int
	Active       *bool
}

type UpdatePlanInput struct {
	Name         *string
	DurationDays *int
	PriceCents   *int64
	VisitLimit   *int
	Active       *bool
}

func (s *PlanService) Create(ctx context.Context, tenantID uint, in CreatePlanInput) (*models.Plan, error) {
	if in.PriceCents < 0 {
		return nil, billing.ErrInvalidAmount
	}

	plan := &models.Plan{
		TenantID:     tenantID,
		Name:         in.Name,
		DurationDays: in.DurationDays,
		PriceCents:   in.PriceCents,
		VisitLimit:   in.VisitLimit,
		Active:       true,
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}
	if err := s.store.InsertPlan(ctx, plan); err != nil {
		return nil, err
	}

	s.log.Info("plan created",
		zap.Uint("tenant_id", tenantID),
		zap.String("name", plan.Name))
	return plan, nil
}

func (s *PlanService) Get(ctx context.Context, id, tenantID uint) (*models.Plan, error) {
	plan, err := s.store.FindPlanByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}
	return plan, nil
}

func (s *PlanService) List(ctx context.Context, tenantID uint) ([]models.Plan, error) {
	return s.store.ListPlansByTenant(ctx, tenantID)
}

func (s *PlanService) Update(ctx context.Context, id, tenantID uint, in UpdatePlanInput) (*models.Plan, error) {
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, billing.ErrInvalidAmount
	}

	plan, err := s.store.FindPlanByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}

	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.DurationDays != nil {
		plan.DurationDays = *in.DurationDays
	}
	if in.PriceCents != nil {
		plan.PriceCents = *in.PriceCents
	}
	if in.VisitLimit != nil {
		plan.VisitLimit = *in.VisitLimit
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}

	if err := s.store.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, id, tenantID uint) (bool, error) {
	rows, err := s.store.DeletePlan(ctx, id, tenantID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
