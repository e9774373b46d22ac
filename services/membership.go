package services

import (
	"context"
	"time"

	"gymdesk/billing"
	"gymdesk/clock"
	"gymdesk/models"
	"gymdesk/store"

	"go.uber.org/zap"
)

// MembershipService owns the membership lifecycle: creation under the
// one-active-or-pending-per-member invariant, partial updates constrained
// by the status state machine, and hard deletes.
type MembershipService struct {
	store store.Store
	log   *zap.Logger
	clk   clock.Clock
}

func NewMembershipService(st store.Store, log *zap.Logger, clk clock.Clock) *MembershipService {
	return &MembershipService{store: st, log: log.Named("membership.service"), clk: clk}
}

type CreateMembershipInput struct {
	MemberID   uint
	PlanID     *uint
	StartDate  time.Time
	PriceCents int64
	Status     models.MembershipStatus
	Notes      string
}

type UpdateMembershipInput struct {
	PlanID     *uint
	StartDate  *time.Time
	EndDate    *time.Time
	PriceCents *int64
	Status     *models.MembershipStatus
	Notes      *string
}

// MembershipView pairs a stored membership with its read-time display
// status.
type MembershipView struct {
	models.Membership
	DerivedStatus billing.DerivedStatus `json:"derived_status"`
}

// Create inserts a membership for a member. The duplicate check and the
// insert run in one transaction so two concurrent calls cannot both pass
// the check. End date comes from the plan duration when a plan is
// referenced, otherwise from the 30-day default.
func (s *MembershipService) Create(ctx context.Context, tenantID, createdBy uint, in CreateMembershipInput) (*models.Membership, error) {
	if in.PriceCents < 0 {
		return nil, billing.ErrInvalidAmount
	}

	status := in.Status
	if status == "" {
		status = models.MembershipActive
	}

	var created *models.Membership
	err := s.store.InTx(ctx, func(tx store.Store) error {
		member, err := tx.FindMemberByID(ctx, in.MemberID, tenantID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrNotFound
		}

		existing, err := tx.FindActiveOrPendingMemberships(ctx, in.MemberID, tenantID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrDuplicateActiveMembership
		}

		durationDays := 0
		if in.PlanID != nil {
			plan, err := tx.FindPlanByID(ctx, *in.PlanID, tenantID)
			if err != nil {
				return err
			}
			if plan == nil {
				return ErrNotFound
			}
			durationDays = plan.DurationDays
		}

		membership := &models.Membership{
			TenantID:   tenantID,
			MemberID:   in.MemberID,
			PlanID:     in.PlanID,
			StartDate:  in.StartDate,
			EndDate:    billing.EndDate(in.StartDate, durationDays),
			PriceCents: in.PriceCents,
			Status:     status,
			Notes:      in.Notes,
			CreatedBy:  createdBy,
		}
		if err := tx.InsertMembership(ctx, membership); err != nil {
			return err
		}
		created = membership
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("membership created",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("member_id", in.MemberID),
		zap.Uint("membership_id", created.ID))
	return created, nil
}

// Get returns the membership for (id, tenant) with its derived display
// status, or ErrNotFound.
func (s *MembershipService) Get(ctx context.Context, id, tenantID uint) (*MembershipView, error) {
	membership, err := s.store.FindMembershipByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotFound
	}
	return &MembershipView{
		Membership:    *membership,
		DerivedStatus: billing.DeriveStatus(membership.EndDate, s.clk.Now()),
	}, nil
}

// ListByTenant returns all memberships for a tenant with their derived
// display status.
func (s *MembershipService) ListByTenant(ctx context.Context, tenantID uint) ([]MembershipView, error) {
	memberships, err := s.store.ListMembershipsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.project(memberships), nil
}

// ListByMember returns a member's memberships, newest first, with derived
// status.
func (s *MembershipService) ListByMember(ctx context.Context, memberID, tenantID uint) ([]MembershipView, error) {
	memberships, err := s.store.ListMembershipsByMember(ctx, memberID, tenantID)
	if err != nil {
		return nil, err
	}
	return s.project(memberships), nil
}

func (s *MembershipService) project(memberships []models.Membership) []MembershipView {
	now := s.clk.Now()
	views := make([]MembershipView, 0, len(memberships))
	for _, m := range memberships {
		views = append(views, MembershipView{
			Membership:    m,
			DerivedStatus: billing.DeriveStatus(m.EndDate, now),
		})
	}
	return views
}

// Update mutates only the supplied fields, carrying forward the rest.
// Status changes must follow the lifecycle state machine; EXPIRED and
// CANCELLED are terminal.
func (s *MembershipService) Update(ctx context.Context, id, tenantID uint, in UpdateMembershipInput) (*models.Membership, error) {
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, billing.ErrInvalidAmount
	}

	var updated *models.Membership
	err := s.store.InTx(ctx, func(tx store.Store) error {
		current, err := tx.FindMembershipByID(ctx, id, tenantID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}

		if in.Status != nil && *in.Status != current.Status {
			if !transitionAllowed(current.Status, *in.Status) {
				return ErrInvalidStatusTransition
			}
			current.Status = *in.Status
		}
		if in.PlanID != nil {
			current.PlanID = in.PlanID
		}
		if in.StartDate != nil {
			current.StartDate = *in.StartDate
		}
		if in.EndDate != nil {
			current.EndDate = *in.EndDate
		}
		if in.PriceCents != nil {
			current.PriceCents = *in.PriceCents
		}
		if in.Notes != nil {
			current.Notes = *in.Notes
		}

		rows, err := tx.UpdateMembership(ctx, current)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes a membership. A second call for the same id is a
// no-op returning false.
func (s *MembershipService) Delete(ctx context.Context, id, tenantID uint) (bool, error) {
	rows, err := s.store.DeleteMembership(ctx, id, tenantID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// transitionAllowed encodes PENDING -> ACTIVE -> {EXPIRED, CANCELLED};
// terminal states never move again.
func transitionAllowed(from, to models.MembershipStatus) bool {
	switch from {
	case models.MembershipPending:
		return to == models.MembershipActive
	case models.MembershipActive:
		return to == models.MembershipExpired || to == models.MembershipCancelled
	default:
		return false
	}
}
