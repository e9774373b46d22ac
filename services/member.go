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

type MemberService struct {
	store store.Store
	log   *zap.Logger
	clk   clock.Clock
}

func NewMemberService(st store.Store, log *zap.Logger, clk clock.Clock) *MemberService {
	return &MemberService{store: st, log: log.Named("member.service"), clk: clk}
}

type CreateMemberInput struct {
	FullName         string
	Email            string
	Phone            string
	DOB              *time.Time
	EmergencyContact string
	MedicalNotes     string
	PhotoURL         string
	Status           models.MemberStatus
}

type UpdateMemberInput struct {
	FullName         *string
	Email            *string
	Phone            *string
	DOB              *time.Time
	EmergencyContact *string
	MedicalNotes     *string
	PhotoURL         *string
	Status           *models.MemberStatus
}

// MemberWithBalance carries the outstanding amount across all of a
// member's memberships, in display currency.
type MemberWithBalance struct {
	models.Member
	RemainingAmount float64 `json:"remaining_amount"`
}

// MembershipDetail is one membership with its ledger and financial rollup.
type MembershipDetail struct {
	models.Membership
	DerivedStatus billing.DerivedStatus `json:"derived_status"`
	Payments      []models.Payment      `json:"payments"`
	Paid          float64               `json:"paid"`
	Remaining     float64               `json:"remaining"`
}

type MemberStats struct {
	TotalPaid      float64 `json:"total_paid"`
	TotalRemaining float64 `json:"total_remaining"`
}

type MemberDetails struct {
	Member      models.Member      `json:"member"`
	Memberships []MembershipDetail `json:"memberships"`
	Stats       MemberStats        `json:"stats"`
}

func (s *MemberService) Create(ctx context.Context, tenantID uint, in CreateMemberInput) (*models.Member, error) {
	status := in.Status
	if status == "" {
		status = models.MemberActive
	}

	member := &models.Member{
		TenantID:         tenantID,
		FullName:         in.FullName,
		Email:            in.Email,
		Phone:            in.Phone,
		DOB:              in.DOB,
		EmergencyContact: in.EmergencyContact,
		MedicalNotes:     in.MedicalNotes,
		PhotoURL:         in.PhotoURL,
		Status:           status,
	}
	if err := s.store.InsertMember(ctx, member); err != nil {
		return nil, err
	}

	s.log.Info("member created",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("member_id", member.ID))
	return member, nil
}

func (s *MemberService) Get(ctx context.Context, id, tenantID uint) (*models.Member, error) {
	member, err := s.store.FindMemberByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

// List returns the tenant's members with their outstanding balances.
func (s *MemberService) List(ctx context.Context, tenantID uint) ([]MemberWithBalance, error) {
	members, err := s.store.ListMembersByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.store.ListMembershipsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	paidByMembership := make(map[uint]int64)
	for _, p := range payments {
		if p.Status == models.PaymentPaid {
			paidByMembership[p.MembershipID] += p.AmountCents
		}
	}
	remainingByMember := make(map[uint]int64)
	for _, m := range memberships {
		remainingByMember[m.MemberID] += m.PriceCents - paidByMembership[m.ID]
	}

	out := make([]MemberWithBalance, 0, len(members))
	for _, m := range members {
		out = append(out, MemberWithBalance{
			Member:          m,
			RemainingAmount: billing.CentsToAmount(remainingByMember[m.ID]),
		})
	}
	return out, nil
}

func (s *MemberService) Update(ctx context.Context, id, tenantID uint, in UpdateMemberInput) (*models.Member, error) {
	member, err := s.store.FindMemberByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	if in.FullName != nil {
		member.FullName = *in.FullName
	}
	if in.Email != nil {
		member.Email = *in.Email
	}
	if in.Phone != nil {
		member.Phone = *in.Phone
	}
	if in.DOB != nil {
		member.DOB = in.DOB
	}
	if in.EmergencyContact != nil {
		member.EmergencyContact = *in.EmergencyContact
	}
	if in.MedicalNotes != nil {
		member.MedicalNotes = *in.MedicalNotes
	}
	if in.PhotoURL != nil {
		member.PhotoURL = *in.PhotoURL
	}
	if in.Status != nil {
		member.Status = *in.Status
	}

	if err := s.store.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete hard-deletes a member. Idempotent no-op on a second call.
func (s *MemberService) Delete(ctx context.Context, id, tenantID uint) (bool, error) {
	rows, err := s.store.DeleteMember(ctx, id, tenantID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Details returns a member with every membership, its ledger and the
// paid/remaining rollups. Remaining can only go negative if the payment
// cap was bypassed, which Record prevents.
func (s *MemberService) Details(ctx context.Context, memberID, tenantID uint) (*MemberDetails, error) {
	member, err := s.store.FindMemberByID(ctx, memberID, tenantID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	memberships, err := s.store.ListMembershipsByMember(ctx, memberID, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	details := &MemberDetails{Member: *member, Memberships: make([]MembershipDetail, 0, len(memberships))}
	for _, m := range memberships {
		payments, err := s.store.ListPaymentsByMembership(ctx, m.ID, tenantID)
		if err != nil {
			return nil, err
		}
		paid := paidCents(payments)
		detail := MembershipDetail{
			Membership:    m,
			DerivedStatus: billing.DeriveStatus(m.EndDate, now),
			Payments:      payments,
			Paid:          billing.CentsToAmount(paid),
			Remaining:     billing.CentsToAmount(m.PriceCents - paid),
		}
		details.Memberships = append(details.Memberships, detail)
		details.Stats.TotalPaid += detail.Paid
		details.Stats.TotalRemaining += detail.Remaining
	}
	return details, nil
}
