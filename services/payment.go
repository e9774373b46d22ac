package services

import (
	"context"

	"gymdesk/billing"
	"gymdesk/models"
	"gymdesk/store"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// PaymentService is the append-only payment ledger. Payments are capped
// against their membership's price; status toggles PAID/VOID without
// physical deletion, and deletion itself is a separate privileged
// operation.
type PaymentService struct {
	store store.Store
	log   *zap.Logger
	genID *snowflake.Node
}

func NewPaymentService(st store.Store, log *zap.Logger, genID *snowflake.Node) *PaymentService {
	return &PaymentService{store: st, log: log.Named("payment.service"), genID: genID}
}

type RecordPaymentInput struct {
	MembershipID uint
	AmountCents  int64
	Method       models.PaymentMethod
	Status       models.PaymentStatus
	Notes        string
}

// payable reports whether a stored membership state accepts payments.
// EXPIRED stays payable so members can settle debt after the period ends.
func payable(status models.MembershipStatus) bool {
	return status == models.MembershipActive || status == models.MembershipExpired
}

// Record inserts a payment against a membership. The membership fetch,
// eligibility check, cap check and insert run in one transaction; the cap
// is a hard limit, never clamped.
func (s *PaymentService) Record(ctx context.Context, tenantID, createdBy uint, in RecordPaymentInput) (*models.Payment, error) {
	if in.AmountCents <= 0 {
		return nil, billing.ErrInvalidAmount
	}

	status := in.Status
	if status == "" {
		status = models.PaymentPaid
	}
	method := in.Method
	if method == "" {
		method = models.MethodCash
	}

	var recorded *models.Payment
	err := s.store.InTx(ctx, func(tx store.Store) error {
		membership, err := tx.FindMembershipByID(ctx, in.MembershipID, tenantID)
		if err != nil {
			return err
		}
		if membership == nil {
			return ErrNotFound
		}
		if !payable(membership.Status) {
			return ErrInvalidMembershipState
		}

		payments, err := tx.ListPaymentsByMembership(ctx, in.MembershipID, tenantID)
		if err != nil {
			return err
		}
		if paidCents(payments)+in.AmountCents > membership.PriceCents {
			return ErrPaymentExceedsBalance
		}

		payment := &models.Payment{
			TenantID:     tenantID,
			MembershipID: in.MembershipID,
			AmountCents:  in.AmountCents,
			Method:       method,
			Status:       status,
			Reference:    s.genID.Generate().String(),
			Notes:        in.Notes,
			CreatedBy:    createdBy,
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}
		recorded = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("membership_id", in.MembershipID),
		zap.Int64("amount_cents", in.AmountCents),
		zap.String("reference", recorded.Reference))
	return recorded, nil
}

// Get returns the payment for (id, tenant) or ErrNotFound.
func (s *PaymentService) Get(ctx context.Context, id, tenantID uint) (*models.Payment, error) {
	payment, err := s.store.FindPaymentByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// ListByMembership returns the ledger for one membership, newest first.
// The membership must exist within the tenant scope.
func (s *PaymentService) ListByMembership(ctx context.Context, membershipID, tenantID uint) ([]models.Payment, error) {
	membership, err := s.store.FindMembershipByID(ctx, membershipID, tenantID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotFound
	}
	return s.store.ListPaymentsByMembership(ctx, membershipID, tenantID)
}

// ListByTenant returns all payments for the tenant, newest first.
func (s *PaymentService) ListByTenant(ctx context.Context, tenantID uint) ([]models.Payment, error) {
	return s.store.ListPaymentsByTenant(ctx, tenantID)
}

// UpdateStatus toggles a payment between PAID and VOID. Reverting a VOID
// payment to PAID re-validates the cap against the membership's current
// PAID total, so a stale payment cannot push the ledger over the price.
func (s *PaymentService) UpdateStatus(ctx context.Context, id, tenantID uint, status models.PaymentStatus) (*models.Payment, error) {
	var updated *models.Payment
	err := s.store.InTx(ctx, func(tx store.Store) error {
		payment, err := tx.FindPaymentByID(ctx, id, tenantID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrNotFound
		}
		if payment.Status == status {
			updated = payment
			return nil
		}

		if status == models.PaymentPaid {
			membership, err := tx.FindMembershipByID(ctx, payment.MembershipID, tenantID)
			if err != nil {
				return err
			}
			if membership == nil {
				return ErrNotFound
			}
			payments, err := tx.ListPaymentsByMembership(ctx, payment.MembershipID, tenantID)
			if err != nil {
				return err
			}
			if paidCents(payments)+payment.AmountCents > membership.PriceCents {
				return ErrPaymentExceedsBalance
			}
		}

		rows, err := tx.UpdatePaymentStatus(ctx, id, tenantID, status)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		payment.Status = status
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes a payment. Idempotent no-op on a second call.
func (s *PaymentService) Delete(ctx context.Context, id, tenantID uint) (bool, error) {
	rows, err := s.store.DeletePayment(ctx, id, tenantID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// TotalRevenue sums the tenant's PAID payments in display currency.
func (s *PaymentService) TotalRevenue(ctx context.Context, tenantID uint) (float64, error) {
	payments, err := s.store.ListPaymentsByTenant(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return billing.CentsToAmount(paidCents(payments)), nil
}

func paidCents(payments []models.Payment) int64 {
	var sum int64
	for _, p := range payments {
		if p.Status == models.PaymentPaid {
			sum += p.AmountCents
		}
	}
	return sum
}
