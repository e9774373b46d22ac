package services

import (
	"context"
	"testing"

	"gymdesk/billing"
	"gymdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentCap(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")
	membership := env.newMembership(t, member.ID, 10000)

	pay := func(amount int64) (*models.Payment, error) {
		return env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
			MembershipID: membership.ID,
			AmountCents:  amount,
		})
	}

	first, err := pay(6000)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, first.Status)
	assert.NotEmpty(t, first.Reference)

	details, err := env.members.Details(ctx, member.ID, env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, details.Memberships[0].Paid)
	assert.Equal(t, 40.0, details.Memberships[0].Remaining)

	// 6000 + 5000 would exceed the 10000 price.
	_, err = pay(5000)
	assert.ErrorIs(t, err, ErrPaymentExceedsBalance)

	_, err = pay(4000)
	require.NoError(t, err)

	details, err = env.members.Details(ctx, member.ID, env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, details.Memberships[0].Paid)
	assert.Equal(t, 0.0, details.Memberships[0].Remaining)
}

func TestRecordPaymentMembershipNotFound(t *testing.T) {
	env := setupEnv(t)

	_, err := env.payments.Record(context.Background(), env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: 9999,
		AmountCents:  1000,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPaymentRequiresPayableState(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")

	membership, err := env.memberships.Create(ctx, env.tenant.ID, env.user.ID, CreateMembershipInput{
		MemberID:   member.ID,
		StartDate:  testNow,
		PriceCents: 10000,
		Status:     models.MembershipPending,
	})
	require.NoError(t, err)

	_, err = env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: membership.ID,
		AmountCents:  1000,
	})
	assert.ErrorIs(t, err, ErrInvalidMembershipState)
}

func TestRecordPaymentAcceptsExpiredMembership(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")
	membership := env.newMembership(t, member.ID, 10000)

	expired := models.MembershipExpired
	_, err := env.memberships.Update(ctx, membership.ID, env.tenant.ID, UpdateMembershipInput{Status: &expired})
	require.NoError(t, err)

	// Outstanding debt stays collectible after the period ends.
	_, err = env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: membership.ID,
		AmountCents:  1000,
	})
	assert.NoError(t, err)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")
	membership := env.newMembership(t, member.ID, 10000)

	for _, amount := range []int64{0, -100} {
		_, err := env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
			MembershipID: membership.ID,
			AmountCents:  amount,
		})
		assert.ErrorIs(t, err, billing.ErrInvalidAmount)
	}
}

func TestVoidToggleExcludesAndRestoresPaidTotal(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")
	membership := env.newMembership(t, member.ID, 10000)

	payment, err := env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: membership.ID,
		AmountCents:  6000,
	})
	require.NoError(t, err)

	voided, err := env.payments.UpdateStatus(ctx, payment.ID, env.tenant.ID, models.PaymentVoid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentVoid, voided.Status)

	details, err := env.members.Details(ctx, member.ID, env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, details.Stats.TotalPaid)
	// The voided entry stays in the ledger for audit.
	assert.Len(t, details.Memberships[0].Payments, 1)

	restored, err := env.payments.UpdateStatus(ctx, payment.ID, env.tenant.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, restored.Status)

	details, err = env.members.Details(ctx, member.ID, env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, details.Stats.TotalPaid)
	assert.Equal(t, int64(10000), details.Memberships[0].PriceCents)
}

func TestVoidToPaidRevalidatesCap(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")
	membership := env.newMembership(t, member.ID, 10000)

	first, err := env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: membership.ID,
		AmountCents:  6000,
	})
	require.NoError(t, err)

	_, err = env.payments.UpdateStatus(ctx, first.ID, env.tenant.ID, models.PaymentVoid)
	require.NoError(t, err)

	// With the first payment voided there is room for another 6000.
	_, err = env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: membership.ID,
		AmountCents:  6000,
	})
	require.NoError(t, err)

	// Reverting the stale payment would push the total to 12000 > 10000.
	_, err = env.payments.UpdateStatus(ctx, first.ID, env.tenant.ID, models.PaymentPaid)
	assert.ErrorIs(t, err, ErrPaymentExceedsBalance)
}

func TestUpdatePaymentStatusNotFound(t *testing.T) {
	env := setupEnv(t)

	_, err := env.payments.UpdateStatus(context.Background(), 9999, env.tenant.ID, models.PaymentVoid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePaymentIdempotent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	member := env.newMember(t, "Ada")
	membership := env.newMembership(t, member.ID, 10000)

	payment, err := env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: membership.ID,
		AmountCents:  1000,
	})
	require.NoError(t, err)

	deleted, err := env.payments.Delete(ctx, payment.ID, env.tenant.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = env.payments.Delete(ctx, payment.ID, env.tenant.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestTotalRevenueCountsOnlyPaid(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	ada := env.newMember(t, "Ada")
	bob := env.newMember(t, "Bob")
	adaMembership := env.newMembership(t, ada.ID, 10000)
	bobMembership := env.newMembership(t, bob.ID, 20000)

	_, err := env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: adaMembership.ID,
		AmountCents:  6000,
	})
	require.NoError(t, err)

	voided, err := env.payments.Record(ctx, env.tenant.ID, env.user.ID, RecordPaymentInput{
		MembershipID: bobMembership.ID,
		AmountCents:  5000,
	})
	require.NoError(t, err)
	_, err = env.payments.UpdateStatus(ctx, voided.ID, env.tenant.ID, models.PaymentVoid)
	require.NoError(t, err)

	revenue, err := env.payments.TotalRevenue(ctx, env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, revenue)
}

func TestListPaymentsByMembershipRequiresMembership(t *testing.T) {
	env := setupEnv(t)

	_, err := env.payments.ListByMembership(context.Background(), 9999, env.tenant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
