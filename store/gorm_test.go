package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/database"
	"gymdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func seedMembership(t *testing.T, st Store, tenantID uint) *models.Membership {
	t.Helper()
	ctx := context.Background()

	member := &models.Member{TenantID: tenantID, FullName: "Ada", Status: models.MemberActive}
	require.NoError(t, st.InsertMember(ctx, member))

	membership := &models.Membership{
		TenantID:   tenantID,
		MemberID:   member.ID,
		StartDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PriceCents: 10000,
		Status:     models.MembershipActive,
		CreatedBy:  1,
	}
	require.NoError(t, st.InsertMembership(ctx, membership))
	return membership
}

func TestFindMembershipScopedByTenant(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	membership := seedMembership(t, st, 1)

	found, err := st.FindMembershipByID(ctx, membership.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, found)

	// Same id under another tenant is a miss, not an error.
	found, err = st.FindMembershipByID(ctx, membership.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindActiveOrPendingMemberships(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	membership := seedMembership(t, st, 1)

	active, err := st.FindActiveOrPendingMemberships(ctx, membership.MemberID, 1)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	membership.Status = models.MembershipCancelled
	_, err = st.UpdateMembership(ctx, membership)
	require.NoError(t, err)

	active, err = st.FindActiveOrPendingMemberships(ctx, membership.MemberID, 1)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestInTxRollsBackOnError(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	membership := seedMembership(t, st, 1)

	boom := errors.New("boom")
	err := st.InTx(ctx, func(tx Store) error {
		payment := &models.Payment{
			TenantID:     1,
			MembershipID: membership.ID,
			AmountCents:  1000,
			Method:       models.MethodCash,
			Status:       models.PaymentPaid,
			Reference:    "ref-1",
			CreatedBy:    1,
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	payments, err := st.ListPaymentsByMembership(ctx, membership.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestUpdatePaymentStatusReportsAffectedRows(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	membership := seedMembership(t, st, 1)

	payment := &models.Payment{
		TenantID:     1,
		MembershipID: membership.ID,
		AmountCents:  1000,
		Method:       models.MethodCash,
		Status:       models.PaymentPaid,
		Reference:    "ref-1",
		CreatedBy:    1,
	}
	require.NoError(t, st.InsertPayment(ctx, payment))

	rows, err := st.UpdatePaymentStatus(ctx, payment.ID, 1, models.PaymentVoid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = st.UpdatePaymentStatus(ctx, payment.ID+1, 1, models.PaymentVoid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestDeleteMembershipAffectedRows(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	membership := seedMembership(t, st, 1)

	rows, err := st.DeleteMembership(ctx, membership.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = st.DeleteMembership(ctx, membership.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}
