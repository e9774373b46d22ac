package services

import (
	"context"
	"testing"
	"time"

	"gymdesk/clock"
	"gymdesk/config"
	"gymdesk/database"
	"gymdesk/models"
	"gymdesk/store"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testNow is the pinned clock for every service test.
var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store       store.Store
	members     *MemberService
	plans       *PlanService
	memberships *MembershipService
	payments    *PaymentService
	dashboard   *DashboardService
	auth        *AuthService
	tenant      *models.Tenant
	user        *models.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	st := store.New(db)
	log := zap.NewNop()
	clk := clock.Fixed(testNow)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		JWTSecret: "test-secret",
		JWTIssuer: "gymdesk",
		TokenTTL:  time.Hour,
	}

	env := &testEnv{
		store:       st,
		members:     NewMemberService(st, log, clk),
		plans:       NewPlanService(st, log),
		memberships: NewMembershipService(st, log, clk),
		payments:    NewPaymentService(st, log, node),
		dashboard:   NewDashboardService(st, log, clk),
		auth:        NewAuthService(st, log, clk, cfg),
	}

	ctx := context.Background()
	env.tenant = &models.Tenant{Name: "Test Gym", Email: "owner@test.gym"}
	require.NoError(t, st.InsertTenant(ctx, env.tenant))

	env.user = &models.User{
		TenantID:     env.tenant.ID,
		FullName:     "Front Desk",
		Email:        "desk@test.gym",
		PasswordHash: "hash",
		RoleID:       RoleAdmin,
	}
	require.NoError(t, st.InsertUser(ctx, env.user))

	return env
}

func (e *testEnv) newMember(t *testing.T, name string) *models.Member {
	t.Helper()
	member, err := e.members.Create(context.Background(), e.tenant.ID, CreateMemberInput{FullName: name})
	require.NoError(t, err)
	return member
}

func (e *testEnv) newMembership(t *testing.T, memberID uint, priceCents int64) *models.Membership {
	t.Helper()
	membership, err := e.memberships.Create(context.Background(), e.tenant.ID, e.user.ID, CreateMembershipInput{
		MemberID:   memberID,
		StartDate:  testNow,
		PriceCents: priceCents,
	})
	require.NoError(t, err)
	return membership
}

func TestTenantScopingOnLookups(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	member := env.newMember(t, "Ada")

	// Another tenant must not see this member.
	_, err := env.members.Get(ctx, member.ID, env.tenant.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := env.members.Get(ctx, member.ID, env.tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)
}
