package store

import (
	"context"

	"gymdesk/models"
)

// Store is the persistence surface consumed by the services. Every lookup
// is tenant-scoped; a miss returns (nil, nil) and absence is decided by the
// caller, not the store. Monetary fields cross this boundary as integer
// cents.
type Store interface {
	// InTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back on error or
	// panic, so check-then-write sequences release their scope on every
	// exit path.
	InTx(ctx context.Context, fn func(Store) error) error

	// Tenants
	InsertTenant(ctx context.Context, tenant *models.Tenant) error
	FindTenantByID(ctx context.Context, id uint) (*models.Tenant, error)
	FindTenantByName(ctx context.Context, name string) (*models.Tenant, error)

	// Users
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id, tenantID uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, tenantID uint, email string) (*models.User, error)
	TouchUserLogin(ctx context.Context, id, tenantID uint) error

	// Members
	InsertMember(ctx context.Context, member *models.Member) error
	FindMemberByID(ctx context.Context, id, tenantID uint) (*models.Member, error)
	ListMembersByTenant(ctx context.Context, tenantID uint) ([]models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id, tenantID uint) (int64, error)

	// Plans
	InsertPlan(ctx context.Context, plan *models.Plan) error
	FindPlanByID(ctx context.Context, id, tenantID uint) (*models.Plan, error)
	ListPlansByTenant(ctx context.Context, tenantID uint) ([]models.Plan, error)
	UpdatePlan(ctx context.Context, plan *models.Plan) error
	DeletePlan(ctx context.Context, id, tenantID uint) (int64, error)

	// Memberships
	InsertMembership(ctx context.Context, membership *models.Membership) error
	FindMembershipByID(ctx context.Context, id, tenantID uint) (*models.Membership, error)
	FindActiveOrPendingMemberships(ctx context.Context, memberID, tenantID uint) ([]models.Membership, error)
	ListMembershipsByTenant(ctx context.Context, tenantID uint) ([]models.Membership, error)
	ListMembershipsByMember(ctx context.Context, memberID, tenantID uint) ([]models.Membership, error)
	UpdateMembership(ctx context.Context, membership *models.Membership) (int64, error)
	DeleteMembership(ctx context.Context, id, tenantID uint) (int64, error)

	// Payments
	InsertPayment(ctx context.Context, payment *models.Payment) error
	FindPaymentByID(ctx context.Context, id, tenantID uint) (*models.Payment, error)
	ListPaymentsByMembership(ctx context.Context, membershipID, tenantID uint) ([]models.Payment, error)
	ListPaymentsByTenant(ctx context.Context, tenantID uint) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id, tenantID uint, status models.PaymentStatus) (int64, error)
	DeletePayment(ctx context.Context, id, tenantID uint) (int64, error)
}
