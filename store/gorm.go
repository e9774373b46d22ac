package store

import (
	"context"
	"errors"

	"gymdesk/models"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// New wraps a gorm handle in the Store interface.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) InsertTenant(ctx context.Context, tenant *models.Tenant) error {
	return s.db.WithContext(ctx).Create(tenant).Error
}

func (s *gormStore) FindTenantByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.WithContext(ctx).First(&tenant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *gormStore) FindTenantByName(ctx context.Context, name string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *gormStore) InsertUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) FindUserByID(ctx context.Context, id, tenantID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) FindUserByEmail(ctx context.Context, tenantID uint, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) TouchUserLogin(ctx context.Context, id, tenantID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("last_login_at", s.db.NowFunc()).Error
}

func (s *gormStore) InsertMember(ctx context.Context, member *models.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *gormStore) FindMemberByID(ctx context.Context, id, tenantID uint) (*models.Member, error) {
	var member models.Member
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *gormStore) ListMembersByTenant(ctx context.Context, tenantID uint) ([]models.Member, error) {
	var members []models.Member
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&members).Error
	return members, err
}

func (s *gormStore) UpdateMember(ctx context.Context, member *models.Member) error {
	return s.db.WithContext(ctx).Save(member).Error
}

func (s *gormStore) DeleteMember(ctx context.Context, id, tenantID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Member{})
	return res.RowsAffected, res.Error
}

func (s *gormStore) InsertPlan(ctx context.Context, plan *models.Plan) error {
	return s.db.WithContext(ctx).Create(plan).Error
}

func (s *gormStore) FindPlanByID(ctx context.Context, id, tenantID uint) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *gormStore) ListPlansByTenant(ctx context.Context, tenantID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (s *gormStore) UpdatePlan(ctx context.Context, plan *models.Plan) error {
	return s.db.WithContext(ctx).Save(plan).Error
}

func (s *gormStore) DeletePlan(ctx context.Context, id, tenantID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Plan{})
	return res.RowsAffected, res.Error
}

func (s *gormStore) InsertMembership(ctx context.Context, membership *models.Membership) error {
	return s.db.WithContext(ctx).Create(membership).Error
}

func (s *gormStore) FindMembershipByID(ctx context.Context, id, tenantID uint) (*models.Membership, error) {
	var membership models.Membership
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (s *gormStore) FindActiveOrPendingMemberships(ctx context.Context, memberID, tenantID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND tenant_id = ? AND status IN ?",
			memberID, tenantID,
			[]models.MembershipStatus{models.MembershipActive, models.MembershipPending}).
		Find(&memberships).Error
	return memberships, err
}

func (s *gormStore) ListMembershipsByTenant(ctx context.Context, tenantID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&memberships).Error
	return memberships, err
}

func (s *gormStore) ListMembershipsByMember(ctx context.Context, memberID, tenantID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND tenant_id = ?", memberID, tenantID).
		Order("created_at DESC").
		Find(&memberships).Error
	return memberships, err
}

func (s *gormStore) UpdateMembership(ctx context.Context, membership *models.Membership) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("id = ? AND tenant_id = ?", membership.ID, membership.TenantID).
		Updates(map[string]interface{}{
			"plan_id":     membership.PlanID,
			"start_date":  membership.StartDate,
			"end_date":    membership.EndDate,
			"price_cents": membership.PriceCents,
			"status":      membership.Status,
			"notes":       membership.Notes,
		})
	return res.RowsAffected, res.Error
}

func (s *gormStore) DeleteMembership(ctx context.Context, id, tenantID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Membership{})
	return res.RowsAffected, res.Error
}

func (s *gormStore) InsertPayment(ctx context.Context, payment *models.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s *gormStore) FindPaymentByID(ctx context.Context, id, tenantID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *gormStore) ListPaymentsByMembership(ctx context.Context, membershipID, tenantID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("membership_id = ? AND tenant_id = ?", membershipID, tenantID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (s *gormStore) ListPaymentsByTenant(ctx context.Context, tenantID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (s *gormStore) UpdatePaymentStatus(ctx context.Context, id, tenantID uint, status models.PaymentStatus) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *gormStore) DeletePayment(ctx context.Context, id, tenantID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Payment{})
	return res.RowsAffected, res.Error
}
