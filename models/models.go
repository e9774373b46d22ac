package models

import (
	"time"
)

// MemberStatus is the administrative flag on a member record. It is
// independent of any membership-derived status.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberExpired   MemberStatus = "EXPIRED"
	MemberSuspended MemberStatus = "SUSPENDED"
)

// MembershipStatus is the stored lifecycle state of a membership. It is
// distinct from billing.DerivedStatus, which is computed from end_date at
// read time and never persisted.
type MembershipStatus string

const (
	MembershipPending   MembershipStatus = "PENDING"
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipExpired   MembershipStatus = "EXPIRED"
	MembershipCancelled MembershipStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "PAID"
	PaymentVoid PaymentStatus = "VOID"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodCard PaymentMethod = "CARD"
)

type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TenantID     uint      `gorm:"not null;index;uniqueIndex:idx_tenant_email" json:"tenant_id"`
	Tenant       Tenant    `json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"not null;uniqueIndex:idx_tenant_email" json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	RoleID       uint      `gorm:"not null;default:2" json:"role_id"`
	LastLoginAt  time.Time `json:"last_login_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Member struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	TenantID         uint         `gorm:"not null;index" json:"tenant_id"`
	Tenant           Tenant       `json:"-"`
	FullName         string       `gorm:"not null" json:"full_name"`
	Email            string       `json:"email,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	DOB              *time.Time   `json:"dob,omitempty"`
	EmergencyContact string       `json:"emergency_contact,omitempty"`
	MedicalNotes     string       `json:"medical_notes,omitempty"`
	PhotoURL         string       `json:"photo_url,omitempty"`
	Status           MemberStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	Memberships      []Membership `json:"-"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type Plan struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TenantID     uint   `gorm:"not null;index;uniqueIndex:idx_tenant_plan_name" json:"tenant_id"`
	Tenant       Tenant `json:"-"`
	Name         string `gorm:"not null;uniqueIndex:idx_tenant_plan_name" json:"name"`
	DurationDays int    `gorm:"not null" json:"duration_days"`
	PriceCents   int64  `gorm:"not null" json:"price_cents"`
	// VisitLimit of 0 means unlimited visits.
	VisitLimit int       `json:"visit_limit"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Membership struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TenantID  uint       `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant     `json:"-"`
	MemberID  uint       `gorm:"not null;index" json:"member_id"`
	Member    Member     `json:"-"`
	PlanID    *uint      `json:"plan_id,omitempty"`
	Plan      *Plan      `json:"-"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   time.Time  `gorm:"not null" json:"end_date"`
	// PriceCents is the authoritative amount owed for the period.
	PriceCents int64            `gorm:"not null" json:"price_cents"`
	Status     MembershipStatus `gorm:"not null;default:'ACTIVE';index" json:"status"`
	Notes      string           `json:"notes,omitempty"`
	CreatedBy  uint             `gorm:"not null" json:"created_by"`
	Payments   []Payment        `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type Payment struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	TenantID     uint          `gorm:"not null;index" json:"tenant_id"`
	Tenant       Tenant        `json:"-"`
	MembershipID uint          `gorm:"not null;index" json:"membership_id"`
	Membership   Membership    `json:"-"`
	AmountCents  int64         `gorm:"not null" json:"amount_cents"`
	Method       PaymentMethod `gorm:"not null;default:'CASH'" json:"method"`
	Status       PaymentStatus `gorm:"not null;default:'PAID'" json:"status"`
	// Reference is a snowflake-derived receipt number, unique per payment.
	Reference string    `gorm:"unique;not null" json:"reference"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
