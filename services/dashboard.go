package services

import (
	"context"

	"gymdesk/billing"
	"gymdesk/clock"
	"gymdesk/models"
	"gymdesk/store"

	"go.uber.org/zap"
)

// DashboardService computes tenant-level rollups from membership state and
// the payment ledger.
type DashboardService struct {
	store store.Store
	log   *zap.Logger
	clk   clock.Clock
}

func NewDashboardService(st store.Store, log *zap.Logger, clk clock.Clock) *DashboardService {
	return &DashboardService{store: st, log: log.Named("dashboard.service"), clk: clk}
}

type DashboardSummary struct {
	TotalMembers        int     `json:"total_members"`
	ActiveMembers       int     `json:"active_members"`
	ExpiringSoonMembers int     `json:"expiring_soon_members"`
	ExpiredMembers      int     `json:"expired_members"`
	TotalRevenue        float64 `json:"total_revenue"`
}

// Summary buckets each member by the derived status of their latest
// membership (by end date, among stored ACTIVE/EXPIRED ones). Members with
// no qualifying membership count toward the total only. Revenue is the
// tenant-wide PAID sum in display currency.
func (s *DashboardService) Summary(ctx context.Context, tenantID uint) (*DashboardSummary, error) {
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

	latestEnd := make(map[uint]*models.Membership)
	for i := range memberships {
		m := &memberships[i]
		if m.Status != models.MembershipActive && m.Status != models.MembershipExpired {
			continue
		}
		if cur, ok := latestEnd[m.MemberID]; !ok || m.EndDate.After(cur.EndDate) {
			latestEnd[m.MemberID] = m
		}
	}

	now := s.clk.Now()
	summary := &DashboardSummary{
		TotalMembers: len(members),
		TotalRevenue: billing.CentsToAmount(paidCents(payments)),
	}
	for _, member := range members {
		latest, ok := latestEnd[member.ID]
		if !ok {
			continue
		}
		switch billing.DeriveStatus(latest.EndDate, now) {
		case billing.StatusActive:
			summary.ActiveMembers++
		case billing.StatusExpiringSoon:
			summary.ExpiringSoonMembers++
		case billing.StatusExpired:
			summary.ExpiredMembers++
		}
	}
	return summary, nil
}
