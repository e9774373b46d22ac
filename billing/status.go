package billing

import "time"

// DerivedStatus is the read-time projection of a membership computed from
// its end date. It is never stored; the persisted lifecycle state lives in
// models.MembershipStatus.
type DerivedStatus string

const (
	StatusActive       DerivedStatus = "ACTIVE"
	StatusExpiringSoon DerivedStatus = "EXPIRING_SOON"
	StatusExpired      DerivedStatus = "EXPIRED"
)

// ExpiringSoonWindow is how far ahead of expiry a membership is flagged.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// DefaultDurationDays applies when a membership is created without a plan.
// Memberships backed by a plan always use the plan's duration.
const DefaultDurationDays = 30

// DeriveStatus projects a membership's display status from its end date.
// A membership expiring exactly at now is already EXPIRED; one expiring
// exactly seven days out is EXPIRING_SOON.
func DeriveStatus(endDate, now time.Time) DerivedStatus {
	if !endDate.After(now) {
		return StatusExpired
	}
	if !endDate.After(now.Add(ExpiringSoonWindow)) {
		return StatusExpiringSoon
	}
	return StatusActive
}

// EndDate computes a membership's end date from its start date and a
// duration in days. Non-positive durations fall back to the default.
func EndDate(start time.Time, durationDays int) time.Time {
	if durationDays <= 0 {
		durationDays = DefaultDurationDays
	}
	return start.AddDate(0, 0, durationDays)
}
