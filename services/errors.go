package services

import "errors"

// Business errors recovered at the HTTP boundary. Anything else coming out
// of a service is a store fault and propagates unmodified.
var (
	// ErrDuplicateActiveMembership rejects a second ACTIVE or PENDING
	// membership for the same member.
	ErrDuplicateActiveMembership = errors.New("member already has an active or pending membership")

	// ErrInvalidMembershipState rejects a payment against a membership
	// whose stored status is not payable.
	ErrInvalidMembershipState = errors.New("membership is not in a payable state")

	// ErrPaymentExceedsBalance rejects a payment that would push the PAID
	// total over the membership price. Never clamped.
	ErrPaymentExceedsBalance = errors.New("payment exceeds membership price")

	// ErrInvalidStatusTransition rejects a stored membership status change
	// outside the lifecycle state machine.
	ErrInvalidStatusTransition = errors.New("invalid membership status transition")

	// ErrNotFound covers any entity missing within the caller's tenant
	// scope.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered for this tenant")
	ErrTenantExists       = errors.New("tenant with this name already exists")
)
