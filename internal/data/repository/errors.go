package repository

import "errors"

// Unique-constraint violations surfaced as typed errors so services can
// resolve write races without string matching.
var (
	// ErrDuplicateKey: a pending payment already exists for the idempotency key.
	ErrDuplicateKey = errors.New("pending payment already exists for idempotency key")
	// ErrDuplicateBooking: a booking already exists for the payment reference.
	ErrDuplicateBooking = errors.New("booking already exists for payment reference")
	// ErrStateConflict: a guarded status transition matched no row because the
	// record already moved past the expected state.
	ErrStateConflict = errors.New("pending payment already past expected state")
)
