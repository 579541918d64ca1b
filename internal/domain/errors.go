package domain

import "errors"

// Sentinel errors shared by the store and the services. Callers wrap them with
// context (fmt.Errorf("%w: ...")) and match with errors.Is.
var (
	// ErrValidation reports a record missing required fields or carrying
	// out-of-range values.
	ErrValidation = errors.New("validation failed")

	// ErrNotReady reports a store whose schema has not been created yet.
	ErrNotReady = errors.New("store not initialized")

	// ErrSeed reports a reset-and-seed that failed and was rolled back.
	ErrSeed = errors.New("seeding failed")

	// ErrNotFound reports a missing record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition reports a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)
