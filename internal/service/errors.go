package service

import "errors"

// Sentinel errors the bot layer maps to user-visible messages. Store
// failures are wrapped with %w and reach the handler as anything else.
var (
	// ErrNotAuthorized means the caller is not in the required role set.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNoActiveSession means a callback arrived for a wizard that no
	// longer exists (cancelled, completed, expired, or lost on restart).
	ErrNoActiveSession = errors.New("no active session")
	// ErrNothingPending means the scan found no record awaiting work.
	ErrNothingPending = errors.New("nothing pending")
	// ErrNotFound means an explicitly named dialogue does not exist.
	ErrNotFound = errors.New("dialogue not found")
	// ErrInvalidInput covers script-validation failures, unknown labels,
	// and out-of-order wizard steps.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotExpecting means free text arrived without a prior /submit.
	ErrNotExpecting = errors.New("not expecting a submission")
)
