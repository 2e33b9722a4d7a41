/*
errors.go - Centralized error types for the settlement engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (the API layer) classify errors with errors.Is and the helpers
  at the bottom of this file.

ERROR CATEGORIES:
  1. Pre-scope errors  - Detected before the atomic scope opens
                         (InvalidPayment, TicketNotFound)
  2. Business rejections - LimitExceeded
  3. Store errors      - Anything that failed inside the atomic scope;
                         surfaced as StoreFailure after rollback

USAGE:
  receipt, err := engine.Purchase(ctx, req)
  if errors.Is(err, lotto.ErrLimitExceeded) {
      var limitErr *lotto.LimitExceededError
      errors.As(err, &limitErr) // current count and max
  }

SEE ALSO:
  - engine.go: Produces these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package lotto

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPayment is returned when the request carries no payment
	// proof. User-correctable.
	ErrInvalidPayment = errors.New("missing payment information")

	// ErrTicketNotFound is returned when the requested ticket does not
	// exist in the catalog.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrLimitExceeded is returned when a purchase would exceed the
	// per-user, per-ticket quota. See LimitExceededError for details.
	ErrLimitExceeded = errors.New("purchase limit exceeded")

	// ErrStoreFailure is returned when the atomic scope failed and was
	// rolled back. Transient or persistent; safe to retry.
	ErrStoreFailure = errors.New("store failure")

	// ErrDuplicateConfirmation is returned by the store when an insert
	// collides on the confirmation code. The engine retries a bounded
	// number of times before giving up with ErrStoreFailure.
	ErrDuplicateConfirmation = errors.New("duplicate confirmation code")

	// ErrTransactionNotFound is returned when a confirmation code does
	// not resolve to a transaction owned by the caller.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotWinner is returned when redemption is attempted on a
	// non-winning transaction.
	ErrNotWinner = errors.New("transaction is not a winner")

	// ErrAlreadyCashed is returned when redemption is attempted on a
	// transaction that was already paid out.
	ErrAlreadyCashed = errors.New("transaction already cashed")

	// ErrRedemptionNotPending is returned when completing a redemption
	// that was never requested.
	ErrRedemptionNotPending = errors.New("redemption not pending")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// LimitExceededError reports a purchase quota rejection with the observed
// count and the configured maximum.
type LimitExceededError struct {
	UserID   UserID
	TicketID TicketID
	Count    int
	Max      int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("purchase limit exceeded for user %s on ticket %s: %d of %d used",
		e.UserID, e.TicketID, e.Count, e.Max)
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}

// StoreFailureError wraps a failure that occurred inside (or opening) the
// atomic scope. The scope has been rolled back; nothing was written.
type StoreFailureError struct {
	Op  string
	Err error
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("%s: store failure: %v", e.Op, e.Err)
}

func (e *StoreFailureError) Unwrap() error {
	return ErrStoreFailure
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// IsClientError returns true if the error is due to the caller's input
// and should not be retried verbatim.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrLimitExceeded) ||
		errors.Is(err, ErrNotWinner) ||
		errors.Is(err, ErrAlreadyCashed) ||
		errors.Is(err, ErrRedemptionNotPending)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
