/*
engine.go - The settlement engine

PURPOSE:
  Orchestrates a ticket purchase from candidate request to committed
  transaction: payment check, quick-pick substitution, limit enforcement,
  payout computation, and the atomic commit of the transaction record
  together with the ticket's sold-count increment.

SETTLEMENT SEQUENCE (Purchase):
  1. Reject if payment proof is missing        -> ErrInvalidPayment
  2. Load the ticket                           -> ErrTicketNotFound
  3. Resolve the pick (quick-pick fallback)
  4. Open ONE atomic scope:
     a. Limit check                            -> ErrLimitExceeded
     b. Positional match count + payout
     c. Confirmation code (bounded retries on collision)
     d. Insert transaction (Redeemed=NO, Cashed=false)
     e. Increment num_sold
  5. Commit. Any failure in 4a-4e rolls the whole scope back and
     surfaces as the typed rejection or ErrStoreFailure.

QUICK-PICK RULE:
  Substitution is all-or-nothing. If ANY of the 5 slots is missing or out
  of the ticket's range, the ENTIRE pick comes from the NumberSource.
  There is deliberately no per-slot fill.

SIDE EFFECTS:
  Exactly one transaction row and one sold-count increment per successful
  call; zero writes on any error path.

SEE ALSO:
  - limiter.go: Quota enforcement
  - payout.go:  Match counting and share table
  - store.go:   The atomic scope contract
*/
package lotto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConfirmationCodeLength matches the original confirmation-number format.
const ConfirmationCodeLength = 10

// codeRetries bounds regeneration attempts on confirmation-code collision.
const codeRetries = 3

// SettlementEngine is the sole entry point for mutating transactions and
// ticket sold-counts.
type SettlementEngine struct {
	store   TxStore
	numbers NumberSource
	codes   CodeGenerator
	limiter PurchaseLimiter

	// now is swappable for tests.
	now func() time.Time
}

// NewSettlementEngine wires the engine with its collaborators.
func NewSettlementEngine(store TxStore, numbers NumberSource, codes CodeGenerator) *SettlementEngine {
	return &SettlementEngine{
		store:   store,
		numbers: numbers,
		codes:   codes,
		limiter: NewPurchaseLimiter(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// =============================================================================
// PURCHASE
// =============================================================================

// Purchase settles a candidate purchase. On success exactly one
// transaction record exists and the ticket's sold counter has grown by
// one; on any error nothing was written.
func (e *SettlementEngine) Purchase(ctx context.Context, req PurchaseRequest) (*Receipt, error) {
	if req.PaymentProof == "" {
		return nil, ErrInvalidPayment
	}

	ticket, err := e.store.GetTicket(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return nil, err
		}
		return nil, &StoreFailureError{Op: "load ticket", Err: err}
	}

	pick, err := e.resolvePick(*ticket, req.Numbers)
	if err != nil {
		return nil, err
	}

	var receipt *Receipt
	err = e.store.WithTx(ctx, func(scope Scope) error {
		if err := e.limiter.CheckAndReserve(ctx, scope, req.UserID, req.TicketID); err != nil {
			return err
		}

		matched := MatchCount(pick, ticket.WinningNumbers)
		share := PayoutShare(matched)
		winnings := ticket.Jackpot.Mul(share)
		winner := matched > 0

		tx := Transaction{
			ID:                TransactionID(uuid.NewString()),
			UserID:            req.UserID,
			TicketID:          ticket.ID,
			TicketName:        ticket.Type,
			Numbers:           pick,
			Winner:            winner,
			Cashed:            false,
			JackpotAtPurchase: ticket.Jackpot,
			Winnings:          winnings,
			Redeemed:          RedemptionNone,
			CreatedAt:         e.now(),
		}

		if err := e.insertWithFreshCode(ctx, scope, &tx); err != nil {
			return err
		}
		if err := scope.IncrementSold(ctx, ticket.ID); err != nil {
			return err
		}

		receipt = &Receipt{
			ConfirmationCode: tx.ConfirmationCode,
			Winnings:         winnings,
			IsWinner:         winner,
		}
		return nil
	})
	if err != nil {
		return nil, settlementError("purchase", err)
	}
	return receipt, nil
}

// insertWithFreshCode generates a confirmation code and inserts the
// transaction, regenerating on collision up to codeRetries times.
func (e *SettlementEngine) insertWithFreshCode(ctx context.Context, scope Scope, tx *Transaction) error {
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := e.codes.New(ConfirmationCodeLength)
		if err != nil {
			return fmt.Errorf("generate confirmation code: %w", err)
		}
		tx.ConfirmationCode = code

		err = scope.InsertTransaction(ctx, *tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateConfirmation) {
			return err
		}
	}
	return fmt.Errorf("confirmation code collisions exhausted %d attempts: %w", codeRetries, ErrDuplicateConfirmation)
}

// resolvePick applies the all-or-nothing quick-pick rule. The user's
// numbers are used only when all 5 slots are present and in range;
// otherwise the entire pick is regenerated.
func (e *SettlementEngine) resolvePick(ticket Ticket, numbers []int) (Pick, error) {
	if pick, ok := NewPick(numbers); ok {
		usable := true
		for _, n := range numbers {
			if !ticket.InRange(n) {
				usable = false
				break
			}
		}
		if usable {
			return pick, nil
		}
	}

	generated, err := e.numbers.Generate(PickSize)
	if err != nil {
		return Pick{}, &StoreFailureError{Op: "quick pick", Err: err}
	}
	pick, ok := NewPick(generated)
	if !ok {
		return Pick{}, fmt.Errorf("number source returned %d numbers, want %d", len(generated), PickSize)
	}
	for _, n := range pick {
		if !ticket.InRange(n) {
			return Pick{}, fmt.Errorf("number source returned %d, outside 1..%d", n, ticket.MaxNumber)
		}
	}
	return pick, nil
}

// =============================================================================
// REDEMPTION
// =============================================================================

// RequestRedemption moves a winning, uncashed transaction owned by the
// user from NO to PENDING. Requesting an already-pending redemption is a
// no-op so retries are safe.
func (e *SettlementEngine) RequestRedemption(ctx context.Context, userID UserID, code string) error {
	err := e.store.WithTx(ctx, func(scope Scope) error {
		tx, err := scope.GetTransactionByCode(ctx, code)
		if err != nil {
			return err
		}
		// A foreign code behaves like an unknown one.
		if tx.UserID != userID {
			return ErrTransactionNotFound
		}
		if !tx.Winner {
			return ErrNotWinner
		}
		if tx.Cashed || tx.Redeemed == RedemptionDone {
			return ErrAlreadyCashed
		}
		if tx.Redeemed == RedemptionPending {
			return nil
		}
		return scope.UpdateRedemption(ctx, code, RedemptionPending, false)
	})
	return settlementError("request redemption", err)
}

// CompleteRedemption finalizes a pending redemption: PENDING -> YES and
// the transaction is marked cashed.
func (e *SettlementEngine) CompleteRedemption(ctx context.Context, code string) error {
	err := e.store.WithTx(ctx, func(scope Scope) error {
		tx, err := scope.GetTransactionByCode(ctx, code)
		if err != nil {
			return err
		}
		if !tx.Winner {
			return ErrNotWinner
		}
		if tx.Cashed || tx.Redeemed == RedemptionDone {
			return ErrAlreadyCashed
		}
		if tx.Redeemed != RedemptionPending {
			return ErrRedemptionNotPending
		}
		return scope.UpdateRedemption(ctx, code, RedemptionDone, true)
	})
	return settlementError("complete redemption", err)
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// settlementError passes typed domain errors through unchanged and wraps
// everything else (driver faults, rollbacks, cancellation) as a store
// failure.
func settlementError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClientError(err) || IsNotFound(err) {
		return err
	}
	return &StoreFailureError{Op: op, Err: err}
}
