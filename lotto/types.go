/*
Package lotto provides the core ticket purchase settlement engine.

PURPOSE:
  This package contains the domain types and algorithms for settling a
  lottery ticket purchase: validating the pick, enforcing the per-user
  purchase limit, computing winnings against the ticket's draw, and
  recording the outcome atomically.

KEY CONCEPTS IN THIS FILE (types.go):
  - Ticket: A purchasable ticket type with its draw and jackpot
  - Pick: An ordered sequence of exactly 5 numbers
  - PurchaseRequest: A candidate purchase (user, ticket, numbers, payment)
  - Transaction: The immutable record of a settled purchase
  - Receipt: What the caller gets back on success

DESIGN PRINCIPLES:
  1. Immutability: Transactions are written once; only the redemption
     fields (Cashed, Redeemed) may change afterwards
  2. Precision: Uses decimal.Decimal for jackpots and winnings
  3. Type Safety: Strong typing for user/ticket/transaction IDs
  4. Explicit state: every operation takes the user as a parameter;
     there is no ambient session

SEE ALSO:
  - payout.go: Match counting and jackpot-share mapping
  - limiter.go: Per-user purchase quota
  - engine.go: The settlement orchestration
  - store.go: Persistence interfaces
*/
package lotto

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type TicketID string
type TransactionID string

// =============================================================================
// PICK - Ordered sequence of exactly 5 numbers
// =============================================================================

// PickSize is the number of entries in every pick and every draw.
const PickSize = 5

// Pick is an ordered sequence of PickSize numbers. Order matters: matches
// are counted position by position against the ticket's draw, never as a
// set intersection.
type Pick [PickSize]int

// NewPick builds a Pick from a slice. It returns false if the slice does
// not hold exactly PickSize entries.
func NewPick(nums []int) (Pick, bool) {
	var p Pick
	if len(nums) != PickSize {
		return p, false
	}
	copy(p[:], nums)
	return p, true
}

// =============================================================================
// TICKET - A purchasable ticket type
// =============================================================================

// Ticket is a catalog entry. The settlement engine only ever mutates
// NumSold, and only via the store's atomic increment; NumSold is strictly
// non-decreasing.
type Ticket struct {
	ID             TicketID
	Type           string // display name, e.g. "Pick 5 Classic"
	WinningNumbers Pick
	Jackpot        decimal.Decimal
	MaxNumber      int // valid pick range is 1..MaxNumber
	NumSold        int
}

// InRange reports whether n is a usable pick entry for this ticket.
// Zero is the "absent" marker and is never in range.
func (t Ticket) InRange(n int) bool {
	return n >= 1 && n <= t.MaxNumber
}

// =============================================================================
// PURCHASE REQUEST
// =============================================================================

// PurchaseRequest is a candidate purchase. Numbers may hold 0 to PickSize
// entries; a zero entry means "not chosen". If any of the 5 slots is
// missing or out of range, the whole pick is replaced by a quick-pick
// (all-or-nothing substitution, never a per-slot fill).
//
// PaymentProof is opaque to the engine: presence is required, content is
// the payment layer's business.
type PurchaseRequest struct {
	UserID       UserID
	TicketID     TicketID
	Numbers      []int
	PaymentProof string
}

// =============================================================================
// TRANSACTION - Settled purchase record
// =============================================================================

// RedemptionStatus tracks the redemption lifecycle of a winning ticket.
type RedemptionStatus string

const (
	RedemptionNone    RedemptionStatus = "NO"
	RedemptionPending RedemptionStatus = "PENDING"
	RedemptionDone    RedemptionStatus = "YES"
)

// Transaction records one settled purchase. Winnings are computed at the
// moment of purchase from JackpotAtPurchase and never recomputed, even if
// the ticket's jackpot changes later.
type Transaction struct {
	ID                TransactionID
	UserID            UserID
	TicketID          TicketID
	TicketName        string
	ConfirmationCode  string // unique across all transactions
	Numbers           Pick
	Winner            bool
	Cashed            bool
	JackpotAtPurchase decimal.Decimal
	Winnings          decimal.Decimal
	Redeemed          RedemptionStatus
	CreatedAt         time.Time
}

// =============================================================================
// RECEIPT - Returned to the caller on success
// =============================================================================

// Receipt is the caller-facing result of a committed settlement.
type Receipt struct {
	ConfirmationCode string
	Winnings         decimal.Decimal
	IsWinner         bool
}
