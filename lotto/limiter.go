/*
limiter.go - Per-user, per-ticket purchase quota

The limiter must run inside the same atomic scope as the eventual insert.
A check in its own transaction lets two concurrent purchases both observe
count=9 and both commit an 11th ticket.
*/
package lotto

import (
	"context"
	"fmt"
)

// MaxPurchasesPerTicket is the quota of transactions a single user may
// hold on a single ticket type.
const MaxPurchasesPerTicket = 10

// PurchaseLimiter enforces the per-user, per-ticket quota.
type PurchaseLimiter struct {
	Max int
}

// NewPurchaseLimiter returns a limiter with the standard quota.
func NewPurchaseLimiter() PurchaseLimiter {
	return PurchaseLimiter{Max: MaxPurchasesPerTicket}
}

// CheckAndReserve counts existing transactions for the pair and rejects
// with *LimitExceededError when one more would exceed the quota. Must be
// called on the same Scope that performs the insert.
func (l PurchaseLimiter) CheckAndReserve(ctx context.Context, scope Scope, userID UserID, ticketID TicketID) error {
	count, err := scope.CountTransactions(ctx, userID, ticketID)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	if count+1 > l.Max {
		return &LimitExceededError{UserID: userID, TicketID: ticketID, Count: count, Max: l.Max}
	}
	return nil
}
