package catalog_test

import (
	"context"
	"testing"

	"github.com/warp/lotto-engine/catalog"
	"github.com/warp/lotto-engine/lotto"
	"github.com/warp/lotto-engine/lotto/store"
)

func TestDefault_TicketsAreWellFormed(t *testing.T) {
	for _, ticket := range catalog.Default() {
		if ticket.ID == "" || ticket.Type == "" {
			t.Errorf("ticket %+v missing identity", ticket)
		}
		if !ticket.Jackpot.IsPositive() {
			t.Errorf("ticket %s: jackpot %v not positive", ticket.ID, ticket.Jackpot)
		}
		for i, n := range ticket.WinningNumbers {
			if !ticket.InRange(n) {
				t.Errorf("ticket %s: draw[%d]=%d outside 1..%d", ticket.ID, i, n, ticket.MaxNumber)
			}
		}
		if ticket.NumSold != 0 {
			t.Errorf("ticket %s: fresh catalog entry with num_sold=%d", ticket.ID, ticket.NumSold)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	// Seeding twice must not duplicate tickets or reset sold counters.
	m := store.NewMemory()
	ctx := context.Background()

	if err := catalog.Seed(ctx, m); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	// Sell one ticket so a reseed would be observable.
	err := m.WithTx(ctx, func(s lotto.Scope) error {
		return s.IncrementSold(ctx, catalog.Pick5Classic().ID)
	})
	if err != nil {
		t.Fatalf("increment: %v", err)
	}

	if err := catalog.Seed(ctx, m); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	tickets, err := m.ListTickets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != len(catalog.Default()) {
		t.Errorf("tickets = %d, want %d", len(tickets), len(catalog.Default()))
	}

	sold, err := m.GetTicket(ctx, catalog.Pick5Classic().ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sold.NumSold != 1 {
		t.Errorf("num_sold = %d, want 1 (reseed must not reset)", sold.NumSold)
	}
}
