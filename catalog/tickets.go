/*
Package catalog provides pre-built ticket configurations.

PURPOSE:
  Ready-to-use ticket definitions for the lottery app, plus seeding into
  a store. Ticket authoring beyond these fixtures is out of scope; the
  settlement engine treats the catalog as read-only apart from the
  sold counter.

AVAILABLE TICKETS:
  Pick5Classic:  Entry-level ticket, $1,000 jackpot
  MegaJackpot:   Headline ticket, $250,000 jackpot
  DailyDraw:     Small daily ticket, $500 jackpot

All tickets use the same 1..99 pick range, matching the two-digit number
entry of the mobile client and the range of the default quick-pick source.

EXAMPLE:
  store, _ := sqlite.New("./lotto.db")
  if err := catalog.Seed(ctx, store); err != nil {
      log.Fatal(err)
  }

SEE ALSO:
  - lotto/types.go: The Ticket type
  - cmd/server/main.go: Seeds the catalog at startup
*/
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/lotto-engine/lotto"
)

// MaxNumber is the shared pick range bound for all catalog tickets.
const MaxNumber = 99

// =============================================================================
// TICKET CONFIGURATIONS
// =============================================================================

// Pick5Classic is the entry-level ticket.
func Pick5Classic() lotto.Ticket {
	return lotto.Ticket{
		ID:             "pick5-classic",
		Type:           "Pick 5 Classic",
		WinningNumbers: lotto.Pick{7, 14, 22, 48, 61},
		Jackpot:        decimal.NewFromInt(1000),
		MaxNumber:      MaxNumber,
	}
}

// MegaJackpot is the headline ticket.
func MegaJackpot() lotto.Ticket {
	return lotto.Ticket{
		ID:             "mega-jackpot",
		Type:           "Mega Jackpot",
		WinningNumbers: lotto.Pick{3, 19, 37, 55, 80},
		Jackpot:        decimal.NewFromInt(250000),
		MaxNumber:      MaxNumber,
	}
}

// DailyDraw is the small daily ticket.
func DailyDraw() lotto.Ticket {
	return lotto.Ticket{
		ID:             "daily-draw",
		Type:           "Daily Draw",
		WinningNumbers: lotto.Pick{5, 12, 31, 44, 76},
		Jackpot:        decimal.NewFromInt(500),
		MaxNumber:      MaxNumber,
	}
}

// Default returns all built-in tickets.
func Default() []lotto.Ticket {
	return []lotto.Ticket{
		Pick5Classic(),
		MegaJackpot(),
		DailyDraw(),
	}
}

// =============================================================================
// SEEDING
// =============================================================================

// Seed inserts the default tickets into the store, skipping any that
// already exist. Safe to run on every startup.
func Seed(ctx context.Context, store lotto.TicketStore) error {
	for _, t := range Default() {
		_, err := store.GetTicket(ctx, t.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, lotto.ErrTicketNotFound) {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if err := store.SaveTicket(ctx, t); err != nil {
			return fmt.Errorf("seed catalog: save %s: %w", t.ID, err)
		}
	}
	return nil
}
