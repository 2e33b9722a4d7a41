/*
payout.go - Match counting and jackpot-share mapping

PURPOSE:
  Pure functions turning a pick and a draw into a payout. No I/O, no
  state; the settlement engine calls these inside its atomic scope but
  they never block.

MATCH SEMANTICS:
  Matching is POSITIONAL. numbers[i] counts only if it equals
  winningNumbers[i] at the same index i. [1,2,3,4,5] against the draw
  [5,4,3,2,1] scores 1 (index 2 only), not 5. This is an order-sensitive
  draw, not a set draw; do not "fix" it to set membership.

SHARE TABLE (exact, never interpolated):
  matches:  0     1     2      3      4      5
  share:    0     0     0.01   0.05   0.20   1.00

SEE ALSO:
  - engine.go: winnings = jackpot * PayoutShare(MatchCount(...))
*/
package lotto

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// payoutShares maps match count to jackpot share. Indexed by match count.
var payoutShares = [PickSize + 1]decimal.Decimal{
	decimal.Zero,                        // 0 matches
	decimal.Zero,                        // 1 match
	decimal.RequireFromString("0.01"),   // 2 matches: 1% of the jackpot
	decimal.RequireFromString("0.05"),   // 3 matches: 5%
	decimal.RequireFromString("0.2"),    // 4 matches: 20%
	decimal.NewFromInt(1),               // 5 matches: the whole jackpot
}

// PayoutShare returns the jackpot share for the given match count as an
// exact decimal in [0,1].
//
// A match count outside 0..PickSize is a programming error, not user
// input, so this panics rather than returning an error.
func PayoutShare(matchCount int) decimal.Decimal {
	if matchCount < 0 || matchCount > PickSize {
		panic(fmt.Sprintf("lotto: match count %d out of range 0..%d", matchCount, PickSize))
	}
	return payoutShares[matchCount]
}

// MatchCount counts positional matches between a pick and a draw.
func MatchCount(pick, winning Pick) int {
	matched := 0
	for i := 0; i < PickSize; i++ {
		if pick[i] == winning[i] {
			matched++
		}
	}
	return matched
}
