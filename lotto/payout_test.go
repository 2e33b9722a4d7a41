package lotto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/lotto-engine/lotto"
)

// =============================================================================
// SHARE TABLE TESTS
// =============================================================================

func TestPayoutShare_ExactTable(t *testing.T) {
	// GIVEN: The fixed share table
	// THEN: Every match count maps exactly, never interpolated
	cases := []struct {
		matches int
		share   string
	}{
		{0, "0"},
		{1, "0"},
		{2, "0.01"},
		{3, "0.05"},
		{4, "0.2"},
		{5, "1"},
	}

	for _, tc := range cases {
		got := lotto.PayoutShare(tc.matches)
		want := decimal.RequireFromString(tc.share)
		if !got.Equal(want) {
			t.Errorf("PayoutShare(%d) = %v, want %v", tc.matches, got, want)
		}
	}
}

func TestPayoutShare_OutOfRange_Panics(t *testing.T) {
	// Match counts outside 0..5 are programming errors, not user input.
	for _, matches := range []int{-1, 6, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("PayoutShare(%d) did not panic", matches)
				}
			}()
			lotto.PayoutShare(matches)
		}()
	}
}

// =============================================================================
// MATCH COUNTING TESTS
// =============================================================================

func TestMatchCount_Positional_NotSetBased(t *testing.T) {
	// GIVEN: A pick that is the draw reversed
	// WHEN: Counting matches
	// THEN: Only the middle index matches; set semantics would say 5
	pick := lotto.Pick{1, 2, 3, 4, 5}
	winning := lotto.Pick{5, 4, 3, 2, 1}

	if got := lotto.MatchCount(pick, winning); got != 1 {
		t.Errorf("MatchCount = %d, want 1 (positional, index 2 only)", got)
	}
}

func TestMatchCount_AllAndNone(t *testing.T) {
	winning := lotto.Pick{7, 14, 22, 48, 61}

	if got := lotto.MatchCount(winning, winning); got != lotto.PickSize {
		t.Errorf("identical pick: MatchCount = %d, want %d", got, lotto.PickSize)
	}

	none := lotto.Pick{8, 15, 23, 49, 62}
	if got := lotto.MatchCount(none, winning); got != 0 {
		t.Errorf("disjoint pick: MatchCount = %d, want 0", got)
	}
}

func TestMatchCount_SameNumberWrongSlot_DoesNotCount(t *testing.T) {
	// 22 appears in both sequences but at different indexes.
	pick := lotto.Pick{22, 14, 9, 48, 61}
	winning := lotto.Pick{7, 14, 22, 48, 61}

	if got := lotto.MatchCount(pick, winning); got != 3 {
		t.Errorf("MatchCount = %d, want 3 (indexes 1, 3, 4)", got)
	}
}
