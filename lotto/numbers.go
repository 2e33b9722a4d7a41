/*
numbers.go - Injected number and confirmation-code sources

PURPOSE:
  The engine never generates randomness itself. Quick-pick numbers and
  confirmation codes come from injected sources so tests can make them
  deterministic and production can choose its entropy.

IMPLEMENTATIONS:
  QuickPick:  crypto/rand uniform draw in [1, Max]
  CodeSource: crypto/rand over an unambiguous alphanumeric charset

SEE ALSO:
  - engine.go: Uses both interfaces during settlement
*/
package lotto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// =============================================================================
// NUMBER SOURCE - Quick-pick fallback
// =============================================================================

// NumberSource supplies a quick-pick sequence. Generate returns exactly
// count numbers; the engine validates them against the ticket's range.
type NumberSource interface {
	Generate(count int) ([]int, error)
}

// QuickPick draws uniformly in [1, Max] using crypto/rand. Duplicates are
// allowed, matching the positional draw semantics.
type QuickPick struct {
	Max int
}

func (q QuickPick) Generate(count int) ([]int, error) {
	if q.Max < 1 {
		return nil, fmt.Errorf("quick pick: max %d out of range", q.Max)
	}
	nums := make([]int, count)
	limit := big.NewInt(int64(q.Max))
	for i := range nums {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, fmt.Errorf("quick pick: %w", err)
		}
		nums[i] = int(n.Int64()) + 1
	}
	return nums, nil
}

// =============================================================================
// CODE GENERATOR - Confirmation codes
// =============================================================================

// CodeGenerator supplies confirmation codes. Codes must be unique across
// all transactions; the store enforces this and the engine retries a
// bounded number of times on collision.
type CodeGenerator interface {
	New(length int) (string, error)
}

// codeAlphabet omits 0/O and 1/I to keep codes readable off a phone screen.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeSource generates random confirmation codes from codeAlphabet.
type CodeSource struct{}

func (CodeSource) New(length int) (string, error) {
	buf := make([]byte, length)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("confirmation code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
