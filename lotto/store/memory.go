// Package store provides an in-memory TxStore implementation (for
// testing/dev). Rollback is snapshot-based: WithTx copies the state, runs
// the closure against the live maps, and restores the copy on error.
package store

import (
	"context"
	"sync"

	"github.com/warp/lotto-engine/lotto"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu           sync.Mutex
	tickets      map[lotto.TicketID]lotto.Ticket
	transactions []lotto.Transaction
	byCode       map[string]int // confirmation code -> index into transactions
}

func NewMemory() *Memory {
	return &Memory{
		tickets: make(map[lotto.TicketID]lotto.Ticket),
		byCode:  make(map[string]int),
	}
}

// =============================================================================
// TICKET STORE (lotto.TicketStore interface)
// =============================================================================

func (m *Memory) GetTicket(_ context.Context, id lotto.TicketID) (*lotto.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tickets[id]
	if !ok {
		return nil, lotto.ErrTicketNotFound
	}
	return &t, nil
}

func (m *Memory) ListTickets(_ context.Context) ([]lotto.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]lotto.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		result = append(result, t)
	}
	return result, nil
}

func (m *Memory) SaveTicket(_ context.Context, t lotto.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tickets[t.ID]; exists {
		return lotto.ErrStoreFailure
	}
	m.tickets[t.ID] = t
	return nil
}

// =============================================================================
// TRANSACTIONAL STORE (lotto.TxStore interface)
// =============================================================================

// WithTx runs fn under the store mutex. Holding the lock for the whole
// scope serializes concurrent purchases the same way a database write
// transaction would, which is exactly what the limit invariant needs.
func (m *Memory) WithTx(ctx context.Context, fn func(lotto.Scope) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := m.snapshotLocked()
	if err := fn(&memScope{m: m}); err != nil {
		m.restoreLocked(snapshot)
		return err
	}
	return nil
}

type memState struct {
	tickets      map[lotto.TicketID]lotto.Ticket
	transactions []lotto.Transaction
	byCode       map[string]int
}

func (m *Memory) snapshotLocked() memState {
	s := memState{
		tickets:      make(map[lotto.TicketID]lotto.Ticket, len(m.tickets)),
		transactions: make([]lotto.Transaction, len(m.transactions)),
		byCode:       make(map[string]int, len(m.byCode)),
	}
	for id, t := range m.tickets {
		s.tickets[id] = t
	}
	copy(s.transactions, m.transactions)
	for code, i := range m.byCode {
		s.byCode[code] = i
	}
	return s
}

func (m *Memory) restoreLocked(s memState) {
	m.tickets = s.tickets
	m.transactions = s.transactions
	m.byCode = s.byCode
}

// =============================================================================
// SCOPE
// =============================================================================

type memScope struct {
	m *Memory
}

func (s *memScope) CountTransactions(_ context.Context, userID lotto.UserID, ticketID lotto.TicketID) (int, error) {
	count := 0
	for _, tx := range s.m.transactions {
		if tx.UserID == userID && tx.TicketID == ticketID {
			count++
		}
	}
	return count, nil
}

func (s *memScope) InsertTransaction(_ context.Context, tx lotto.Transaction) error {
	if _, taken := s.m.byCode[tx.ConfirmationCode]; taken {
		return lotto.ErrDuplicateConfirmation
	}
	s.m.transactions = append(s.m.transactions, tx)
	s.m.byCode[tx.ConfirmationCode] = len(s.m.transactions) - 1
	return nil
}

func (s *memScope) IncrementSold(_ context.Context, id lotto.TicketID) error {
	t, ok := s.m.tickets[id]
	if !ok {
		return lotto.ErrTicketNotFound
	}
	t.NumSold++
	s.m.tickets[id] = t
	return nil
}

func (s *memScope) GetTransactionByCode(_ context.Context, code string) (*lotto.Transaction, error) {
	i, ok := s.m.byCode[code]
	if !ok {
		return nil, lotto.ErrTransactionNotFound
	}
	tx := s.m.transactions[i]
	return &tx, nil
}

func (s *memScope) UpdateRedemption(_ context.Context, code string, status lotto.RedemptionStatus, cashed bool) error {
	i, ok := s.m.byCode[code]
	if !ok {
		return lotto.ErrTransactionNotFound
	}
	s.m.transactions[i].Redeemed = status
	s.m.transactions[i].Cashed = cashed
	return nil
}
