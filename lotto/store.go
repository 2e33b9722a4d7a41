/*
store.go - Persistence interfaces for tickets and transactions

PURPOSE:
  Defines the interface between the settlement logic and the database.
  Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  TicketStore: Catalog reads plus SaveTicket for seeding
  Scope:       Operations available INSIDE an atomic scope
  TxStore:     WithTx - the only way to obtain a Scope

ATOMIC SCOPE CONTRACT:
  Every multi-step write (limit count, transaction insert, sold-count
  increment, redemption update) runs inside ONE WithTx call. If the
  closure returns an error, nothing is committed. Implementations must
  serialize WithTx calls so that two concurrent purchases of the same
  (user, ticket) pair cannot both observe the same pre-insert count.

NO OTHER MUTATION PATH:
  The transactions table and tickets.num_sold are written exclusively
  through Scope. TicketStore.SaveTicket exists for catalog seeding and
  never touches num_sold of an existing row.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - lotto/store/memory.go:  In-memory for testing

SEE ALSO:
  - engine.go: The only consumer of Scope
*/
package lotto

import "context"

// =============================================================================
// TICKET STORE - Catalog access
// =============================================================================

// TicketStore provides catalog reads. GetTicket returns ErrTicketNotFound
// for unknown IDs.
type TicketStore interface {
	GetTicket(ctx context.Context, id TicketID) (*Ticket, error)
	ListTickets(ctx context.Context) ([]Ticket, error)

	// SaveTicket inserts a new catalog entry. Seeding only; fails if the
	// ID already exists.
	SaveTicket(ctx context.Context, t Ticket) error
}

// =============================================================================
// SCOPE - Operations inside one atomic unit of work
// =============================================================================

// Scope is the write surface of an open transaction. All methods observe
// writes made earlier in the same scope (read-your-writes).
type Scope interface {
	// CountTransactions returns the number of committed-or-pending
	// transactions for the (user, ticket) pair, including inserts made
	// earlier in this scope.
	CountTransactions(ctx context.Context, userID UserID, ticketID TicketID) (int, error)

	// InsertTransaction appends a transaction record. Returns
	// ErrDuplicateConfirmation if the confirmation code is taken.
	InsertTransaction(ctx context.Context, tx Transaction) error

	// IncrementSold atomically adds 1 to the ticket's sold counter.
	// Returns ErrTicketNotFound if the ticket row is missing.
	IncrementSold(ctx context.Context, id TicketID) error

	// GetTransactionByCode resolves a confirmation code. Returns
	// ErrTransactionNotFound for unknown codes.
	GetTransactionByCode(ctx context.Context, code string) (*Transaction, error)

	// UpdateRedemption sets the redemption status and cashed flag of the
	// transaction with the given code. The only permitted mutation of a
	// committed transaction.
	UpdateRedemption(ctx context.Context, code string, status RedemptionStatus, cashed bool) error
}

// =============================================================================
// TRANSACTIONAL STORE
// =============================================================================

// TxStore is the full store: catalog reads plus atomic scopes.
type TxStore interface {
	TicketStore

	// WithTx executes fn within one atomic scope.
	// If fn returns an error, the scope is rolled back.
	// If fn returns nil, the scope is committed.
	WithTx(ctx context.Context, fn func(Scope) error) error
}
