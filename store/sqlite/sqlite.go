/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements lotto.TxStore using SQLite. In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  tickets:      Catalog entries with the monotonically growing num_sold
  transactions: One row per settled purchase

UNIQUENESS:
  idx_transactions_code (UNIQUE on confirmation_code) backs the
  confirmation-code invariant; a collision surfaces as
  lotto.ErrDuplicateConfirmation and the engine regenerates.

CONCURRENCY:
  WithTx holds a mutex for the duration of the scope, so the limit count
  and the insert it guards are serialized across concurrent purchases.
  The sold counter is incremented in SQL (num_sold = num_sold + 1), never
  read-modify-written in Go, so it cannot lose updates.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/lotto.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - lotto/store.go:        Interface definitions
  - lotto/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/lotto-engine/lotto"
)

// Store implements lotto.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Ticket catalog
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		winning_numbers TEXT NOT NULL,
		jackpot TEXT NOT NULL,
		max_number INTEGER NOT NULL,
		num_sold INTEGER NOT NULL DEFAULT 0 CHECK (num_sold >= 0)
	);

	-- Settled purchases
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ticket_id TEXT NOT NULL,
		ticket_name TEXT NOT NULL,
		confirmation_code TEXT NOT NULL,
		numbers TEXT NOT NULL,
		winner BOOLEAN NOT NULL,
		cashed BOOLEAN NOT NULL DEFAULT FALSE,
		jackpot TEXT NOT NULL,
		winnings TEXT NOT NULL,
		redeemed TEXT NOT NULL DEFAULT 'NO' CHECK (redeemed IN ('NO','PENDING','YES')),
		created_at TEXT NOT NULL,
		FOREIGN KEY (ticket_id) REFERENCES tickets(id)
	);

	-- Confirmation codes are globally unique
	CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_code
		ON transactions(confirmation_code);

	-- Hot path: the pre-insert limit count
	CREATE INDEX IF NOT EXISTS idx_transactions_user_ticket
		ON transactions(user_id, ticket_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TICKET STORE (lotto.TicketStore interface)
// =============================================================================

// GetTicket loads a catalog entry by ID.
func (s *Store) GetTicket(ctx context.Context, id lotto.TicketID) (*lotto.Ticket, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, winning_numbers, jackpot, max_number, num_sold
		FROM tickets WHERE id = ?
	`, id)
	return scanTicket(row)
}

// ListTickets returns the full catalog.
func (s *Store) ListTickets(ctx context.Context) ([]lotto.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, winning_numbers, jackpot, max_number, num_sold
		FROM tickets ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []lotto.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// SaveTicket inserts a new catalog entry. Used by seeding only.
func (s *Store) SaveTicket(ctx context.Context, t lotto.Ticket) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tickets (id, type, winning_numbers, jackpot, max_number, num_sold)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Type, formatPick(t.WinningNumbers), t.Jackpot.String(), t.MaxNumber, t.NumSold)
	if err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return nil
}

// =============================================================================
// TRANSACTIONAL STORE (lotto.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction. The mutex
// serializes scopes so a limit count and its guarded insert cannot
// interleave with another purchase of the same pair.
func (s *Store) WithTx(ctx context.Context, fn func(lotto.Scope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txScope{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

type txScope struct {
	tx *sql.Tx
}

func (ts *txScope) CountTransactions(ctx context.Context, userID lotto.UserID, ticketID lotto.TicketID) (int, error) {
	var count int
	err := ts.tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE user_id = ? AND ticket_id = ?",
		userID, ticketID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (ts *txScope) InsertTransaction(ctx context.Context, tx lotto.Transaction) error {
	_, err := ts.tx.ExecContext(ctx, `
		INSERT INTO transactions
		(id, user_id, ticket_id, ticket_name, confirmation_code, numbers,
		 winner, cashed, jackpot, winnings, redeemed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tx.ID,
		tx.UserID,
		tx.TicketID,
		tx.TicketName,
		tx.ConfirmationCode,
		formatPick(tx.Numbers),
		tx.Winner,
		tx.Cashed,
		tx.JackpotAtPurchase.String(),
		tx.Winnings.String(),
		string(tx.Redeemed),
		tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return lotto.ErrDuplicateConfirmation
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (ts *txScope) IncrementSold(ctx context.Context, id lotto.TicketID) error {
	res, err := ts.tx.ExecContext(ctx,
		"UPDATE tickets SET num_sold = num_sold + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment sold count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to increment sold count: %w", err)
	}
	if affected == 0 {
		return lotto.ErrTicketNotFound
	}
	return nil
}

func (ts *txScope) GetTransactionByCode(ctx context.Context, code string) (*lotto.Transaction, error) {
	row := ts.tx.QueryRowContext(ctx, `
		SELECT id, user_id, ticket_id, ticket_name, confirmation_code, numbers,
		       winner, cashed, jackpot, winnings, redeemed, created_at
		FROM transactions WHERE confirmation_code = ?
	`, code)
	return scanTransaction(row)
}

func (ts *txScope) UpdateRedemption(ctx context.Context, code string, status lotto.RedemptionStatus, cashed bool) error {
	res, err := ts.tx.ExecContext(ctx,
		"UPDATE transactions SET redeemed = ?, cashed = ? WHERE confirmation_code = ?",
		string(status), cashed, code)
	if err != nil {
		return fmt.Errorf("failed to update redemption: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update redemption: %w", err)
	}
	if affected == 0 {
		return lotto.ErrTransactionNotFound
	}
	return nil
}

// =============================================================================
// SCAN / FORMAT HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*lotto.Ticket, error) {
	var (
		t       lotto.Ticket
		winning string
		jackpot string
	)
	err := row.Scan(&t.ID, &t.Type, &winning, &jackpot, &t.MaxNumber, &t.NumSold)
	if err == sql.ErrNoRows {
		return nil, lotto.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket: %w", err)
	}

	t.WinningNumbers, err = parsePick(winning)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	t.Jackpot, err = parseDecimal(jackpot)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	return &t, nil
}

func scanTransaction(row rowScanner) (*lotto.Transaction, error) {
	var (
		tx        lotto.Transaction
		numbers   string
		jackpot   string
		winnings  string
		redeemed  string
		createdAt string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &tx.TicketID, &tx.TicketName,
		&tx.ConfirmationCode, &numbers, &tx.Winner, &tx.Cashed,
		&jackpot, &winnings, &redeemed, &createdAt)
	if err == sql.ErrNoRows {
		return nil, lotto.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tx.Numbers, err = parsePick(numbers)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
	}
	tx.JackpotAtPurchase, err = parseDecimal(jackpot)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
	}
	tx.Winnings, err = parseDecimal(winnings)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
	}
	tx.Redeemed = lotto.RedemptionStatus(redeemed)
	t, _ := time.Parse(time.RFC3339, createdAt)
	tx.CreatedAt = t
	return &tx, nil
}

// formatPick stores picks as comma-separated text, e.g. "1,2,3,4,5".
func formatPick(p lotto.Pick) string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func parsePick(s string) (lotto.Pick, error) {
	parts := strings.Split(s, ",")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return lotto.Pick{}, fmt.Errorf("malformed pick %q: %w", s, err)
		}
		nums = append(nums, n)
	}
	pick, ok := lotto.NewPick(nums)
	if !ok {
		return lotto.Pick{}, fmt.Errorf("malformed pick %q: want %d numbers", s, lotto.PickSize)
	}
	return pick, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("malformed decimal %q: %w", s, err)
	}
	return d, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
