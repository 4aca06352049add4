// Package postgres mirrors committed ledger entries into PostgreSQL.
//
// The mirror is write-only: the feed state stays the source of truth and the
// tables exist for reporting. Each entry is applied in one SQL transaction
// that upserts the account balance and inserts the ledger row.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"autistnet/internal/domain"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a duplicate key.
const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         VARCHAR(64) PRIMARY KEY,
		balance    BIGINT      NOT NULL DEFAULT 0 CHECK (balance >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ledger (
		id           VARCHAR(64)  PRIMARY KEY,
		account_id   VARCHAR(64)  NOT NULL REFERENCES accounts(id),
		direction    VARCHAR(10)  NOT NULL,
		amount       BIGINT       NOT NULL CHECK (amount > 0),
		description  TEXT         NOT NULL,
		counterparty VARCHAR(64)  NOT NULL DEFAULT '',
		at           TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_account_id ON ledger(account_id)`,
}

// LedgerMirror writes ledger entries to PostgreSQL.
type LedgerMirror struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to dsn, checks the connection and creates the schema.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*LedgerMirror, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reach ledger database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	m := New(db, logger)
	if err := m.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("Ledger mirror connected")
	return m, nil
}

// New wraps an existing database handle.
func New(db *sql.DB, logger *slog.Logger) *LedgerMirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerMirror{db: db, logger: logger}
}

// EnsureSchema creates the tables and indexes idempotently.
func (m *LedgerMirror) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ledger schema: %w", err)
		}
	}
	return nil
}

// RecordTransaction stores tx for account and sets the account balance.
// A ledger id that was already recorded is ignored.
func (m *LedgerMirror) RecordTransaction(
	ctx context.Context,
	account domain.UserID,
	balance int64,
	entry domain.Transaction,
) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, balance, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()`,
		account.String(), balance,
	)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger (id, account_id, direction, amount, description, counterparty, at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID.String(), account.String(), string(entry.Direction), entry.Amount,
		entry.Description, entry.Counterparty.String(), entry.At,
	)
	if err != nil {
		if isUniqueViolation(err) {
			m.logger.Debug("Ledger entry already mirrored", slog.String("tx", entry.ID.String()))
			return nil
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}
	return nil
}

// Balance returns the mirrored balance of account.
func (m *LedgerMirror) Balance(ctx context.Context, account domain.UserID) (int64, bool, error) {
	var balance int64
	err := m.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = $1`, account.String()).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read balance: %w", err)
	}
	return balance, true, nil
}

// Close releases the connection pool.
func (m *LedgerMirror) Close() error { return m.db.Close() }

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

var _ domain.LedgerMirror = (*LedgerMirror)(nil)
