package postgres_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autistnet/internal/domain"
	"autistnet/internal/store/postgres"
)

// fakeDB is an in-memory stand-in for the two mirror tables. Balances
// written inside a transaction only become visible on commit.
type fakeDB struct {
	mu        sync.Mutex
	log       []string
	ledgerErr error
	balances  map[string]int64
	pending   map[string]int64
}

func newFakeDB() *fakeDB { return &fakeDB{balances: map[string]int64{}} }

func (f *fakeDB) record(step string) {
	f.log = append(f.log, step)
}

func (f *fakeDB) steps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

func (f *fakeDB) open(t *testing.T) *sql.DB {
	t.Helper()
	db := sql.OpenDB(fakeConnector{f})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeConnector struct{ db *fakeDB }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) { return &fakeConn{db: c.db}, nil }
func (c fakeConnector) Driver() driver.Driver                        { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("open through the connector") }

type fakeConn struct{ db *fakeDB }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.record("begin")
	c.db.pending = map[string]int64{}
	return fakeTx{c.db}, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case strings.Contains(query, "INSERT INTO accounts"):
		f.record("upsert balance")
		f.pending[args[0].Value.(string)] = args[1].Value.(int64)
	case strings.Contains(query, "INSERT INTO ledger"):
		f.record("insert ledger")
		if f.ledgerErr != nil {
			return nil, f.ledgerErr
		}
	default:
		f.record("exec")
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(_ context.Context, _ string, args []driver.NamedValue) (driver.Rows, error) {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := &fakeRows{}
	if b, ok := f.balances[args[0].Value.(string)]; ok {
		rows.values = []int64{b}
	}
	return rows, nil
}

type fakeTx struct{ db *fakeDB }

func (t fakeTx) Commit() error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.record("commit")
	for id, b := range t.db.pending {
		t.db.balances[id] = b
	}
	t.db.pending = nil
	return nil
}

func (t fakeTx) Rollback() error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.record("rollback")
	t.db.pending = nil
	return nil
}

type fakeRows struct {
	values []int64
	next   int
}

func (r *fakeRows) Columns() []string { return []string{"balance"} }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	dest[0] = r.values[r.next]
	r.next++
	return nil
}

func debitEntry() domain.Transaction {
	return domain.Transaction{
		ID:           "tx_1",
		Direction:    domain.Debit,
		Amount:       100,
		Description:  "Transferência para Carlos Santos",
		Counterparty: "u2",
		At:           time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRecordTransaction_CommitsBalanceAndEntryTogether(t *testing.T) {
	fake := newFakeDB()
	m := postgres.New(fake.open(t), nil)
	ctx := context.Background()

	require.NoError(t, m.RecordTransaction(ctx, "u1", 1150, debitEntry()))
	assert.Equal(t, []string{"begin", "upsert balance", "insert ledger", "commit"}, fake.steps())

	balance, found, err := m.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1150), balance)
}

func TestRecordTransaction_RollsBackWhenEntryFails(t *testing.T) {
	fake := newFakeDB()
	fake.ledgerErr = errors.New("disk full")
	m := postgres.New(fake.open(t), nil)
	ctx := context.Background()

	err := m.RecordTransaction(ctx, "u1", 1150, debitEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert ledger entry")
	assert.Equal(t, []string{"begin", "upsert balance", "insert ledger", "rollback"}, fake.steps())

	_, found, err := m.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found, "balance must not outlive a failed entry")
}

func TestRecordTransaction_DuplicateEntryIsIgnored(t *testing.T) {
	fake := newFakeDB()
	m := postgres.New(fake.open(t), nil)
	ctx := context.Background()
	require.NoError(t, m.RecordTransaction(ctx, "u1", 1150, debitEntry()))

	fake.ledgerErr = &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	require.NoError(t, m.RecordTransaction(ctx, "u1", 999, debitEntry()))

	steps := fake.steps()
	assert.Equal(t, "rollback", steps[len(steps)-1])
	balance, _, err := m.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1150), balance, "a replayed entry leaves the mirror untouched")
}

func TestBalance_UnknownAccount(t *testing.T) {
	m := postgres.New(newFakeDB().open(t), nil)
	balance, found, err := m.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, balance)
}
