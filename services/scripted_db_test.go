package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// expectation is one statement the fake database is told to accept.
type expectation struct {
	exec    bool
	sql     *regexp.Regexp
	args    []driver.Value
	columns []string
	rows    [][]driver.Value
	lastID  int64
	changed int64
	err     error
}

func expectExec(pattern string, args ...driver.Value) *expectation {
	return &expectation{exec: true, sql: regexp.MustCompile(pattern), args: args}
}

func expectQuery(pattern string, args ...driver.Value) *expectation {
	return &expectation{sql: regexp.MustCompile(pattern), args: args}
}

func (e *expectation) returns(lastID, changed int64) *expectation {
	e.lastID, e.changed = lastID, changed
	return e
}

func (e *expectation) yields(columns []string, rows ...[]driver.Value) *expectation {
	e.columns, e.rows = columns, rows
	return e
}

func (e *expectation) fails(err error) *expectation {
	e.err = err
	return e
}

// fakeSQL replays expectations in order and rejects anything else.
type fakeSQL struct {
	mu      sync.Mutex
	pending []*expectation
}

func (f *fakeSQL) take(exec bool, query string, args []driver.NamedValue) (*expectation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return nil, fmt.Errorf("unexpected statement: %s", query)
	}
	e := f.pending[0]
	if e.exec != exec || !e.sql.MatchString(query) {
		return nil, fmt.Errorf("statement %q does not match %s", query, e.sql)
	}
	if len(e.args) != len(args) {
		return nil, fmt.Errorf("%s: got %d args, want %d", query, len(args), len(e.args))
	}
	for i, a := range args {
		if a.Value != e.args[i] {
			return nil, fmt.Errorf("%s: arg %d is %v, want %v", query, i, a.Value, e.args[i])
		}
	}
	f.pending = f.pending[1:]
	return e, e.err
}

func (f *fakeSQL) verifyComplete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := len(f.pending); n > 0 {
		return fmt.Errorf("%d expected statements never ran, next: %s", n, f.pending[0].sql)
	}
	return nil
}

func (f *fakeSQL) Connect(context.Context) (driver.Conn, error) { return fakeConn{f}, nil }
func (f *fakeSQL) Driver() driver.Driver                        { return f }
func (f *fakeSQL) Open(string) (driver.Conn, error)             { return fakeConn{f}, nil }

type fakeConn struct{ db *fakeSQL }

func (fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (fakeConn) Close() error                        { return nil }
func (fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("transactions not supported") }

func (c fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	e, err := c.db.take(true, query, args)
	if err != nil {
		return nil, err
	}
	return fakeResult{e.lastID, e.changed}, nil
}

func (c fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	e, err := c.db.take(false, query, args)
	if err != nil {
		return nil, err
	}
	return &fakeRows{columns: e.columns, rows: e.rows}, nil
}

type fakeResult struct{ lastID, changed int64 }

func (r fakeResult) LastInsertId() (int64, error) { return r.lastID, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.changed, nil }

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if len(r.rows) == 0 {
		return io.EOF
	}
	copy(dest, r.rows[0])
	r.rows = r.rows[1:]
	return nil
}

// openFakeGorm returns a gorm handle whose only connection is the fake.
func openFakeGorm(t *testing.T, expected ...*expectation) (*gorm.DB, *fakeSQL) {
	t.Helper()
	fake := &fakeSQL{pending: expected}
	sqlDB := sql.OpenDB(fake)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, fake
}
