// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/propbowl/db"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record conflicts with existing data")
	ErrUnavailable = errors.New("store unavailable")
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the entity store. Queries are written with postgres-style $N
// placeholders and rebound for sqlite.
type Store struct {
	db     *sql.DB
	q      querier
	dbType string
}

func New(conn *sql.DB, dbType string) *Store {
	return &Store{db: conn, q: conn, dbType: dbType}
}

// InTx runs fn against a store bound to a single transaction. The
// transaction commits when fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		// Already inside a transaction
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx, dbType: s.dbType}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Store) rebind(query string) string {
	if s.dbType != db.TypeSQLite {
		return query
	}
	// sqlite understands ?NNN positional parameters
	return strings.ReplaceAll(query, "$", "?")
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.q.ExecContext(ctx, s.rebind(query), args...)
	return res, wrap(err)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.q.QueryContext(ctx, s.rebind(query), args...)
	return rows, wrap(err)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.q.QueryRowContext(ctx, s.rebind(query), args...)
}

// forShare is the row-lock suffix for reads that must not race a
// concurrent update inside a transaction. sqlite serializes writers on its
// single connection and needs none.
func (s *Store) forShare() string {
	if s.db != nil || s.dbType != db.TypePostgres {
		return ""
	}
	return " FOR SHARE"
}

// execOne runs an UPDATE or DELETE that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

// wrap classifies driver errors into the store's error kinds.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
		case "23503":
			// Referenced row is gone
			return fmt.Errorf("%w: %s", ErrNotFound, pqErr.Constraint)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", ErrConflict, liteErr)
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", ErrNotFound, liteErr)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"):
			// extended result codes disabled
			return fmt.Errorf("%w: %v", ErrConflict, liteErr)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "FOREIGN KEY"):
			return fmt.Errorf("%w: %v", ErrNotFound, liteErr)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// nullString maps "" to NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
