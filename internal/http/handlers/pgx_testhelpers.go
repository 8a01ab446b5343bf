package handlers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ecoquest/internal/infra"
)

// SimpleRow adapts a scan function into a pgx.Row for handler tests.
type SimpleRow struct {
	scan func(dest ...any) error
}

func NewSimpleRow(scanner func(dest ...any) error) SimpleRow {
	return SimpleRow{scan: scanner}
}

func (r SimpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// StubSQL is a minimal SQLExecutor whose QueryRow answer is injectable.
type StubSQL struct {
	Row pgx.Row
}

func (s *StubSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *StubSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	if s.Row == nil {
		return SimpleRow{}
	}
	return s.Row
}

func (s *StubSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported in stub")
}

var _ infra.SQLExecutor = (*StubSQL)(nil)
