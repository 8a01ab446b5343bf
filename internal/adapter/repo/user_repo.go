// Package repo implements the domain repositories on top of PostgreSQL.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"ecoquest/internal/domain"
	"ecoquest/internal/infra"
	"ecoquest/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// GetByIdentifier fetches a record, or the zero-state default when the store
// has never seen the identifier. Unknown identifiers are not an error.
func (r *UserRepositoryPG) GetByIdentifier(ctx context.Context, identifier string) (*domain.UserRecord, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserByIdentifier, identifier)
	record, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewUserRecord(identifier), nil
	}
	return record, err
}

// ApplyPointsDelta records a points change, creating the record implicitly on
// first grant, and returns the updated authoritative record.
func (r *UserRepositoryPG) ApplyPointsDelta(ctx context.Context, identifier string, delta int) (*domain.UserRecord, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QApplyPointsDelta, identifier, delta)
	return scanUser(row)
}

// SaveDailyCounts mirrors today's counters onto the record.
func (r *UserRepositoryPG) SaveDailyCounts(ctx context.Context, identifier, day string, counts map[domain.ActionKind]int) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("encode daily counts: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QSaveDailyCounts, identifier, string(raw), day)
	return err
}

// MarkWelcomeSeen sets the one-time welcome flag.
func (r *UserRepositoryPG) MarkWelcomeSeen(ctx context.Context, identifier string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkWelcomeSeen, identifier)
	return err
}

func scanUser(row pgx.Row) (*domain.UserRecord, error) {
	var (
		u           domain.UserRecord
		countsBytes []byte
		limitsBytes []byte
	)
	err := row.Scan(&u.Identifier, &u.Points, &countsBytes, &limitsBytes, &u.LastResetDay, &u.WelcomeSeen, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.DailyCounts = decodeCounts(countsBytes)
	u.DailyLimits = decodeCounts(limitsBytes)
	return &u, nil
}

func decodeCounts(raw []byte) map[domain.ActionKind]int {
	counts := map[domain.ActionKind]int{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &counts)
	}
	return counts
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
