package repo

import (
	"context"

	"ecoquest/internal/domain"
	"ecoquest/internal/infra"
	"ecoquest/internal/sqlinline"
)

// LeaderboardRepositoryPG implements domain.LeaderboardRepository backed by
// PostgreSQL. Rows come back as raw entries; ranking and normalization stay
// in the leaderboard package.
type LeaderboardRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewLeaderboardRepository creates a new LeaderboardRepositoryPG.
func NewLeaderboardRepository(sql infra.SQLExecutor) *LeaderboardRepositoryPG {
	return &LeaderboardRepositoryPG{sql: sql}
}

// TopByPoints returns up to limit entries ordered by points descending. The
// secondary identifier ordering keeps the result deterministic across calls.
func (r *LeaderboardRepositoryPG) TopByPoints(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QTopUsersByPoints, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var name string
		var points int
		if err := rows.Scan(&name, &points); err != nil {
			return nil, err
		}
		entries = append(entries, domain.LeaderboardEntry{
			Username: name,
			Points:   points,
			Badges:   domain.BadgesForPoints(points),
		})
	}
	return entries, rows.Err()
}

var _ domain.LeaderboardRepository = (*LeaderboardRepositoryPG)(nil)
