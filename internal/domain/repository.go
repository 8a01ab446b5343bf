package domain

import "context"

// UserRepository defines access methods for user records.
type UserRepository interface {
	// GetByIdentifier returns the record for the identifier, or the
	// zero-state default record when the store has never seen it. Unknown
	// identifiers are not an error.
	GetByIdentifier(ctx context.Context, identifier string) (*UserRecord, error)
	// ApplyPointsDelta records a points change and returns the updated
	// authoritative record, creating the record implicitly on first grant.
	ApplyPointsDelta(ctx context.Context, identifier string, delta int) (*UserRecord, error)
	// SaveDailyCounts mirrors today's counters onto the record.
	SaveDailyCounts(ctx context.Context, identifier, day string, counts map[ActionKind]int) error
	// MarkWelcomeSeen sets the one-time welcome flag.
	MarkWelcomeSeen(ctx context.Context, identifier string) error
}

// LeaderboardRepository returns ranked raw entries for the leaderboard view.
type LeaderboardRepository interface {
	TopByPoints(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
