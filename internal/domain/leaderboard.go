package domain

// LeaderboardEntry is a raw record from the leaderboard source. Sources have
// historically disagreed on the name field (name vs username), so both are
// kept optional here; normalization into one canonical shape happens at the
// boundary in the leaderboard package.
type LeaderboardEntry struct {
	Name     string   `json:"name,omitempty"`
	Username string   `json:"username,omitempty"`
	Points   int      `json:"points"`
	Badges   []string `json:"badges,omitempty"`
}
