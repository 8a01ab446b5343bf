// Package leaderboard builds the ranked top-N view shown on the dashboard.
package leaderboard

import (
	"sort"

	"ecoquest/internal/domain"
)

const (
	// PlaceholderName stands in when a source record carries neither a name
	// nor a username.
	PlaceholderName = "Unknown User"
	// ViewSize bounds the ranked view.
	ViewSize = 5
)

// Row is one ranked entry of the final view.
type Row struct {
	Rank     int      `json:"rank"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Points   int      `json:"points"`
	Badges   []string `json:"badges"`
	IsYou    bool     `json:"is_you"`
}

// View is the deterministic, bounded leaderboard.
type View struct {
	Rows  []Row `json:"rows"`
	Empty bool  `json:"empty"`
}

// Normalize coalesces the inconsistent source fields into one canonical
// shape: whichever of name/username is present fills both, missing points
// stay zero, and a missing badge set becomes empty rather than nil.
func Normalize(e domain.LeaderboardEntry) domain.LeaderboardEntry {
	name := e.Name
	if name == "" {
		name = e.Username
	}
	if name == "" {
		name = PlaceholderName
	}
	e.Name = name
	e.Username = name
	if e.Points < 0 {
		e.Points = 0
	}
	if e.Badges == nil {
		e.Badges = []string{}
	}
	return e
}

// BuildView merges the current user with the other records into a ranked
// top-5 view. It is a pure function: identical inputs yield identical output.
// Ties keep concatenation order (me first), so the current user ranks above
// an equal-scoring other. The current-user flag follows the position of me in
// the concatenation, never name equality; two records sharing a name are
// never both flagged.
func BuildView(me domain.LeaderboardEntry, others []domain.LeaderboardEntry) View {
	type indexed struct {
		entry domain.LeaderboardEntry
		isYou bool
	}

	combined := make([]indexed, 0, len(others)+1)
	combined = append(combined, indexed{entry: Normalize(me), isYou: true})
	for _, other := range others {
		combined = append(combined, indexed{entry: Normalize(other)})
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].entry.Points > combined[j].entry.Points
	})

	if len(combined) > ViewSize {
		combined = combined[:ViewSize]
	}
	if len(combined) == 0 {
		return View{Rows: []Row{}, Empty: true}
	}

	rows := make([]Row, 0, len(combined))
	for i, c := range combined {
		rows = append(rows, Row{
			Rank:     i + 1,
			Name:     c.entry.Name,
			Username: c.entry.Username,
			Points:   c.entry.Points,
			Badges:   c.entry.Badges,
			IsYou:    c.isYou,
		})
	}
	return View{Rows: rows}
}
