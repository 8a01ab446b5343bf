package handlers

import (
	"net/http"

	"ecoquest/internal/domain"
	"ecoquest/internal/leaderboard"
)

// Leaderboard answers the ranked top-5 view with the acting user merged in.
// A failing leaderboard source degrades to a view containing only the acting
// user rather than an error: the panel is decoration, not navigation.
func (a *App) Leaderboard(w http.ResponseWriter, r *http.Request) {
	user := userParam(r)

	var record *domain.UserRecord
	if user == domain.GuestIdentifier {
		record = domain.NewUserRecord(user)
	} else {
		loaded, err := a.Users.GetByIdentifier(r.Context(), user)
		if err != nil {
			a.Logger.Warn().Err(err).Str("user", user).Msg("leaderboard self lookup failed")
			loaded = domain.NewUserRecord(user)
		}
		record = loaded
	}
	me := domain.LeaderboardEntry{
		Username: record.Identifier,
		Points:   record.Points,
		Badges:   record.Badges(),
	}

	others, err := a.Board.TopByPoints(r.Context(), leaderboard.ViewSize)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("leaderboard source failed, degrading")
		others = nil
	}
	filtered := others[:0]
	for _, entry := range others {
		if entry.Username == record.Identifier {
			continue
		}
		filtered = append(filtered, entry)
	}

	a.json(w, http.StatusOK, leaderboard.BuildView(me, filtered))
}
