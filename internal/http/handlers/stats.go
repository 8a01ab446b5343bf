package handlers

import (
	"net/http"

	"ecoquest/internal/sqlinline"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary)
	var totalUsers, totalPoints, activeToday int64
	if err := row.Scan(&totalUsers, &totalPoints, &activeToday); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_users":  totalUsers,
		"total_points": totalPoints,
		"active_today": activeToday,
	})
}
