package handlers

import (
	"net/http"

	"ecoquest/internal/providers/carbon"
)

func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"message": "🌍 EcoQuest API is running",
		"endpoints": map[string]string{
			"air_quality": "/v1/air-quality?city=Mumbai&country=India",
			"forecast":    "/v1/forecast?city=Mumbai&country=India",
			"carbon":      "/v1/carbon?activity=car&value=10",
			"leaderboard": "/v1/leaderboard",
			"health":      "/v1/healthz",
		},
		"activities": carbon.Activities(),
	})
}
