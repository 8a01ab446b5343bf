package handlers

import (
	"context"
	"net/http"
	"strings"

	"ecoquest/internal/domain"
	"ecoquest/internal/providers/forecast"
)

// ForecastCheck runs one ledger-gated multi-day forecast check.
func (a *App) ForecastCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := strings.TrimSpace(q.Get("city"))
	country := strings.TrimSpace(q.Get("country"))
	if city == "" {
		city = a.DefaultCity
	}
	if country == "" {
		country = a.DefaultCountry
	}
	city = titleCaser.String(city)

	var series *forecast.Series
	res, err := a.Ledger.Attempt(r.Context(), userParam(r), domain.ActionForecastCheck, func(ctx context.Context) error {
		var ferr error
		series, ferr = a.Forecast.Fetch(ctx, city, country)
		return ferr
	})
	if err != nil {
		a.actionError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"data":  series,
		"quest": questPayload(res),
	})
}
