package handlers

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ecoquest/internal/domain"
	"ecoquest/internal/middleware"
	"ecoquest/internal/providers/airquality"
)

var titleCaser = cases.Title(language.English)

// AirQuality runs one ledger-gated air-quality check. Location defaults come
// from config, with the country overridden by the request's resolved origin
// when the query names neither city nor country.
func (a *App) AirQuality(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := strings.TrimSpace(q.Get("city"))
	state := strings.TrimSpace(q.Get("state"))
	country := strings.TrimSpace(q.Get("country"))
	if city == "" && country == "" {
		if origin := middleware.CountryFromContext(r.Context()); origin != "" {
			country = origin
		}
	}
	if city == "" {
		city = a.DefaultCity
	}
	if country == "" {
		country = a.DefaultCountry
	}
	city = titleCaser.String(city)

	var reading *airquality.Reading
	res, err := a.Ledger.Attempt(r.Context(), userParam(r), domain.ActionAirQualityCheck, func(ctx context.Context) error {
		var ferr error
		reading, ferr = a.Air.Current(ctx, city, state, country)
		return ferr
	})
	if err != nil {
		a.actionError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"data":  reading,
		"quest": questPayload(res),
	})
}
