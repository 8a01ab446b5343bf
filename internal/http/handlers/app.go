package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"ecoquest/internal/domain"
	"ecoquest/internal/infra"
	"ecoquest/internal/ledger"
	"ecoquest/internal/providers/airquality"
	"ecoquest/internal/providers/carbon"
	"ecoquest/internal/providers/forecast"
)

// AirService fetches the current air-quality reading for a location.
type AirService interface {
	Current(ctx context.Context, city, state, country string) (*airquality.Reading, error)
}

// ForecastService fetches a multi-day air-quality forecast for a location.
type ForecastService interface {
	Fetch(ctx context.Context, city, country string) (*forecast.Series, error)
}

// CarbonService estimates CO2 emissions for an activity.
type CarbonService interface {
	Estimate(ctx context.Context, activity string, value float64) (*carbon.Estimate, error)
}

// App bundles the dependencies every handler needs.
type App struct {
	SQL      infra.SQLExecutor
	Users    domain.UserRepository
	Board    domain.LeaderboardRepository
	Ledger   *ledger.Ledger
	Air      AirService
	Forecast ForecastService
	Carbon   CarbonService
	Logger   zerolog.Logger

	DefaultCity    string
	DefaultCountry string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// userParam extracts the acting user identifier from the query string. An
// absent or blank value means the guest identity.
func userParam(r *http.Request) string {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		return domain.GuestIdentifier
	}
	return user
}

// questPayload is the ledger outcome attached to every gated action response.
func questPayload(res *ledger.Result) map[string]any {
	return map[string]any{
		"points":    res.Points,
		"count":     res.Count,
		"limit":     res.Limit,
		"remaining": res.Remaining(),
		"badges":    res.Badges,
	}
}

// actionError maps ledger and upstream failures onto the response envelope.
// The daily quota and an upstream 429 both render as one rate_limited answer
// so the client shows a single treatment for "slow down".
func (a *App) actionError(w http.ResponseWriter, err error) {
	var quota *domain.QuotaExceededError
	if errors.As(err, &quota) {
		msg := fmt.Sprintf("daily limit of %d reached for %s, come back tomorrow", quota.Limit, quota.Kind)
		a.error(w, http.StatusTooManyRequests, "rate_limited", msg)
		return
	}
	var limited *domain.RateLimitedError
	if errors.As(err, &limited) {
		a.error(w, http.StatusTooManyRequests, "rate_limited", "the data source is busy, come back tomorrow")
		return
	}
	if errors.Is(err, domain.ErrAttemptInFlight) {
		a.error(w, http.StatusConflict, "in_flight", "this check is already running, hold on")
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "location not found")
		return
	}
	if errors.Is(err, domain.ErrRemoteUpdateFailed) {
		a.error(w, http.StatusBadGateway, "upstream_error", "failed to record points, nothing was charged")
		return
	}
	var status *domain.StatusError
	if errors.As(err, &status) {
		a.error(w, http.StatusBadGateway, "upstream_error", "upstream data source failed")
		return
	}
	a.Logger.Error().Err(err).Msg("action failed")
	a.error(w, http.StatusBadGateway, "upstream_error", "upstream data source failed")
}
