package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ecoquest/internal/domain"
	"ecoquest/internal/providers/carbon"
)

const (
	defaultActivity    = "car"
	defaultActionValue = 10
)

// CarbonEstimate runs one ledger-gated carbon-footprint calculation.
func (a *App) CarbonEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	activity := strings.ToLower(strings.TrimSpace(q.Get("activity")))
	if activity == "" {
		activity = defaultActivity
	}
	value := float64(defaultActionValue)
	if raw := strings.TrimSpace(q.Get("value")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "value must be a non-negative number")
			return
		}
		value = parsed
	}

	var estimate *carbon.Estimate
	res, err := a.Ledger.Attempt(r.Context(), userParam(r), domain.ActionCarbonCalculation, func(ctx context.Context) error {
		var ferr error
		estimate, ferr = a.Carbon.Estimate(ctx, activity, value)
		return ferr
	})
	if err != nil {
		if errors.Is(err, carbon.ErrUnsupportedActivity) {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		a.actionError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"data":  estimate,
		"quest": questPayload(res),
	})
}
