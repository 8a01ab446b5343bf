package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ecoquest/internal/domain"
)

func userResponse(record *domain.UserRecord) map[string]any {
	counts := record.DailyCounts
	if counts == nil {
		counts = map[domain.ActionKind]int{}
	}
	limits := map[domain.ActionKind]int{}
	for _, kind := range domain.ActionKinds() {
		limits[kind] = record.LimitFor(kind)
	}
	return map[string]any{
		"identifier":     record.Identifier,
		"points":         record.Points,
		"badges":         record.Badges(),
		"daily_counts":   counts,
		"daily_limits":   limits,
		"last_reset_day": record.LastResetDay,
		"welcome_seen":   record.WelcomeSeen,
	}
}

// UserGet returns the authoritative record for an identifier. An identifier
// the store has never seen answers with the zero-state default, so the client
// never needs a separate signup call.
func (a *App) UserGet(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(chi.URLParam(r, "identifier"))
	if identifier == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "identifier required")
		return
	}
	if identifier == domain.GuestIdentifier {
		a.json(w, http.StatusOK, userResponse(domain.NewUserRecord(identifier)))
		return
	}
	record, err := a.Users.GetByIdentifier(r.Context(), identifier)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load user")
		return
	}
	a.json(w, http.StatusOK, userResponse(record))
}

type pointsDeltaRequest struct {
	Delta int `json:"delta"`
}

// UserPointsDelta applies a signed point adjustment and answers with the
// updated record. The store floors the total at zero.
func (a *App) UserPointsDelta(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(chi.URLParam(r, "identifier"))
	if identifier == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "identifier required")
		return
	}
	if identifier == domain.GuestIdentifier {
		a.error(w, http.StatusBadRequest, "bad_request", "guest points are not stored")
		return
	}
	var req pointsDeltaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	record, err := a.Users.ApplyPointsDelta(r.Context(), identifier, req.Delta)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to apply points")
		return
	}
	a.json(w, http.StatusOK, userResponse(record))
}

// UserWelcome marks the one-time welcome flag for an identifier.
func (a *App) UserWelcome(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(chi.URLParam(r, "identifier"))
	if identifier == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "identifier required")
		return
	}
	if identifier == domain.GuestIdentifier {
		a.json(w, http.StatusOK, map[string]any{"welcome_seen": true})
		return
	}
	if err := a.Users.MarkWelcomeSeen(r.Context(), identifier); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to mark welcome")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"welcome_seen": true})
}
