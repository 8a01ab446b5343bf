package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecoquest/internal/domain"
)

func TestUserGetUnknownReturnsZeroState(t *testing.T) {
	app := newTestApp(newFakeUsers())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/v1/users/newcomer", nil), "identifier", "newcomer")
	rr := httptest.NewRecorder()
	app.UserGet(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Identifier  string                    `json:"identifier"`
		Points      int                       `json:"points"`
		Badges      []string                  `json:"badges"`
		DailyLimits map[domain.ActionKind]int `json:"daily_limits"`
		WelcomeSeen bool                      `json:"welcome_seen"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Identifier != "newcomer" || resp.Points != 0 || resp.WelcomeSeen {
		t.Fatalf("unexpected zero state: %+v", resp)
	}
	if resp.Badges == nil || len(resp.Badges) != 0 {
		t.Fatalf("badges = %#v, want empty list", resp.Badges)
	}
	if resp.DailyLimits[domain.ActionAirQualityCheck] != 5 {
		t.Fatalf("air limit = %d, want default 5", resp.DailyLimits[domain.ActionAirQualityCheck])
	}
}

func TestUserGetDerivesBadges(t *testing.T) {
	users := newFakeUsers()
	record := domain.NewUserRecord("alice")
	record.Points = 150
	users.put(record)
	app := newTestApp(users)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/v1/users/alice", nil), "identifier", "alice")
	rr := httptest.NewRecorder()
	app.UserGet(rr, req)

	var resp struct {
		Badges []string `json:"badges"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"First Steps", "Eco Explorer", "Green Champion"}
	if len(resp.Badges) != len(want) {
		t.Fatalf("badges = %v, want %v", resp.Badges, want)
	}
	for i := range want {
		if resp.Badges[i] != want[i] {
			t.Fatalf("badges = %v, want %v", resp.Badges, want)
		}
	}
}

func TestUserPointsDeltaAppliesAndFloors(t *testing.T) {
	users := newFakeUsers()
	record := domain.NewUserRecord("alice")
	record.Points = 20
	users.put(record)
	app := newTestApp(users)

	body := strings.NewReader(`{"delta":-100}`)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/v1/users/alice/points", body), "identifier", "alice")
	rr := httptest.NewRecorder()
	app.UserPointsDelta(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Points != 0 {
		t.Fatalf("points = %d, want floored 0", resp.Points)
	}
}

func TestUserPointsDeltaRejectsGuest(t *testing.T) {
	app := newTestApp(newFakeUsers())

	body := strings.NewReader(`{"delta":10}`)
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/v1/users/Guest/points", body), "identifier", "Guest")
	rr := httptest.NewRecorder()
	app.UserPointsDelta(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUserWelcomeMarksFlag(t *testing.T) {
	users := newFakeUsers()
	app := newTestApp(users)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/v1/users/alice/welcome", nil), "identifier", "alice")
	rr := httptest.NewRecorder()
	app.UserWelcome(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	users.mu.Lock()
	defer users.mu.Unlock()
	if record, ok := users.records["alice"]; !ok || !record.WelcomeSeen {
		t.Fatal("welcome flag not persisted")
	}
}
