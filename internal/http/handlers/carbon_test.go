package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"ecoquest/internal/providers/carbon"
)

func TestCarbonEstimateRewardsPoints(t *testing.T) {
	users := newFakeUsers()
	app := newTestApp(users)
	fake := &fakeCarbon{}
	app.Carbon = fake

	rr := doGet(app.CarbonEstimate, "/v1/carbon?user=alice&activity=train&value=120.5")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	if fake.lastActivity != "train" || fake.lastValue != 120.5 {
		t.Fatalf("estimate called with %q %.1f, want train 120.5", fake.lastActivity, fake.lastValue)
	}
	var resp questResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Quest.Points != 15 {
		t.Fatalf("points = %d, want 15", resp.Quest.Points)
	}
	if resp.Quest.Limit != 10 {
		t.Fatalf("limit = %d, want 10", resp.Quest.Limit)
	}
}

func TestCarbonEstimateDefaults(t *testing.T) {
	users := newFakeUsers()
	app := newTestApp(users)
	fake := &fakeCarbon{}
	app.Carbon = fake

	rr := doGet(app.CarbonEstimate, "/v1/carbon")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if fake.lastActivity != "car" || fake.lastValue != 10 {
		t.Fatalf("defaults = %q %.1f, want car 10", fake.lastActivity, fake.lastValue)
	}
}

func TestCarbonEstimateRejectsBadValue(t *testing.T) {
	app := newTestApp(newFakeUsers())

	for _, target := range []string{
		"/v1/carbon?value=abc",
		"/v1/carbon?value=-3",
	} {
		rr := doGet(app.CarbonEstimate, target)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", target, rr.Code)
		}
	}
}

func TestCarbonEstimateUnsupportedActivity(t *testing.T) {
	users := newFakeUsers()
	app := newTestApp(users)
	app.Carbon = carbon.New(carbon.Options{APIKey: "unused"})

	rr := doGet(app.CarbonEstimate, "/v1/carbon?user=alice&activity=rocket")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rr.Code, rr.Body.String())
	}
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != "bad_request" {
		t.Fatalf("error code = %q, want bad_request", resp.Error.Code)
	}
}
