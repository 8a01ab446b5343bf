package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestStatsSummary(t *testing.T) {
	app := newTestApp(newFakeUsers())
	app.SQL = &StubSQL{Row: NewSimpleRow(func(dest ...any) error {
		*(dest[0].(*int64)) = 12
		*(dest[1].(*int64)) = 340
		*(dest[2].(*int64)) = 4
		return nil
	})}

	rr := doGet(app.StatsSummary, "/v1/stats/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		TotalUsers  int64 `json:"total_users"`
		TotalPoints int64 `json:"total_points"`
		ActiveToday int64 `json:"active_today"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalUsers != 12 || resp.TotalPoints != 340 || resp.ActiveToday != 4 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}

func TestStatsSummaryScanFailure(t *testing.T) {
	app := newTestApp(newFakeUsers())
	app.SQL = &StubSQL{}

	rr := doGet(app.StatsSummary, "/v1/stats/summary")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}
