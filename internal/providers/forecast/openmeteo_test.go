package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeGeocoder struct {
	lat, lon float64
}

func (f fakeGeocoder) Lookup(ctx context.Context, city, country string) (float64, float64, error) {
	return f.lat, f.lon, nil
}

func TestFetchAggregatesByDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/air-quality" {
			t.Errorf("path = %q, want /v1/air-quality", r.URL.Path)
		}
		if got := r.URL.Query().Get("hourly"); got != "us_aqi,pm2_5" {
			t.Errorf("hourly = %q", got)
		}
		_, _ = w.Write([]byte(`{
  "hourly": {
    "time": ["2026-08-29T00:00","2026-08-29T01:00","2026-08-30T00:00","2026-08-30T01:00"],
    "us_aqi": [100, 140, 60, 80],
    "pm2_5": [40, 60, 20, 30]
  }
}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Geocoder: fakeGeocoder{lat: 19.07, lon: 72.87}})
	series, err := c.Fetch(context.Background(), "Mumbai", "India")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(series.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(series.Days))
	}
	first := series.Days[0]
	if first.Date != "2026-08-29" || first.AQIAvg != 120 || first.AQIMax != 140 || first.PM25Avg != 50 {
		t.Fatalf("first day = %+v", first)
	}
	second := series.Days[1]
	if second.Date != "2026-08-30" || second.AQIAvg != 70 || second.AQIMax != 80 {
		t.Fatalf("second day = %+v", second)
	}
}
