package airquality

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecoquest/internal/domain"
)

type fakeGeocoder struct {
	lat, lon float64
	err      error
}

func (f fakeGeocoder) Lookup(ctx context.Context, city, country string) (float64, float64, error) {
	return f.lat, f.lon, f.err
}

type fakePollutants struct {
	values map[string]float64
	err    error
}

func (f fakePollutants) Latest(ctx context.Context, city, country string) (map[string]float64, error) {
	return f.values, f.err
}

const iqairBody = `{
  "status": "success",
  "data": {
    "city": "Mumbai",
    "state": "Maharashtra",
    "country": "India",
    "location": {"coordinates": [72.8777, 19.0760]},
    "current": {
      "pollution": {"aqius": 153, "mainus": "p2"},
      "weather": {"tp": 31, "hu": 68, "ws": 3.6}
    }
  }
}`

func TestCurrentNearestCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/nearest_city" {
			t.Errorf("path = %q, want /v2/nearest_city", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "k" {
			t.Errorf("key = %q, want k", r.URL.Query().Get("key"))
		}
		_, _ = w.Write([]byte(iqairBody))
	}))
	defer srv.Close()

	c := New(Options{
		APIKey:     "k",
		BaseURL:    srv.URL,
		Geocoder:   fakeGeocoder{lat: 19.0760, lon: 72.8777},
		Pollutants: fakePollutants{values: map[string]float64{"pm2_5": 55.2, "pm10": 91.0}},
	})

	reading, err := c.Current(context.Background(), "Mumbai", "", "India")
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if reading.AQIUS != 153 || reading.MainPollutant != "p2" {
		t.Fatalf("pollution = (%d, %q), want (153, p2)", reading.AQIUS, reading.MainPollutant)
	}
	if reading.Coordinates.Lat != 19.0760 || reading.Coordinates.Lon != 72.8777 {
		t.Fatalf("coordinates = %+v, want lat 19.0760 lon 72.8777", reading.Coordinates)
	}
	if reading.NearestStationCity != "Mumbai" || reading.RequestedCity != "Mumbai" {
		t.Fatalf("cities = (%q, %q)", reading.NearestStationCity, reading.RequestedCity)
	}
	if reading.Pollutants["pm2_5"] != 55.2 {
		t.Fatalf("pollutants = %v, want measured values", reading.Pollutants)
	}
}

func TestCurrentCityEndpointWhenStateGiven(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(iqairBody))
	}))
	defer srv.Close()

	c := New(Options{
		APIKey:     "k",
		BaseURL:    srv.URL,
		Geocoder:   fakeGeocoder{err: errors.New("geocoder must not be called")},
		Pollutants: fakePollutants{},
	})
	if _, err := c.Current(context.Background(), "Mumbai", "Maharashtra", "India"); err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if path != "/v2/city" {
		t.Fatalf("path = %q, want /v2/city", path)
	}
}

func TestCurrentMockFallbackWhenNoPollutantData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(iqairBody))
	}))
	defer srv.Close()

	c := New(Options{
		APIKey:     "k",
		BaseURL:    srv.URL,
		Geocoder:   fakeGeocoder{},
		Pollutants: fakePollutants{values: map[string]float64{}},
	})
	reading, err := c.Current(context.Background(), "Mumbai", "", "India")
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	for _, key := range []string{"pm2_5", "pm10", "o3", "no2", "so2", "co"} {
		if _, ok := reading.Pollutants[key]; !ok {
			t.Fatalf("mock pollutants missing %q: %v", key, reading.Pollutants)
		}
	}
}

func TestCurrentRateLimitedCarriesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":"fail","data":{"message":"call_per_minute_limit_reached"}}`))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "k", BaseURL: srv.URL, Geocoder: fakeGeocoder{}, Pollutants: fakePollutants{}})
	_, err := c.Current(context.Background(), "Mumbai", "", "India")
	var rate *domain.RateLimitedError
	if !errors.As(err, &rate) {
		t.Fatalf("error = %v, want RateLimitedError", err)
	}
	if rate.Reason != "call_per_minute_limit_reached" {
		t.Fatalf("reason = %q, want upstream message", rate.Reason)
	}
}

func TestOpenAQNormalizesPM25Key(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"measurements":[{"parameter":"pm25","value":41.5},{"parameter":"no2","value":12.0}]}]}`))
	}))
	defer srv.Close()

	o := NewOpenAQ(OpenAQOptions{APIKey: "secret", BaseURL: srv.URL})
	pollutants, err := o.Latest(context.Background(), "Mumbai", "India")
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if _, ok := pollutants["pm25"]; ok {
		t.Fatal("pm25 key survived normalization")
	}
	if pollutants["pm2_5"] != 41.5 || pollutants["no2"] != 12.0 {
		t.Fatalf("pollutants = %v", pollutants)
	}
}
