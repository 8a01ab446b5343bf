// Package forecast fetches multi-day air-quality forecasts from Open-Meteo.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ecoquest/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	defaultDays    = 5
)

// Geocoder resolves a city/country pair to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, city, country string) (lat, lon float64, err error)
}

// Day aggregates one forecast day.
type Day struct {
	Date    string  `json:"date"`
	AQIAvg  float64 `json:"aqi_avg"`
	AQIMax  float64 `json:"aqi_max"`
	PM25Avg float64 `json:"pm2_5_avg"`
}

// Series is an ordered multi-day forecast for one location.
type Series struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Days    []Day  `json:"days"`
}

// Options configures the Open-Meteo client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Geocoder   Geocoder
	Days       int
}

// Client calls the Open-Meteo air-quality API. No API key is needed.
type Client struct {
	baseURL  string
	client   *http.Client
	geocoder Geocoder
	days     int
}

// New constructs a Client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://air-quality-api.open-meteo.com"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	days := opts.Days
	if days <= 0 {
		days = defaultDays
	}
	return &Client{baseURL: baseURL, client: client, geocoder: opts.Geocoder, days: days}
}

type openMeteoResponse struct {
	Hourly struct {
		Time  []string  `json:"time"`
		USAQI []float64 `json:"us_aqi"`
		PM25  []float64 `json:"pm2_5"`
	} `json:"hourly"`
}

// Fetch geocodes the city and returns a per-day aggregate of the hourly
// forecast, oldest day first.
func (c *Client) Fetch(ctx context.Context, city, country string) (*Series, error) {
	lat, lon, err := c.geocoder.Lookup(ctx, city, country)
	if err != nil {
		return nil, fmt.Errorf("locate %s, %s: %w", city, country, err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("hourly", "us_aqi,pm2_5")
	params.Set("forecast_days", strconv.Itoa(c.days))

	endpoint := c.baseURL + "/v1/air-quality?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("forecast: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &domain.RateLimitedError{}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.StatusError{Status: resp.StatusCode, URL: c.baseURL + "/v1/air-quality"}
	}

	var out openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("forecast: decode response: %w", err)
	}

	return &Series{
		City:    city,
		Country: country,
		Days:    aggregateDaily(out),
	}, nil
}

type dayAccumulator struct {
	aqiSum, aqiMax, pmSum float64
	samples               int
}

// aggregateDaily folds the hourly series into per-day averages and maxima.
// Hourly timestamps look like "2026-08-29T13:00"; the date is the prefix.
func aggregateDaily(out openMeteoResponse) []Day {
	order := []string{}
	acc := map[string]*dayAccumulator{}
	for i, ts := range out.Hourly.Time {
		if i >= len(out.Hourly.USAQI) {
			break
		}
		date := ts
		if idx := strings.IndexByte(ts, 'T'); idx > 0 {
			date = ts[:idx]
		}
		a, ok := acc[date]
		if !ok {
			a = &dayAccumulator{}
			acc[date] = a
			order = append(order, date)
		}
		aqi := out.Hourly.USAQI[i]
		a.aqiSum += aqi
		if aqi > a.aqiMax {
			a.aqiMax = aqi
		}
		if i < len(out.Hourly.PM25) {
			a.pmSum += out.Hourly.PM25[i]
		}
		a.samples++
	}

	days := make([]Day, 0, len(order))
	for _, date := range order {
		a := acc[date]
		if a.samples == 0 {
			continue
		}
		days = append(days, Day{
			Date:    date,
			AQIAvg:  a.aqiSum / float64(a.samples),
			AQIMax:  a.aqiMax,
			PM25Avg: a.pmSum / float64(a.samples),
		})
	}
	return days
}
