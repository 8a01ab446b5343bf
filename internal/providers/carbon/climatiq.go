// Package carbon estimates CO2 emissions for everyday activities via the
// Climatiq estimate endpoint.
package carbon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"ecoquest/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	dataVersion    = "24.24"
)

// ErrUnsupportedActivity is returned for activity names outside the map.
var ErrUnsupportedActivity = errors.New("unsupported activity")

var activityIDs = map[string]string{
	"car":         "passenger_vehicle-vehicle_type_car-fuel_source_na-engine_size_na-vehicle_age_na-vehicle_weight_na",
	"bus":         "passenger_vehicle-vehicle_type_bus-fuel_source_na-engine_size_na-vehicle_age_na-vehicle_weight_na",
	"train":       "passenger_train-route_type_na-fuel_source_na",
	"flight":      "passenger_flight-route_type_outside_uk-aircraft_type_na-distance_na-class_na-rf_included-distance_uplift_included",
	"electricity": "electricity-supply_grid-source_supplier_mix",
}

// Activities lists the supported activity names in a fixed order.
func Activities() []string {
	names := make([]string, 0, len(activityIDs))
	for name := range activityIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Estimate is one computed emission figure.
type Estimate struct {
	Activity string  `json:"activity"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	KgCO2    float64 `json:"kgCO2"`
}

// Options configures the Climatiq client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls the Climatiq estimate API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New constructs a Client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.climatiq.io"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{apiKey: opts.APIKey, baseURL: baseURL, client: client}
}

type estimateRequest struct {
	EmissionFactor struct {
		ActivityID  string `json:"activity_id"`
		DataVersion string `json:"data_version"`
	} `json:"emission_factor"`
	Parameters map[string]any `json:"parameters"`
}

type estimateResponse struct {
	CO2E float64 `json:"co2e"`
}

// Estimate computes kgCO2 for the activity. Travel activities take the value
// as distance in km, electricity as energy in kWh.
func (c *Client) Estimate(ctx context.Context, activity string, value float64) (*Estimate, error) {
	activityID, ok := activityIDs[activity]
	if !ok {
		return nil, fmt.Errorf("%w %q, choose one of %s", ErrUnsupportedActivity, activity, strings.Join(Activities(), ", "))
	}

	unit := "km"
	var payload estimateRequest
	payload.EmissionFactor.ActivityID = activityID
	payload.EmissionFactor.DataVersion = dataVersion
	if activity == "electricity" {
		unit = "kWh"
		payload.Parameters = map[string]any{"energy": value, "energy_unit": "kWh"}
	} else {
		payload.Parameters = map[string]any{"distance": value, "distance_unit": "km"}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("carbon: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimate", &buf)
	if err != nil {
		return nil, fmt.Errorf("carbon: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carbon: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &domain.RateLimitedError{}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.StatusError{Status: resp.StatusCode, URL: c.baseURL + "/estimate"}
	}

	var out estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("carbon: decode response: %w", err)
	}

	return &Estimate{
		Activity: activity,
		Value:    value,
		Unit:     unit,
		KgCO2:    out.CO2E,
	}, nil
}
