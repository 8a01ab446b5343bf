package airquality

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ecoquest/internal/domain"
)

const iqairDefaultTimeout = 10 * time.Second

// Options configures the IQAir client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Geocoder   Geocoder
	Pollutants PollutantSource
}

// Client merges IQAir AQI data with OpenAQ pollutant breakdowns.
type Client struct {
	apiKey     string
	baseURL    string
	client     *http.Client
	geocoder   Geocoder
	pollutants PollutantSource
}

// New constructs a Client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://api.airvisual.com"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: iqairDefaultTimeout}
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		client:     client,
		geocoder:   opts.Geocoder,
		pollutants: opts.Pollutants,
	}
}

type iqairResponse struct {
	Status string `json:"status"`
	Data   struct {
		City     string `json:"city"`
		State    string `json:"state"`
		Country  string `json:"country"`
		Location struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"location"`
		Current struct {
			Pollution struct {
				AQIUS  int    `json:"aqius"`
				MainUS string `json:"mainus"`
			} `json:"pollution"`
			Weather struct {
				Tp float64 `json:"tp"`
				Hu float64 `json:"hu"`
				Ws float64 `json:"ws"`
			} `json:"weather"`
		} `json:"current"`
	} `json:"data"`
}

type iqairFailure struct {
	Data struct {
		Message string `json:"message"`
	} `json:"data"`
}

// Current fetches the reading for a city. With a state the IQAir city
// endpoint is queried directly; otherwise the city is geocoded and the
// nearest station is used, as the dashboard has always done.
func (c *Client) Current(ctx context.Context, city, state, country string) (*Reading, error) {
	var endpoint string
	if state != "" {
		params := url.Values{}
		params.Set("city", city)
		params.Set("state", state)
		params.Set("country", country)
		params.Set("key", c.apiKey)
		endpoint = c.baseURL + "/v2/city?" + params.Encode()
	} else {
		lat, lon, err := c.geocoder.Lookup(ctx, city, country)
		if err != nil {
			return nil, fmt.Errorf("locate %s, %s: %w", city, country, err)
		}
		params := url.Values{}
		params.Set("lat", fmt.Sprintf("%f", lat))
		params.Set("lon", fmt.Sprintf("%f", lon))
		params.Set("key", c.apiKey)
		endpoint = c.baseURL + "/v2/nearest_city?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("airquality: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airquality: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		var failure iqairFailure
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return nil, &domain.RateLimitedError{Reason: failure.Data.Message}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.StatusError{Status: resp.StatusCode, URL: c.baseURL}
	}

	var out iqairResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("airquality: decode response: %w", err)
	}

	reading := &Reading{
		RequestedCity:      city,
		NearestStationCity: out.Data.City,
		State:              out.Data.State,
		Country:            out.Data.Country,
		AQIUS:              out.Data.Current.Pollution.AQIUS,
		MainPollutant:      out.Data.Current.Pollution.MainUS,
		Temperature:        out.Data.Current.Weather.Tp,
		Humidity:           out.Data.Current.Weather.Hu,
		WindSpeed:          out.Data.Current.Weather.Ws,
	}
	if coords := out.Data.Location.Coordinates; len(coords) == 2 {
		reading.Coordinates = Coordinates{Lat: coords[1], Lon: coords[0]}
	}

	reading.Pollutants = c.pollutantBreakdown(ctx, city, country)
	return reading, nil
}

// pollutantBreakdown asks OpenAQ for measured values and falls back to mock
// data when the source has nothing for the location. The breakdown is
// decorative, so source failures degrade rather than fail the reading.
func (c *Client) pollutantBreakdown(ctx context.Context, city, country string) map[string]float64 {
	if c.pollutants != nil {
		pollutants, err := c.pollutants.Latest(ctx, city, country)
		if err == nil && len(pollutants) > 0 {
			return pollutants
		}
	}
	return mockPollutants()
}
