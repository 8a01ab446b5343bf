// Package geocode resolves city/country pairs to coordinates via Nominatim.
package geocode

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

const defaultTimeout = 10 * time.Second

// Options configures the Nominatim client.
type Options struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client queries the Nominatim search endpoint.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// New constructs a Client with defaults for anything unset.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "EcoQuestApp"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, userAgent: userAgent, client: client}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves "city, country" to coordinates. It returns
// domain.ErrNotFound when Nominatim has no match.
func (c *Client) Lookup(ctx context.Context, city, country string) (lat, lon float64, err error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s, %s", city, country))
	params.Set("format", "json")
	params.Set("limit", "1")

	endpoint := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, 0, &domain.RateLimitedError{}
	}
	if resp.StatusCode >= 300 {
		return 0, 0, &domain.StatusError{Status: resp.StatusCode, URL: c.baseURL + "/search"}
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("geocode: decode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("geocode %s, %s: %w", city, country, domain.ErrNotFound)
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: parse lat: %w", err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: parse lon: %w", err)
	}
	return lat, lon, nil
}
