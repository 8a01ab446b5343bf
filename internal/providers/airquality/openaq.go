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

const openAQDefaultTimeout = 10 * time.Second

// OpenAQOptions configures the OpenAQ client.
type OpenAQOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAQ fetches pollutant breakdowns from the OpenAQ latest endpoint.
type OpenAQ struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAQ constructs an OpenAQ client. The API key is optional.
func NewOpenAQ(opts OpenAQOptions) *OpenAQ {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openaq.org"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAQDefaultTimeout}
	}
	return &OpenAQ{apiKey: opts.APIKey, baseURL: baseURL, client: client}
}

type openAQResponse struct {
	Results []struct {
		Measurements []struct {
			Parameter string  `json:"parameter"`
			Value     float64 `json:"value"`
		} `json:"measurements"`
	} `json:"results"`
}

// Latest returns the most recent pollutant concentrations for the city. The
// pm25 key is normalized to pm2_5 so every consumer sees one spelling. An
// empty map means OpenAQ had no data for the location.
func (o *OpenAQ) Latest(ctx context.Context, city, country string) (map[string]float64, error) {
	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	params.Set("limit", "1")

	endpoint := o.baseURL + "/v2/latest?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("openaq: build request: %w", err)
	}
	if o.apiKey != "" {
		req.Header.Set("X-API-Key", o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openaq: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &domain.RateLimitedError{}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.StatusError{Status: resp.StatusCode, URL: o.baseURL + "/v2/latest"}
	}

	var out openAQResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("openaq: decode response: %w", err)
	}

	pollutants := map[string]float64{}
	if len(out.Results) > 0 {
		for _, m := range out.Results[0].Measurements {
			key := m.Parameter
			if key == "pm25" {
				key = "pm2_5"
			}
			pollutants[key] = m.Value
		}
	}
	return pollutants, nil
}

var _ PollutantSource = (*OpenAQ)(nil)
