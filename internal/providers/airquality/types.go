// Package airquality fetches current air-quality readings from IQAir, with
// pollutant breakdowns from OpenAQ.
package airquality

import "context"

// Coordinates locate the reporting station.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Reading is one merged air-quality observation.
type Reading struct {
	RequestedCity      string             `json:"requested_city"`
	NearestStationCity string             `json:"nearest_station_city"`
	State              string             `json:"state"`
	Country            string             `json:"country"`
	AQIUS              int                `json:"aqi_us"`
	MainPollutant      string             `json:"main_pollutant"`
	Pollutants         map[string]float64 `json:"pollutants"`
	Coordinates        Coordinates        `json:"coordinates"`
	Temperature        float64            `json:"temperature"`
	Humidity           float64            `json:"humidity"`
	WindSpeed          float64            `json:"wind_speed"`
}

// Geocoder resolves a city/country pair to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, city, country string) (lat, lon float64, err error)
}

// PollutantSource supplies per-pollutant concentrations for a city.
type PollutantSource interface {
	Latest(ctx context.Context, city, country string) (map[string]float64, error)
}
