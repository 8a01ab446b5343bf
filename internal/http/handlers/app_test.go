package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"ecoquest/internal/domain"
	"ecoquest/internal/ledger"
	"ecoquest/internal/providers/airquality"
	"ecoquest/internal/providers/carbon"
	"ecoquest/internal/providers/forecast"
)

type fakeUsers struct {
	mu      sync.Mutex
	records map[string]*domain.UserRecord
	getErr  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{records: map[string]*domain.UserRecord{}}
}

func (f *fakeUsers) put(record *domain.UserRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.Identifier] = record
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, identifier string) (*domain.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if record, ok := f.records[identifier]; ok {
		copied := *record
		return &copied, nil
	}
	return domain.NewUserRecord(identifier), nil
}

func (f *fakeUsers) ApplyPointsDelta(_ context.Context, identifier string, delta int) (*domain.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[identifier]
	if !ok {
		record = domain.NewUserRecord(identifier)
		f.records[identifier] = record
	}
	record.Points += delta
	if record.Points < 0 {
		record.Points = 0
	}
	copied := *record
	return &copied, nil
}

func (f *fakeUsers) SaveDailyCounts(_ context.Context, identifier, day string, counts map[domain.ActionKind]int) error {
	return nil
}

func (f *fakeUsers) MarkWelcomeSeen(_ context.Context, identifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[identifier]
	if !ok {
		record = domain.NewUserRecord(identifier)
		f.records[identifier] = record
	}
	record.WelcomeSeen = true
	return nil
}

type fakeBoard struct {
	entries []domain.LeaderboardEntry
	err     error
}

func (f *fakeBoard) TopByPoints(context.Context, int) ([]domain.LeaderboardEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeAir struct {
	reading *airquality.Reading
	err     error
	calls   int
}

func (f *fakeAir) Current(_ context.Context, city, state, country string) (*airquality.Reading, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	reading := *f.reading
	reading.RequestedCity = city
	reading.Country = country
	return &reading, nil
}

type fakeForecast struct {
	series *forecast.Series
	err    error
}

func (f *fakeForecast) Fetch(_ context.Context, city, country string) (*forecast.Series, error) {
	if f.err != nil {
		return nil, f.err
	}
	series := *f.series
	series.City = city
	series.Country = country
	return &series, nil
}

type fakeCarbon struct {
	err          error
	lastActivity string
	lastValue    float64
}

func (f *fakeCarbon) Estimate(_ context.Context, activity string, value float64) (*carbon.Estimate, error) {
	f.lastActivity = activity
	f.lastValue = value
	if f.err != nil {
		return nil, f.err
	}
	return &carbon.Estimate{Activity: activity, Value: value, Unit: "km", KgCO2: value * 0.17}, nil
}

func newTestApp(users *fakeUsers) *App {
	return &App{
		Users:          users,
		Board:          &fakeBoard{},
		Ledger:         ledger.New(ledger.Options{Users: users, Logger: zerolog.Nop()}),
		Air:            &fakeAir{reading: &airquality.Reading{AQIUS: 42, MainPollutant: "p2"}},
		Forecast:       &fakeForecast{series: &forecast.Series{Days: []forecast.Day{{Date: "2026-08-29"}}}},
		Carbon:         &fakeCarbon{},
		Logger:         zerolog.Nop(),
		DefaultCity:    "Mumbai",
		DefaultCountry: "India",
	}
}

// withURLParam attaches a chi route parameter so handlers can read it without
// a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func doGet(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}
