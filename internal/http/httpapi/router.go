package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"ecoquest/internal/http/handlers"
	"ecoquest/internal/infra"
	"ecoquest/internal/middleware"
)

// NewRouter wires the middleware chain and all routes.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.Origin(lookup),
	)

	r.Get("/", app.Root)
	r.Get("/v1/healthz", app.Health)

	r.Get("/v1/air-quality", app.AirQuality)
	r.Get("/v1/forecast", app.ForecastCheck)
	r.Get("/v1/carbon", app.CarbonEstimate)

	r.Route("/v1/users/{identifier}", func(r chi.Router) {
		r.Get("/", app.UserGet)
		r.Post("/points", app.UserPointsDelta)
		r.Post("/welcome", app.UserWelcome)
	})

	r.Get("/v1/leaderboard", app.Leaderboard)
	r.Get("/v1/stats/summary", app.StatsSummary)

	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	return r
}
