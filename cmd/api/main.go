package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ecoquest/internal/adapter/repo"
	"ecoquest/internal/http/handlers"
	"ecoquest/internal/http/httpapi"
	"ecoquest/internal/infra"
	"ecoquest/internal/infra/geoip"
	"ecoquest/internal/ledger"
	"ecoquest/internal/middleware"
	"ecoquest/internal/providers/airquality"
	"ecoquest/internal/providers/carbon"
	"ecoquest/internal/providers/forecast"
	"ecoquest/internal/providers/geocode"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	users := repo.NewUserRepository(runner)
	board := repo.NewLeaderboardRepository(runner)

	store, err := ledger.OpenSQLiteStore(cfg.LedgerDBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.LedgerDBPath).Msg("failed to open ledger snapshot store")
	}
	defer func() { _ = store.Close() }()

	led := ledger.New(ledger.Options{
		Users:  users,
		Store:  store,
		Logger: logger,
	})

	geocoder := geocode.New(geocode.Options{})
	air := airquality.New(airquality.Options{
		APIKey:     cfg.IQAirAPIKey,
		Geocoder:   geocoder,
		Pollutants: airquality.NewOpenAQ(airquality.OpenAQOptions{APIKey: cfg.OpenAQAPIKey}),
	})
	fc := forecast.New(forecast.Options{Geocoder: geocoder, Days: cfg.ForecastDays})
	co2 := carbon.New(carbon.Options{APIKey: cfg.ClimatiqAPIKey})

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}

	app := &handlers.App{
		SQL:            runner,
		Users:          users,
		Board:          board,
		Ledger:         led,
		Air:            air,
		Forecast:       fc,
		Carbon:         co2,
		Logger:         logger,
		DefaultCity:    cfg.DefaultCity,
		DefaultCountry: cfg.DefaultCountry,
	}

	router := httpapi.NewRouter(app, cfg, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
