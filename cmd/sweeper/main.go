package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ecoquest/internal/infra"
	"ecoquest/internal/ledger"
)

// The sweeper prunes ledger snapshots from previous days. Snapshots only
// matter for the current calendar day; anything older is dead weight in the
// local database file.
func main() {
	var (
		pathFlag     string
		intervalFlag time.Duration
		onceFlag     bool
	)

	_ = godotenv.Load()

	flag.StringVar(&pathFlag, "db", "", "ledger snapshot database path (defaults to LEDGER_DB_PATH)")
	flag.DurationVar(&intervalFlag, "interval", time.Hour, "time between prune passes")
	flag.BoolVar(&onceFlag, "once", false, "run a single prune pass and exit")
	flag.Parse()

	path := pathFlag
	if path == "" {
		path = os.Getenv("LEDGER_DB_PATH")
	}
	if path == "" {
		path = "ecoquest-ledger.db"
	}

	logger := infra.NewLogger(os.Getenv("APP_ENV")).With().Str("cmd", "sweeper").Logger()

	store, err := ledger.OpenSQLiteStore(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("failed to open snapshot store")
	}
	defer func() { _ = store.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prune := func() {
		today := time.Now().Format(ledger.DayFormat)
		deleted, err := store.PruneBefore(ctx, today)
		if err != nil {
			logger.Error().Err(err).Msg("prune pass failed")
			return
		}
		logger.Info().Int64("deleted", deleted).Str("before", today).Msg("prune pass complete")
	}

	prune()
	if onceFlag {
		return
	}

	ticker := time.NewTicker(intervalFlag)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			prune()
		}
	}
}
