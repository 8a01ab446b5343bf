package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"ecoquest/internal/domain"
	"ecoquest/internal/infra"
	"ecoquest/internal/sqlinline"
)

func main() {
	var (
		userFlag  string
		deltaFlag int
		showFlag  bool
	)

	flag.StringVar(&userFlag, "user", "", "user identifier to adjust")
	flag.IntVar(&deltaFlag, "delta", 0, "signed points delta to apply (total floors at 0)")
	flag.BoolVar(&showFlag, "show", false, "print the current record without changing it")
	flag.Parse()

	identifier := strings.TrimSpace(userFlag)
	if identifier == "" {
		exitWithError(errors.New("-user is required"))
	}
	if identifier == domain.GuestIdentifier {
		exitWithError(errors.New("guest points are never stored server-side"))
	}
	if !showFlag && deltaFlag == 0 {
		exitWithError(errors.New("provide -delta or -show"))
	}

	_ = godotenv.Load()
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "points").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	query := sqlinline.QSelectUserByIdentifier
	args := []any{identifier}
	if !showFlag {
		query = sqlinline.QApplyPointsDelta
		args = []any{identifier, deltaFlag}
	}

	row := runner.QueryRow(ctx, query, args...)
	var (
		id          string
		points      int
		counts      []byte
		limits      []byte
		lastReset   string
		welcomeSeen bool
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &points, &counts, &limits, &lastReset, &welcomeSeen, &createdAt, &updatedAt); err != nil {
		exitWithError(fmt.Errorf("failed to load user %s: %w", identifier, err))
	}

	fmt.Printf("user=%s points=%d badges=%s\n", id, points, strings.Join(domain.BadgesForPoints(points), ","))
	if lastReset != "" {
		fmt.Printf("last_reset_day=%s daily_counts=%s\n", lastReset, string(counts))
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
