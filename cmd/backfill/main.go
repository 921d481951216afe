// Command backfill ingests historical box scores for a range of seasons,
// one calendar date at a time, across a bounded pool of workers. Every date
// that fails the main pass is retried once; dates failing both passes are
// reported in the final summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"nba_stats/ingestion/internal/cache"
	"nba_stats/ingestion/internal/client"
	"nba_stats/ingestion/internal/config"
	"nba_stats/ingestion/internal/limiter"
	"nba_stats/ingestion/internal/pipeline"
	"nba_stats/ingestion/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()
	cfg := config.MustLoad()

	startYear := flag.Int("start_year", 0, "The start year of the date range (required)")
	endYear := flag.Int("end_year", 0, "The end year of the date range (required)")
	numWorkers := flag.Int("num_workers", cfg.NumWorkers, "The number of concurrent workers")
	flag.Parse()

	if *startYear == 0 || *endYear == 0 {
		fmt.Fprintln(os.Stderr, "both --start_year and --end_year are required")
		flag.Usage()
		os.Exit(2)
	}
	if *endYear < *startYear {
		fmt.Fprintln(os.Stderr, "--end_year must not precede --start_year")
		os.Exit(2)
	}

	ctx := context.Background()

	// Setup failures are fatal before any worker starts
	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	rl := limiter.NewRateLimiter(cfg.RequestsPerMinute)
	apiClient := client.NewClient(
		cfg.BallDontLieBaseURL,
		cfg.BallDontLieAPIKey,
		cfg.BallDontLieTimeout,
		rl,
	)

	if cfg.TeamSyncEnabled {
		ttl := time.Duration(cfg.TeamCacheTTLSecs) * time.Second
		if err := pipeline.SyncTeams(ctx, apiClient, db, redisCache, ttl); err != nil {
			log.Fatal().Err(err).Msg("Team sync failed")
		}
	}

	fmt.Println("Getting dates...")
	dates := pipeline.EnumerateDates(ctx, apiClient, *startYear, *endYear, cfg.SchedulePerPage)
	if len(dates) == 0 {
		fmt.Println("No dates to process.")
		return
	}
	fmt.Printf("Processing %d dates with %d workers\n", len(dates), *numWorkers)

	var failureLog pipeline.FailureLog
	if redisCache != nil {
		failureLog = redisCache
	}

	// Continue above the ids persisted by earlier backfills so reference
	// rows never attach to the wrong game
	lastGameID, err := db.BoxScores.MaxGameID(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read max game id")
	}

	p := pipeline.New(apiClient, db.BoxScores, *numWorkers, lastGameID, failureLog)
	summary := p.Run(ctx, dates)

	fmt.Println("------------------------------------")
	fmt.Printf("Dates processed: %d\n", summary.TotalDates)
	fmt.Printf("Succeeded:       %d\n", summary.Succeeded)
	fmt.Printf("Retried:         %d\n", summary.RetriedDates)
	if len(summary.PermanentFailures) > 0 {
		fmt.Printf("Failed twice:    %d %v\n", len(summary.PermanentFailures), summary.PermanentFailures)
	}
	for _, table := range []string{"game", "player", "player_game"} {
		if n, err := db.BoxScores.CountRows(ctx, table); err == nil {
			fmt.Printf("%-16s %d rows\n", table+":", n)
		}
	}
	fmt.Println("Done!")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}
