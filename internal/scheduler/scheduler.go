package scheduler

import (
	"context"
	"fmt"
	"time"

	"nba_stats/ingestion/internal/cache"
	"nba_stats/ingestion/internal/client"
	"nba_stats/ingestion/internal/config"
	"nba_stats/ingestion/internal/pipeline"
	"nba_stats/ingestion/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler keeps the store current after a backfill by ingesting the
// previous day's box scores on a cron schedule
type Scheduler struct {
	cfg    *config.Config
	client *client.Client
	db     *repository.Database
	cache  *cache.RedisCache
	cron   *cron.Cron
}

// NewScheduler creates a new scheduler instance. cache may be nil.
func NewScheduler(cfg *config.Config, c *client.Client, db *repository.Database, rc *cache.RedisCache) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		client: c,
		db:     db,
		cache:  rc,
		cron:   cron.New(),
	}
}

// Start registers the daily ingest job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.DailyIngestCron, func() {
		if err := s.ingestYesterday(ctx); err != nil {
			log.Error().Err(err).Msg("Daily ingest failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule daily ingest: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.DailyIngestCron).
		Msg("Daily ingest scheduled")

	return nil
}

// Stop stops the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

// ingestYesterday runs the previous day's date through the same two-pass
// pipeline the backfill uses
func (s *Scheduler) ingestYesterday(ctx context.Context) error {
	date := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	log.Info().Str("date", date).Msg("Running daily ingest")

	var failureLog pipeline.FailureLog
	if s.cache != nil {
		failureLog = s.cache
	}

	// Continue above the ids already persisted by earlier runs and backfills
	lastGameID, err := s.db.BoxScores.MaxGameID(ctx)
	if err != nil {
		return err
	}

	p := pipeline.New(s.client, s.db.BoxScores, 1, lastGameID, failureLog)
	summary := p.Run(ctx, []string{date})

	if len(summary.PermanentFailures) > 0 {
		return fmt.Errorf("daily ingest failed for %s", date)
	}

	log.Info().Str("date", date).Msg("Daily ingest complete")
	return nil
}
