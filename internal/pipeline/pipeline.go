package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"nba_stats/ingestion/internal/metrics"
	"nba_stats/ingestion/internal/models"
	"nba_stats/ingestion/internal/transform"

	"github.com/rs/zerolog/log"
)

// BoxScoreClient is the slice of the API client a worker needs
type BoxScoreClient interface {
	FetchBoxScores(ctx context.Context, date string) (*models.BoxScoresResponse, error)
}

// BatchWriter persists one date's records atomically
type BatchWriter interface {
	WriteBatch(ctx context.Context, recs *transform.Records) error
}

// FailureLog receives dates that failed both passes. Implementations may
// persist them for a later manual run; a nil log means summary-only reporting.
type FailureLog interface {
	RecordPermanentFailures(ctx context.Context, dates []string) error
}

// Summary reports the outcome of a full two-pass run
type Summary struct {
	TotalDates        int
	Succeeded         int
	RetriedDates      int
	PermanentFailures []string
}

// Pipeline drives the fetch -> transform -> allocate -> write flow for a set
// of dates across a bounded pool of workers. Failed dates are replayed once
// through a second pass; dates that fail twice are reported, not retried.
type Pipeline struct {
	client     BoxScoreClient
	writer     BatchWriter
	alloc      *Allocator
	failures   *FailureTracker
	failureLog FailureLog
	workers    int
	completed  atomic.Int64
}

// New creates a pipeline with the given worker count. lastGameID is the
// highest surrogate id already persisted (0 for an empty store); allocation
// continues above it so re-runs never re-issue ids that existing
// player_game/team_game rows reference. failureLog may be nil.
func New(client BoxScoreClient, writer BatchWriter, workers int, lastGameID int64, failureLog FailureLog) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		client:     client,
		writer:     writer,
		alloc:      NewAllocatorFrom(lastGameID),
		failures:   NewFailureTracker(),
		failureLog: failureLog,
		workers:    workers,
	}
}

// Completed returns the number of dates finished so far across both passes
func (p *Pipeline) Completed() int64 {
	return p.completed.Load()
}

// Run processes every date through the main pass, then replays failed dates
// through a second pass with the same worker and rate-limit discipline.
func (p *Pipeline) Run(ctx context.Context, dates []string) Summary {
	summary := Summary{TotalDates: len(dates)}

	p.runPass(ctx, "main", dates)

	failed := p.failures.Dates()
	if len(failed) > 0 {
		summary.RetriedDates = len(failed)
		log.Info().Int("count", len(failed)).Msg("Reprocessing failed dates")

		p.failures.Reset()
		p.runPass(ctx, "retry", failed)
	}

	summary.PermanentFailures = p.failures.Dates()
	summary.Succeeded = summary.TotalDates - len(summary.PermanentFailures)

	if len(summary.PermanentFailures) > 0 {
		log.Warn().
			Strs("dates", summary.PermanentFailures).
			Msg("Dates failed both passes")

		if p.failureLog != nil {
			if err := p.failureLog.RecordPermanentFailures(ctx, summary.PermanentFailures); err != nil {
				log.Error().Err(err).Msg("Failed to record permanent failures")
			}
		}
	}

	return summary
}

// runPass fans the date queue across the worker pool and blocks until every
// date has been acknowledged
func (p *Pipeline) runPass(ctx context.Context, pass string, dates []string) {
	queue := make(chan string, len(dates))
	for _, d := range dates {
		queue <- d
	}
	close(queue)

	metrics.DatesQueued.Set(float64(len(dates)))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for date := range queue {
				if ctx.Err() != nil {
					return
				}

				if err := p.processDate(ctx, date); err != nil {
					log.Error().
						Err(err).
						Str("date", date).
						Str("pass", pass).
						Int("worker", worker).
						Msg("Date processing failed")
					p.failures.Add(date)
					metrics.DatesProcessedTotal.WithLabelValues(pass, "failed").Inc()
				} else {
					metrics.DatesProcessedTotal.WithLabelValues(pass, "ok").Inc()
				}

				done := p.completed.Add(1)
				metrics.DatesQueued.Dec()
				if done%25 == 0 {
					log.Info().
						Int64("completed", done).
						Str("pass", pass).
						Msg("Progress")
				}
			}
		}(i)
	}

	wg.Wait()
}

// processDate runs one date through fetch, transform and batch write. All
// failures are date-scoped; the caller records them and moves on.
func (p *Pipeline) processDate(ctx context.Context, date string) error {
	payload, err := p.client.FetchBoxScores(ctx, date)
	if err != nil {
		return err
	}

	recs := transform.BuildRecords(payload, p.alloc)
	if recs.Empty() {
		return nil
	}

	metrics.GamesIngested.Add(float64(len(recs.Games)))

	return p.writer.WriteBatch(ctx, recs)
}
