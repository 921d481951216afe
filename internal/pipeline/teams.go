package pipeline

import (
	"context"
	"fmt"
	"time"

	"nba_stats/ingestion/internal/cache"
	"nba_stats/ingestion/internal/models"
	"nba_stats/ingestion/internal/repository"

	"github.com/rs/zerolog/log"
)

// TeamClient is the slice of the API client team sync needs
type TeamClient interface {
	FetchTeams(ctx context.Context) ([]models.TeamInput, error)
}

// SyncTeams fetches the full team list and writes it with conflict-ignore
// semantics before any date is processed, so game rows never reference a
// missing team. The cache is optional; when present the list is cached and
// a warm cache skips the API call entirely.
func SyncTeams(ctx context.Context, c TeamClient, db *repository.Database, rc *cache.RedisCache, ttl time.Duration) error {
	if rc != nil {
		cached, err := rc.GetCachedTeams(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Team cache read failed, fetching from API")
		} else if len(cached) > 0 {
			log.Info().Int("count", len(cached)).Msg("Teams loaded from cache")
			return db.Teams.InsertAll(ctx, cached)
		}
	}

	inputs, err := c.FetchTeams(ctx)
	if err != nil {
		return fmt.Errorf("team sync failed: %w", err)
	}

	teams := make([]*models.Team, 0, len(inputs))
	for i := range inputs {
		teams = append(teams, inputs[i].ToTeam())
	}

	if err := db.Teams.InsertAll(ctx, teams); err != nil {
		return err
	}

	if rc != nil {
		if err := rc.CacheTeams(ctx, teams, ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache teams")
		}
	}

	return nil
}
