package pipeline

import (
	"context"
	"sort"
	"strings"

	"nba_stats/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// ScheduleClient is the slice of the API client the enumerator needs
type ScheduleClient interface {
	FetchGamesPage(ctx context.Context, season, perPage int, cursor *int64) (*models.GamesPage, error)
}

// EnumerateDates walks each season's cursor-paginated schedule and returns
// the sorted set of distinct dates with at least one played game. An error
// aborts only that season's pagination; dates already collected from other
// seasons are preserved.
func EnumerateDates(ctx context.Context, c ScheduleClient, startYear, endYear, perPage int) []string {
	seen := make(map[string]bool)

	for season := startYear; season <= endYear; season++ {
		var cursor *int64
		pages := 0

		for {
			page, err := c.FetchGamesPage(ctx, season, perPage, cursor)
			if err != nil {
				log.Error().
					Err(err).
					Int("season", season).
					Int("pages_fetched", pages).
					Msg("Season pagination aborted")
				break
			}
			pages++

			for _, game := range page.Data {
				seen[normalizeDate(game.Date)] = true
			}

			if page.Meta.NextCursor == nil {
				break
			}
			cursor = page.Meta.NextCursor
		}

		log.Info().
			Int("season", season).
			Int("pages", pages).
			Int("distinct_dates", len(seen)).
			Msg("Season schedule enumerated")
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		if d != "" {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	return dates
}

// normalizeDate trims a timestamp suffix so both "2024-01-26" and
// "2024-01-26T00:00:00.000Z" become the same calendar day
func normalizeDate(d string) string {
	if i := strings.IndexByte(d, 'T'); i >= 0 {
		return d[:i]
	}
	return d
}
