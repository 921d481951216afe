package pipeline

import (
	"context"
	"errors"
	"testing"

	"nba_stats/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
)

type fakeSchedule struct {
	// pages[season] is the ordered list of pages for that season
	pages map[int][]models.GamesPage
	// failSeason aborts that season's pagination on the given page index
	failSeason map[int]int
	calls      int
}

func page(dates []string, next *int64) models.GamesPage {
	var games []models.ScheduledGame
	for _, d := range dates {
		games = append(games, models.ScheduledGame{Date: d})
	}
	return models.GamesPage{Data: games, Meta: models.PageMeta{NextCursor: next}}
}

func cursor(v int64) *int64 { return &v }

func (f *fakeSchedule) FetchGamesPage(_ context.Context, season, _ int, cur *int64) (*models.GamesPage, error) {
	f.calls++

	idx := 0
	if cur != nil {
		idx = int(*cur)
	}

	if failAt, ok := f.failSeason[season]; ok && idx == failAt {
		return nil, errors.New("boom")
	}

	pages := f.pages[season]
	if idx >= len(pages) {
		return &models.GamesPage{}, nil
	}
	p := pages[idx]
	return &p, nil
}

func TestEnumerateDates_PaginatesAndDedupes(t *testing.T) {
	f := &fakeSchedule{
		pages: map[int][]models.GamesPage{
			2022: {
				page([]string{"2022-10-19", "2022-10-18"}, cursor(1)),
				page([]string{"2022-10-19", "2022-10-20"}, nil),
			},
		},
	}

	dates := EnumerateDates(context.Background(), f, 2022, 2022, 100)

	assert.Equal(t, []string{"2022-10-18", "2022-10-19", "2022-10-20"}, dates)
	assert.Equal(t, 2, f.calls, "stops when next_cursor is absent")
}

func TestEnumerateDates_MultipleSeasons(t *testing.T) {
	f := &fakeSchedule{
		pages: map[int][]models.GamesPage{
			2021: {page([]string{"2021-12-25"}, nil)},
			2022: {page([]string{"2022-12-25"}, nil)},
		},
	}

	dates := EnumerateDates(context.Background(), f, 2021, 2022, 100)

	assert.Equal(t, []string{"2021-12-25", "2022-12-25"}, dates)
}

func TestEnumerateDates_SeasonFailureIsIsolated(t *testing.T) {
	f := &fakeSchedule{
		pages: map[int][]models.GamesPage{
			2021: {page([]string{"2021-11-01"}, nil)},
			2022: {
				page([]string{"2022-11-01"}, cursor(1)),
				page([]string{"2022-11-02"}, nil),
			},
		},
		failSeason: map[int]int{2022: 1},
	}

	dates := EnumerateDates(context.Background(), f, 2021, 2022, 100)

	// season 2022 aborts on its second page, but 2021 and the first 2022
	// page survive
	assert.Equal(t, []string{"2021-11-01", "2022-11-01"}, dates)
}

func TestEnumerateDates_NormalizesTimestamps(t *testing.T) {
	f := &fakeSchedule{
		pages: map[int][]models.GamesPage{
			2022: {page([]string{"2022-10-18T00:00:00.000Z", "2022-10-18"}, nil)},
		},
	}

	dates := EnumerateDates(context.Background(), f, 2022, 2022, 100)

	assert.Equal(t, []string{"2022-10-18"}, dates, "timestamp and plain forms collapse to one day")
}
