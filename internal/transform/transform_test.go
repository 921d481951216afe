package transform

import (
	"testing"

	"nba_stats/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int64 }

func (s *seqIDs) Next() int64 {
	s.n++
	return s.n
}

func payloadWithGames(games ...models.BoxScoreGame) *models.BoxScoresResponse {
	return &models.BoxScoresResponse{Data: games}
}

func gameFixture(homeID, visitorID int, playersPerSide int) models.BoxScoreGame {
	mkPlayers := func(base int) []models.StatLine {
		lines := make([]models.StatLine, playersPerSide)
		for i := range lines {
			lines[i] = models.StatLine{
				Player: models.PlayerInput{ID: base + i, FirstName: "P", LastName: "Q"},
			}
		}
		return lines
	}

	return models.BoxScoreGame{
		Date:             "2023-01-15",
		Season:           2022,
		HomeTeamScore:    110,
		VisitorTeamScore: 102,
		HomeTeam:         models.BoxScoreTeam{ID: homeID, Players: mkPlayers(homeID * 100)},
		VisitorTeam:      models.BoxScoreTeam{ID: visitorID, Players: mkPlayers(visitorID * 100)},
	}
}

func TestBuildRecords_Counts(t *testing.T) {
	payload := payloadWithGames(
		gameFixture(1, 2, 3),
		gameFixture(3, 4, 3),
	)

	recs := BuildRecords(payload, &seqIDs{})

	assert.Len(t, recs.Games, 2)
	assert.Len(t, recs.Players, 12, "3 players per side, 2 sides, 2 games")
	assert.Len(t, recs.Stats, 12)
	assert.Len(t, recs.PlayerTeams, 12)
	assert.Len(t, recs.TeamGames, 4, "2 teams per game")
	assert.False(t, recs.Empty())
}

func TestBuildRecords_IDsFollowPayloadOrder(t *testing.T) {
	payload := payloadWithGames(
		gameFixture(1, 2, 1),
		gameFixture(3, 4, 1),
		gameFixture(5, 6, 1),
	)

	recs := BuildRecords(payload, &seqIDs{})

	require.Len(t, recs.Games, 3)
	assert.Equal(t, int64(1), recs.Games[0].GameID)
	assert.Equal(t, int64(2), recs.Games[1].GameID)
	assert.Equal(t, int64(3), recs.Games[2].GameID)

	// stats and associations reference the game they came from
	assert.Equal(t, int64(1), recs.Stats[0].GameID)
	assert.Equal(t, int64(3), recs.Stats[4].GameID)
	assert.Equal(t, int64(1), recs.TeamGames[0].GameID)
	assert.Equal(t, int64(3), recs.TeamGames[5].GameID)
}

func TestBuildRecords_GameFields(t *testing.T) {
	payload := payloadWithGames(gameFixture(7, 9, 0))

	recs := BuildRecords(payload, &seqIDs{})

	require.Len(t, recs.Games, 1)
	g := recs.Games[0]
	assert.Equal(t, "2023-01-15", g.Date)
	assert.Equal(t, 2022, g.Season)
	assert.Equal(t, 110, g.HomeTeamScore)
	assert.Equal(t, 102, g.VisitorTeamScore)
	assert.Equal(t, 7, g.HomeTeamID)
	assert.Equal(t, 9, g.VisitorTeamID)
}

func TestBuildRecords_PlayerTeamSides(t *testing.T) {
	payload := payloadWithGames(gameFixture(1, 2, 2))

	recs := BuildRecords(payload, &seqIDs{})

	require.Len(t, recs.PlayerTeams, 4)
	assert.Equal(t, 1, recs.PlayerTeams[0].TeamID, "home players map to home team")
	assert.Equal(t, 1, recs.PlayerTeams[1].TeamID)
	assert.Equal(t, 2, recs.PlayerTeams[2].TeamID, "visitor players map to visitor team")
	assert.Equal(t, 2, recs.PlayerTeams[3].TeamID)
}

func TestBuildRecords_EmptyPayload(t *testing.T) {
	recs := BuildRecords(&models.BoxScoresResponse{}, &seqIDs{})

	assert.True(t, recs.Empty())
}
