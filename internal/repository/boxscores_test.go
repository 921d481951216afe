package repository

import (
	"context"
	"database/sql"
	"testing"

	"nba_stats/ingestion/internal/models"
	"nba_stats/ingestion/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTeams(t *testing.T, db *Database, ctx context.Context, ids ...int) {
	for _, id := range ids {
		team := &models.Team{
			TeamID:   id,
			FullName: sql.NullString{String: "Team", Valid: true},
		}
		require.NoError(t, db.Teams.Insert(ctx, team))
	}
}

func sampleRecords(gameID int64, date string, homeID, visitorID, playerID int) *transform.Records {
	return &transform.Records{
		Players: []*models.Player{{
			PlayerID:  playerID,
			FirstName: "Test",
			LastName:  "Player",
			Position:  models.MissingField,
		}},
		Games: []*models.Game{{
			GameID:           gameID,
			Date:             date,
			Season:           2022,
			HomeTeamScore:    101,
			VisitorTeamScore: 99,
			HomeTeamID:       homeID,
			VisitorTeamID:    visitorID,
		}},
		Stats: []*models.PlayerGameStat{{
			PlayerID: playerID,
			GameID:   gameID,
			Min:      34.5,
			Pts:      20,
		}},
		PlayerTeams: []*models.PlayerTeamAssoc{{
			PlayerID: playerID,
			TeamID:   homeID,
		}},
		TeamGames: []*models.TeamGameAssoc{
			{TeamID: homeID, GameID: gameID},
			{TeamID: visitorID, GameID: gameID},
		},
	}
}

func TestBoxScoreRepository_WriteBatch(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	seedTeams(t, db, ctx, 9001, 9002)

	recs := sampleRecords(900001, "2023-01-15", 9001, 9002, 910001)
	require.NoError(t, db.BoxScores.WriteBatch(ctx, recs))

	games, err := db.BoxScores.CountRows(ctx, "game")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, games, int64(1))

	stats, err := db.BoxScores.CountRows(ctx, "player_game")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats, int64(1))
}

func TestBoxScoreRepository_WriteBatchIsIdempotent(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	seedTeams(t, db, ctx, 9101, 9102)

	recs := sampleRecords(900101, "2023-02-01", 9101, 9102, 910101)
	require.NoError(t, db.BoxScores.WriteBatch(ctx, recs))

	counts := make(map[string]int64)
	for _, table := range []string{"player", "game", "player_game", "player_team", "team_game"} {
		n, err := db.BoxScores.CountRows(ctx, table)
		require.NoError(t, err)
		counts[table] = n
	}

	// Re-running the same date must not add or change any rows
	require.NoError(t, db.BoxScores.WriteBatch(ctx, recs))

	for table, before := range counts {
		after, err := db.BoxScores.CountRows(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, before, after, "table %s changed on re-run", table)
	}
}

func TestBoxScoreRepository_MaxGameIDTracksWrites(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	before, err := db.BoxScores.MaxGameID(ctx)
	require.NoError(t, err)

	seedTeams(t, db, ctx, 9301, 9302)

	next := before + 1
	recs := sampleRecords(next, "2023-04-01", 9301, 9302, 910301)
	require.NoError(t, db.BoxScores.WriteBatch(ctx, recs))

	after, err := db.BoxScores.MaxGameID(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, after, "max game id reflects the latest write")
}

func TestBoxScoreRepository_MissingTeamRollsBackWholeDate(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	playersBefore, err := db.BoxScores.CountRows(ctx, "player")
	require.NoError(t, err)

	// game references a team that was never synced; the FK violation must
	// roll back the player row written earlier in the same batch
	recs := sampleRecords(900201, "2023-03-01", 999999, 999998, 910201)
	err = db.BoxScores.WriteBatch(ctx, recs)
	require.Error(t, err)

	playersAfter, err := db.BoxScores.CountRows(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, playersBefore, playersAfter, "partial batch must not persist")
}

func TestBoxScoreRepository_EmptyBatchIsNoop(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	assert.NoError(t, db.BoxScores.WriteBatch(ctx, &transform.Records{}))
}

func TestTeamRepository_InsertIsConflictIgnore(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		TeamID:       9201,
		Conference:   sql.NullString{String: "East", Valid: true},
		FullName:     sql.NullString{String: "Boston Celtics", Valid: true},
		Abbreviation: sql.NullString{String: "BOS", Valid: true},
	}

	require.NoError(t, db.Teams.Insert(ctx, team))

	// second insert with different attributes is a no-op; first write wins
	changed := &models.Team{
		TeamID:   9201,
		FullName: sql.NullString{String: "Renamed", Valid: true},
	}
	require.NoError(t, db.Teams.Insert(ctx, changed))

	got, err := db.Teams.GetByTeamID(ctx, 9201)
	require.NoError(t, err)
	assert.Equal(t, "Boston Celtics", got.FullName.String)
}

func TestTeamRepository_GetNotFound(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Teams.GetByTeamID(ctx, 123456789)
	assert.Error(t, err, "Should return error for non-existent team")
}
