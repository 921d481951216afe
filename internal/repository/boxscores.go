package repository

import (
	"context"
	"fmt"
	"time"

	"nba_stats/ingestion/internal/metrics"
	"nba_stats/ingestion/internal/transform"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// BoxScoreRepository persists one date's transformed records as a single
// atomic batch. Every insert uses conflict-ignore semantics on its natural
// key, so re-running a date only adds rows that are still missing.
type BoxScoreRepository struct {
	db *Database
}

const (
	playerInsertQuery = `
		INSERT INTO player (
			player_id, first_name, last_name, position, height, weight,
			jersey_number, college, country, draft_year, draft_round, draft_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (player_id) DO NOTHING
	`

	gameInsertQuery = `
		INSERT INTO game (
			game_id, date, season, home_team_score, visitor_team_score,
			home_team_id, visitor_team_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (game_id) DO NOTHING
	`

	playerGameInsertQuery = `
		INSERT INTO player_game (
			player_id, game_id, min, fgm, fga, fg_pct, fg3m, fg3a, fg3_pct,
			ftm, fta, ft_pct, oreb, dreb, reb, ast, stl, blk, turnover, pf, pts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (player_id, game_id) DO NOTHING
	`

	playerTeamInsertQuery = `
		INSERT INTO player_team (player_id, team_id)
		VALUES ($1, $2)
		ON CONFLICT (player_id, team_id) DO NOTHING
	`

	teamGameInsertQuery = `
		INSERT INTO team_game (team_id, game_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, game_id) DO NOTHING
	`
)

// WriteBatch persists all five record collections for one date in a single
// transaction. Any failure rolls back the whole date; nothing is partially
// written. Insertion order satisfies foreign keys within the transaction:
// players and games land before the rows that reference them.
func (r *BoxScoreRepository) WriteBatch(ctx context.Context, recs *transform.Records) error {
	if recs.Empty() {
		return nil
	}

	start := time.Now()

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		metrics.BatchWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}

	for _, p := range recs.Players {
		batch.Queue(playerInsertQuery,
			p.PlayerID, p.FirstName, p.LastName, p.Position, p.Height, p.Weight,
			p.JerseyNumber, p.College, p.Country, p.DraftYear, p.DraftRound, p.DraftNumber,
		)
	}
	for _, g := range recs.Games {
		batch.Queue(gameInsertQuery,
			g.GameID, g.Date, g.Season, g.HomeTeamScore, g.VisitorTeamScore,
			g.HomeTeamID, g.VisitorTeamID,
		)
	}
	for _, s := range recs.Stats {
		batch.Queue(playerGameInsertQuery,
			s.PlayerID, s.GameID, s.Min, s.Fgm, s.Fga, s.FgPct, s.Fg3m, s.Fg3a,
			s.Fg3Pct, s.Ftm, s.Fta, s.FtPct, s.Oreb, s.Dreb, s.Reb, s.Ast,
			s.Stl, s.Blk, s.Turnover, s.Pf, s.Pts,
		)
	}
	for _, pt := range recs.PlayerTeams {
		batch.Queue(playerTeamInsertQuery, pt.PlayerID, pt.TeamID)
	}
	for _, tg := range recs.TeamGames {
		batch.Queue(teamGameInsertQuery, tg.TeamID, tg.GameID)
	}

	br := tx.SendBatch(ctx, batch)
	var execErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && execErr == nil {
			execErr = err
		}
	}
	if err := br.Close(); err != nil && execErr == nil {
		execErr = err
	}
	if execErr != nil {
		metrics.BatchWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("batch insert failed: %w", execErr)
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.BatchWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	metrics.BatchWritesTotal.WithLabelValues("ok").Inc()
	metrics.BatchWriteDuration.Observe(time.Since(start).Seconds())

	log.Debug().
		Int("players", len(recs.Players)).
		Int("games", len(recs.Games)).
		Int("stats", len(recs.Stats)).
		Msg("Batch written")

	return nil
}

// MaxGameID returns the highest surrogate game id already persisted, or 0
// for an empty store. New runs seed their allocator above this value so ids
// never collide with rows written by earlier runs.
func (r *BoxScoreRepository) MaxGameID(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.Pool.QueryRow(ctx, "SELECT COALESCE(MAX(game_id), 0) FROM game").Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to read max game id: %w", err)
	}

	return max, nil
}

// CountRows returns the row count of one of the six tables, used by the
// operator summary and by idempotence checks
func (r *BoxScoreRepository) CountRows(ctx context.Context, table string) (int64, error) {
	allowed := map[string]bool{
		"team": true, "player": true, "game": true,
		"player_game": true, "player_team": true, "team_game": true,
	}
	if !allowed[table] {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var count int64
	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", table, err)
	}

	return count, nil
}
