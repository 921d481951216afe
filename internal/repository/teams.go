package repository

import (
	"context"
	"fmt"

	"nba_stats/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TeamRepository handles team database operations
type TeamRepository struct {
	db *Database
}

// Insert writes a team with conflict-ignore semantics: a team_id that
// already exists is a no-op, never an error
func (r *TeamRepository) Insert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO team (
			team_id, conference, division, city, name, full_name, abbreviation
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (team_id) DO NOTHING
	`

	_, err := r.db.Pool.Exec(
		ctx, query,
		team.TeamID, team.Conference, team.Division, team.City,
		team.Name, team.FullName, team.Abbreviation,
	)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}

	log.Debug().
		Int("team_id", team.TeamID).
		Str("full_name", team.FullName.String).
		Msg("Team inserted")

	return nil
}

// InsertAll writes the full team list in one transaction
func (r *TeamRepository) InsertAll(ctx context.Context, teams []*models.Team) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin team transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO team (
			team_id, conference, division, city, name, full_name, abbreviation
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (team_id) DO NOTHING
	`

	for _, team := range teams {
		if _, err := tx.Exec(
			ctx, query,
			team.TeamID, team.Conference, team.Division, team.City,
			team.Name, team.FullName, team.Abbreviation,
		); err != nil {
			return fmt.Errorf("failed to insert team %d: %w", team.TeamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team transaction: %w", err)
	}

	log.Info().Int("count", len(teams)).Msg("Teams saved to database")
	return nil
}

// GetByTeamID retrieves a team by its API team id
func (r *TeamRepository) GetByTeamID(ctx context.Context, teamID int) (*models.Team, error) {
	query := `
		SELECT team_id, conference, division, city, name, full_name, abbreviation
		FROM team
		WHERE team_id = $1
	`

	var team models.Team
	err := r.db.Pool.QueryRow(ctx, query, teamID).Scan(
		&team.TeamID, &team.Conference, &team.Division, &team.City,
		&team.Name, &team.FullName, &team.Abbreviation,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team not found: team_id=%d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// List retrieves all teams
func (r *TeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT team_id, conference, division, city, name, full_name, abbreviation
		FROM team
		ORDER BY full_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.TeamID, &team.Conference, &team.Division, &team.City,
			&team.Name, &team.FullName, &team.Abbreviation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}
