package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Table DDL mirrors the box_scores schema: team and player are write-once
// reference tables, game carries the pipeline-allocated surrogate key, and
// the stat/association tables use composite primary keys.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS team (
		team_id INT PRIMARY KEY,
		conference VARCHAR(10),
		division VARCHAR(40),
		city VARCHAR(50),
		name VARCHAR(50),
		full_name VARCHAR(100),
		abbreviation VARCHAR(10)
	)`,
	`CREATE TABLE IF NOT EXISTS player (
		player_id INT PRIMARY KEY,
		first_name VARCHAR(50),
		last_name VARCHAR(50),
		position VARCHAR(10),
		height VARCHAR(10),
		weight VARCHAR(10),
		jersey_number VARCHAR(10),
		college VARCHAR(50),
		country VARCHAR(50),
		draft_year INT,
		draft_round INT,
		draft_number INT
	)`,
	`CREATE TABLE IF NOT EXISTS game (
		game_id BIGINT PRIMARY KEY,
		date DATE,
		season INT,
		home_team_score INT,
		visitor_team_score INT,
		home_team_id INT REFERENCES team (team_id),
		visitor_team_id INT REFERENCES team (team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_game (
		player_id INT REFERENCES player (player_id),
		game_id BIGINT REFERENCES game (game_id),
		min FLOAT,
		fgm INT,
		fga INT,
		fg_pct FLOAT,
		fg3m INT,
		fg3a INT,
		fg3_pct FLOAT,
		ftm INT,
		fta INT,
		ft_pct FLOAT,
		oreb INT,
		dreb INT,
		reb INT,
		ast INT,
		stl INT,
		blk INT,
		turnover INT,
		pf INT,
		pts INT,
		PRIMARY KEY (player_id, game_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_team (
		player_id INT REFERENCES player (player_id),
		team_id INT REFERENCES team (team_id),
		PRIMARY KEY (player_id, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS team_game (
		team_id INT REFERENCES team (team_id),
		game_id BIGINT REFERENCES game (game_id),
		PRIMARY KEY (team_id, game_id)
	)`,
}

// EnsureSchema creates the six tables if they do not exist yet, so a fresh
// database is usable without a separate migration step
func (db *Database) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Info().Msg("Database schema ensured")
	return nil
}
