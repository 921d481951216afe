package models

// Game represents one played game. GameID is a surrogate key allocated by
// the pipeline, not an identifier from the API.
type Game struct {
	GameID           int64  `db:"game_id"`
	Date             string `db:"date"`
	Season           int    `db:"season"`
	HomeTeamScore    int    `db:"home_team_score"`
	VisitorTeamScore int    `db:"visitor_team_score"`
	HomeTeamID       int    `db:"home_team_id"`
	VisitorTeamID    int    `db:"visitor_team_id"`
}

// PlayerTeamAssoc records which team a player represented in some game
type PlayerTeamAssoc struct {
	PlayerID int `db:"player_id"`
	TeamID   int `db:"team_id"`
}

// TeamGameAssoc records a team's participation in a game
type TeamGameAssoc struct {
	TeamID int   `db:"team_id"`
	GameID int64 `db:"game_id"`
}
