package models

import (
	"strconv"
	"strings"
)

// BoxScoresResponse is the envelope of the box_scores endpoint for one date
type BoxScoresResponse struct {
	Data []BoxScoreGame `json:"data"`
}

// BoxScoreGame is one game's box score with nested team line-ups
type BoxScoreGame struct {
	Date             string       `json:"date"`
	Season           int          `json:"season"`
	HomeTeamScore    int          `json:"home_team_score"`
	VisitorTeamScore int          `json:"visitor_team_score"`
	HomeTeam         BoxScoreTeam `json:"home_team"`
	VisitorTeam      BoxScoreTeam `json:"visitor_team"`
}

// BoxScoreTeam is a team's side of a box score
type BoxScoreTeam struct {
	ID      int        `json:"id"`
	Players []StatLine `json:"players"`
}

// StatLine is a single player's line in a box score. Numeric fields are
// pointers because the API emits null for players without a recorded value.
type StatLine struct {
	Player   PlayerInput `json:"player"`
	Min      *string     `json:"min"`
	Fgm      *int        `json:"fgm"`
	Fga      *int        `json:"fga"`
	FgPct    *float64    `json:"fg_pct"`
	Fg3m     *int        `json:"fg3m"`
	Fg3a     *int        `json:"fg3a"`
	Fg3Pct   *float64    `json:"fg3_pct"`
	Ftm      *int        `json:"ftm"`
	Fta      *int        `json:"fta"`
	FtPct    *float64    `json:"ft_pct"`
	Oreb     *int        `json:"oreb"`
	Dreb     *int        `json:"dreb"`
	Reb      *int        `json:"reb"`
	Ast      *int        `json:"ast"`
	Stl      *int        `json:"stl"`
	Blk      *int        `json:"blk"`
	Turnover *int        `json:"turnover"`
	Pf       *int        `json:"pf"`
	Pts      *int        `json:"pts"`
}

// PlayerGameStat is the per-player, per-game stat row keyed on
// (player_id, game_id). Absent source values are stored as zero.
type PlayerGameStat struct {
	PlayerID int     `db:"player_id"`
	GameID   int64   `db:"game_id"`
	Min      float64 `db:"min"`
	Fgm      int     `db:"fgm"`
	Fga      int     `db:"fga"`
	FgPct    float64 `db:"fg_pct"`
	Fg3m     int     `db:"fg3m"`
	Fg3a     int     `db:"fg3a"`
	Fg3Pct   float64 `db:"fg3_pct"`
	Ftm      int     `db:"ftm"`
	Fta      int     `db:"fta"`
	FtPct    float64 `db:"ft_pct"`
	Oreb     int     `db:"oreb"`
	Dreb     int     `db:"dreb"`
	Reb      int     `db:"reb"`
	Ast      int     `db:"ast"`
	Stl      int     `db:"stl"`
	Blk      int     `db:"blk"`
	Turnover int     `db:"turnover"`
	Pf       int     `db:"pf"`
	Pts      int     `db:"pts"`
}

// ToStat converts a StatLine into a PlayerGameStat for the given game
func (sl *StatLine) ToStat(gameID int64) *PlayerGameStat {
	return &PlayerGameStat{
		PlayerID: sl.Player.ID,
		GameID:   gameID,
		Min:      ParseMinutes(sl.Min),
		Fgm:      intOrZero(sl.Fgm),
		Fga:      intOrZero(sl.Fga),
		FgPct:    floatOrZero(sl.FgPct),
		Fg3m:     intOrZero(sl.Fg3m),
		Fg3a:     intOrZero(sl.Fg3a),
		Fg3Pct:   floatOrZero(sl.Fg3Pct),
		Ftm:      intOrZero(sl.Ftm),
		Fta:      intOrZero(sl.Fta),
		FtPct:    floatOrZero(sl.FtPct),
		Oreb:     intOrZero(sl.Oreb),
		Dreb:     intOrZero(sl.Dreb),
		Reb:      intOrZero(sl.Reb),
		Ast:      intOrZero(sl.Ast),
		Stl:      intOrZero(sl.Stl),
		Blk:      intOrZero(sl.Blk),
		Turnover: intOrZero(sl.Turnover),
		Pf:       intOrZero(sl.Pf),
		Pts:      intOrZero(sl.Pts),
	}
}

// ParseMinutes converts the API's "MM:SS" minutes string to fractional
// minutes. Nil or malformed input converts to 0, which makes "did not play"
// indistinguishable from zero minutes played.
func ParseMinutes(min *string) float64 {
	if min == nil {
		return 0
	}

	parts := strings.Split(*min, ":")
	if len(parts) != 2 {
		return 0
	}

	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return float64(mins) + float64(secs)/60
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
