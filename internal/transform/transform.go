package transform

import (
	"nba_stats/ingestion/internal/models"
)

// IDSource hands out surrogate game ids. Implementations must be safe for
// concurrent use; the pipeline shares one allocator across all workers.
type IDSource interface {
	Next() int64
}

// Records holds the five collections produced from one date's payload.
// They are written together as a single batch.
type Records struct {
	Players     []*models.Player
	Games       []*models.Game
	Stats       []*models.PlayerGameStat
	PlayerTeams []*models.PlayerTeamAssoc
	TeamGames   []*models.TeamGameAssoc
}

// Empty reports whether the payload produced nothing to persist
func (r *Records) Empty() bool {
	return len(r.Players) == 0 && len(r.Games) == 0 && len(r.Stats) == 0 &&
		len(r.PlayerTeams) == 0 && len(r.TeamGames) == 0
}

// BuildRecords maps one date's box-score payload into normalized records.
// Ids are drawn from the allocator in the order games appear in the payload,
// one per game, so ids within a date follow payload order even though dates
// interleave arbitrarily across workers.
func BuildRecords(payload *models.BoxScoresResponse, ids IDSource) *Records {
	recs := &Records{}

	for i := range payload.Data {
		game := &payload.Data[i]
		gameID := ids.Next()

		recs.Games = append(recs.Games, &models.Game{
			GameID:           gameID,
			Date:             game.Date,
			Season:           game.Season,
			HomeTeamScore:    game.HomeTeamScore,
			VisitorTeamScore: game.VisitorTeamScore,
			HomeTeamID:       game.HomeTeam.ID,
			VisitorTeamID:    game.VisitorTeam.ID,
		})

		for _, side := range []*models.BoxScoreTeam{&game.HomeTeam, &game.VisitorTeam} {
			for j := range side.Players {
				line := &side.Players[j]

				recs.Players = append(recs.Players, line.Player.ToPlayer())
				recs.Stats = append(recs.Stats, line.ToStat(gameID))
				recs.PlayerTeams = append(recs.PlayerTeams, &models.PlayerTeamAssoc{
					PlayerID: line.Player.ID,
					TeamID:   side.ID,
				})
			}

			recs.TeamGames = append(recs.TeamGames, &models.TeamGameAssoc{
				TeamID: side.ID,
				GameID: gameID,
			})
		}
	}

	return recs
}
