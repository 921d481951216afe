package models

// MissingField is the sentinel stored when the API returns an empty
// biographical string. It keeps "not provided" distinguishable from a
// genuinely empty value downstream.
const MissingField = "missing"

// Player represents a player row keyed by the API's player id.
// Rows are written once on first sighting and never updated.
type Player struct {
	PlayerID     int    `db:"player_id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Position     string `db:"position"`
	Height       string `db:"height"`
	Weight       string `db:"weight"`
	JerseyNumber string `db:"jersey_number"`
	College      string `db:"college"`
	Country      string `db:"country"`
	DraftYear    int    `db:"draft_year"`
	DraftRound   int    `db:"draft_round"`
	DraftNumber  int    `db:"draft_number"`
}

// PlayerInput is the nested player object inside a box-score stat line
type PlayerInput struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"position"`
	Height       string `json:"height"`
	Weight       string `json:"weight"`
	JerseyNumber string `json:"jersey_number"`
	College      string `json:"college"`
	Country      string `json:"country"`
	DraftYear    *int   `json:"draft_year"`
	DraftRound   *int   `json:"draft_round"`
	DraftNumber  *int   `json:"draft_number"`
}

// ToPlayer converts PlayerInput (from API) to Player model, substituting
// the missing sentinel for empty strings and zero for absent draft fields.
func (pi *PlayerInput) ToPlayer() *Player {
	return &Player{
		PlayerID:     pi.ID,
		FirstName:    emptyToMissing(pi.FirstName),
		LastName:     emptyToMissing(pi.LastName),
		Position:     emptyToMissing(pi.Position),
		Height:       emptyToMissing(pi.Height),
		Weight:       emptyToMissing(pi.Weight),
		JerseyNumber: emptyToMissing(pi.JerseyNumber),
		College:      emptyToMissing(pi.College),
		Country:      emptyToMissing(pi.Country),
		DraftYear:    intOrZero(pi.DraftYear),
		DraftRound:   intOrZero(pi.DraftRound),
		DraftNumber:  intOrZero(pi.DraftNumber),
	}
}

func emptyToMissing(s string) string {
	if s == "" {
		return MissingField
	}
	return s
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
