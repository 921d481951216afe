package models

import "database/sql"

// Team represents an NBA franchise as returned by the teams endpoint
type Team struct {
	TeamID       int            `db:"team_id"`
	Conference   sql.NullString `db:"conference"`
	Division     sql.NullString `db:"division"`
	City         sql.NullString `db:"city"`
	Name         sql.NullString `db:"name"`
	FullName     sql.NullString `db:"full_name"`
	Abbreviation sql.NullString `db:"abbreviation"`
}

// TeamInput is the wire shape of a team object from the API
type TeamInput struct {
	ID           int    `json:"id"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	City         string `json:"city"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

// ToTeam converts TeamInput (from API) to Team model
func (ti *TeamInput) ToTeam() *Team {
	team := &Team{
		TeamID: ti.ID,
	}

	if ti.Conference != "" {
		team.Conference = sql.NullString{String: ti.Conference, Valid: true}
	}
	if ti.Division != "" {
		team.Division = sql.NullString{String: ti.Division, Valid: true}
	}
	if ti.City != "" {
		team.City = sql.NullString{String: ti.City, Valid: true}
	}
	if ti.Name != "" {
		team.Name = sql.NullString{String: ti.Name, Valid: true}
	}
	if ti.FullName != "" {
		team.FullName = sql.NullString{String: ti.FullName, Valid: true}
	}
	if ti.Abbreviation != "" {
		team.Abbreviation = sql.NullString{String: ti.Abbreviation, Valid: true}
	}

	return team
}

// TeamsResponse is the envelope of the teams endpoint
type TeamsResponse struct {
	Data []TeamInput `json:"data"`
}
