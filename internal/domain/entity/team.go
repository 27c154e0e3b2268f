package entity

import "time"

// Team cuadrilla de instalación de una empresa.
type Team struct {
	ID           string
	EnterpriseID string
	Name         string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TeamMember asociación (team_id, user_id).
type TeamMember struct {
	TeamID    string
	UserID    string
	CreatedAt time.Time
}
