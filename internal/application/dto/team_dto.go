package dto

import "time"

// CreateTeamRequest alta de cuadrilla.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateTeamRequest edición de cuadrilla.
type UpdateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReconcileMembersRequest conjunto deseado de miembros de la cuadrilla.
type ReconcileMembersRequest struct {
	UserIDs []string `json:"user_ids"`
}

// TeamResponse cuadrilla con sus miembros actuales.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"member_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
