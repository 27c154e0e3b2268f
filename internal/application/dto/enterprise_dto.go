package dto

import "time"

// CreateEnterpriseRequest alta de una empresa adicional del OWNER.
type CreateEnterpriseRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateEnterpriseRequest edición de datos de la empresa activa.
type UpdateEnterpriseRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ReconcileOwnersRequest conjunto deseado de owners de la empresa.
// El motor de reconciliación calcula altas y bajas; vacío elimina a todos
// menos al solicitante (una empresa nunca queda sin owners).
type ReconcileOwnersRequest struct {
	OwnerIDs []string `json:"owner_ids"`
}

// ReconcileOwnersResponse conjunto de owners realmente aplicado. Puede
// diferir del enviado porque el solicitante se conserva siempre.
type ReconcileOwnersResponse struct {
	OwnerIDs []string `json:"owner_ids"`
}

// EnterpriseResponse representación pública de una empresa.
type EnterpriseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
