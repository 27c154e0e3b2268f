package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkRequest alta de obra.
type CreateWorkRequest struct {
	CustomerID  string `json:"customer_id"`
	TeamID      string `json:"team_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// UpdateWorkRequest edición de datos generales de la obra (solo INPROGRESS).
type UpdateWorkRequest struct {
	TeamID      string `json:"team_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// WorkEquipmentItem par (equipo, cantidad) del conjunto deseado.
type WorkEquipmentItem struct {
	EquipmentID string `json:"equipment_id"`
	Quantity    int    `json:"quantity"`
}

// ReconcileWorkEquipmentRequest conjunto deseado de equipos de la obra.
// Vacío es válido: quita todos los equipos y descuenta los contadores.
type ReconcileWorkEquipmentRequest struct {
	Equipments []WorkEquipmentItem `json:"equipments"`
}

// AddWorkMaterialRequest material consumido por la obra (snapshot de precio).
type AddWorkMaterialRequest struct {
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity decimal.Decimal `json:"quantity"`
}

// AddTransactionRequest movimiento financiero de la obra.
// Amount con signo: >= 0 ingreso, < 0 gasto. Date formato 2006-01-02.
type AddTransactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// WorkResponse obra con sus listas asociadas.
type WorkResponse struct {
	ID           string                  `json:"id"`
	CustomerID   string                  `json:"customer_id"`
	TeamID       *string                 `json:"team_id,omitempty"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Address      string                  `json:"address"`
	Status       string                  `json:"status"`
	Equipments   []WorkEquipmentItem     `json:"equipments,omitempty"`
	Materials    []WorkMaterialResponse  `json:"materials,omitempty"`
	Transactions []TransactionResponse   `json:"transactions,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// WorkMaterialResponse material registrado en la obra.
type WorkMaterialResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity decimal.Decimal `json:"quantity"`
}

// TransactionResponse movimiento financiero registrado.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}
