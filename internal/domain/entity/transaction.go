package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction movimiento financiero de una obra.
// Amount con signo: >= 0 es ingreso, < 0 es gasto.
type Transaction struct {
	ID           string
	EnterpriseID string
	WorkID       string
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	CreatedAt    time.Time
}
