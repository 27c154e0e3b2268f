package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodTotals resultado crudo de las consultas agregadas de un período.
// Lo produce la DB; el caso de uso lo convierte en métricas y variaciones.
type PeriodTotals struct {
	Incomes      decimal.Decimal // Σ amount de transacciones con amount >= 0
	TxExpenses   decimal.Decimal // Σ |amount| de transacciones con amount < 0
	MaterialCost decimal.Decimal // Σ (amount × quantity) de work_materials, por obra y sumado
	WorksCount   int             // COUNT DISTINCT de obras creadas en el período
}

// DailyTotal ingresos/gastos de transacciones en un día calendario.
// Solo incluye días con filas; el caso de uso rellena los huecos a cero.
type DailyTotal struct {
	Day      time.Time
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el dashboard financiero.
// Las implementaciones son read-only y siempre acotadas al tenant.
type AnalyticsRepository interface {
	// GetPeriodTotals agrega las obras creadas en [from, to] (inclusive) de la
	// empresa, junto con sus transacciones y materiales. Usa COALESCE para
	// devolver ceros en períodos sin datos.
	GetPeriodTotals(ctx context.Context, enterpriseID string, from, to time.Time) (PeriodTotals, error)

	// GetDailyTotals devuelve, por día calendario con movimientos, la suma de
	// ingresos y gastos de transacciones del tenant fechadas ese día,
	// ordenada ascendente.
	GetDailyTotals(ctx context.Context, enterpriseID string, from, to time.Time) ([]DailyTotal, error)
}
