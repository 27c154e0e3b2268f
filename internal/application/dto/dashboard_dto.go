package dto

import "github.com/shopspring/decimal"

// PeriodMetricsDTO métricas agregadas de una ventana de fechas.
type PeriodMetricsDTO struct {
	Incomes    decimal.Decimal `json:"incomes"`     // Σ transacciones con amount >= 0
	Expenses   decimal.Decimal `json:"expenses"`    // Σ |amount < 0| + costo de materiales
	Remaining  decimal.Decimal `json:"remaining"`   // incomes − expenses
	WorksCount int             `json:"works_count"` // obras creadas en la ventana
}

// VariationDTO variación porcentual de cada métrica contra el período anterior.
//
// Fórmula heredada del producto: (previous − current) / previous × 100 — con
// el signo INVERTIDO respecto a la convención habitual. previous en cero da
// 0 si current también es cero, 100 en otro caso. No corregir: cambiarla
// alteraría las cifras que ya muestra el frontend.
type VariationDTO struct {
	Incomes    decimal.Decimal `json:"incomes"`
	Expenses   decimal.Decimal `json:"expenses"`
	Remaining  decimal.Decimal `json:"remaining"`
	WorksCount decimal.Decimal `json:"works_count"`
}

// DailyFinanceDTO entrada de la serie diaria. La serie sale SIN huecos:
// los días sin movimientos se rellenan con ceros.
type DailyFinanceDTO struct {
	Date     string          `json:"date"` // 2006-01-02
	Incomes  decimal.Decimal `json:"incomes"`
	Expenses decimal.Decimal `json:"expenses"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	From      string            `json:"from"` // 2006-01-02, inclusive
	To        string            `json:"to"`   // 2006-01-02, inclusive
	Current   PeriodMetricsDTO  `json:"current"`
	Previous  PeriodMetricsDTO  `json:"previous"`
	Variation VariationDTO      `json:"variation"`
	Daily     []DailyFinanceDTO `json:"daily"`
}
