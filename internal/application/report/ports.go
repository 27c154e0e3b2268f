package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// EquipmentLine línea de equipo instalada en la obra, enriquecida con los
// datos de catálogo para el PDF.
type EquipmentLine struct {
	Name     string
	Brand    string
	Model    string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// WorkReportData todo lo que el generador necesita para armar el informe.
type WorkReportData struct {
	Enterprise   *entity.Enterprise
	Work         *entity.Work
	Customer     *entity.User
	Equipments   []EquipmentLine
	Materials    []entity.WorkMaterial
	Transactions []entity.Transaction

	Incomes      decimal.Decimal // Σ transacciones con amount >= 0
	Expenses     decimal.Decimal // Σ |amount < 0| + costo de materiales
	MaterialCost decimal.Decimal // Σ amount × quantity de materiales
	Balance      decimal.Decimal // Incomes − Expenses
}

// WorkReportGenerator produce el PDF del informe de obra.
type WorkReportGenerator interface {
	GenerateWorkReport(ctx context.Context, data *WorkReportData) ([]byte, error)
}
