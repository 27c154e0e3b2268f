package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// ReportUseCase genera el informe PDF de una obra: equipos instalados,
// materiales consumidos y balance financiero.
type ReportUseCase struct {
	workRepo         repository.WorkRepository
	workEquipRepo    repository.WorkEquipmentRepository
	workMaterialRepo repository.WorkMaterialRepository
	transactionRepo  repository.TransactionRepository
	equipmentRepo    repository.EquipmentRepository
	enterpriseRepo   repository.EnterpriseRepository
	userRepo         repository.UserRepository
	generator        WorkReportGenerator
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	workRepo repository.WorkRepository,
	workEquipRepo repository.WorkEquipmentRepository,
	workMaterialRepo repository.WorkMaterialRepository,
	transactionRepo repository.TransactionRepository,
	equipmentRepo repository.EquipmentRepository,
	enterpriseRepo repository.EnterpriseRepository,
	userRepo repository.UserRepository,
	generator WorkReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		workRepo:         workRepo,
		workEquipRepo:    workEquipRepo,
		workMaterialRepo: workMaterialRepo,
		transactionRepo:  transactionRepo,
		equipmentRepo:    equipmentRepo,
		enterpriseRepo:   enterpriseRepo,
		userRepo:         userRepo,
		generator:        generator,
	}
}

// DownloadWorkReport arma los datos del informe y genera el PDF.
// Devuelve (bytes, filename, nil) o domain.ErrNotFound si la obra no existe
// dentro del tenant.
func (uc *ReportUseCase) DownloadWorkReport(ctx context.Context, enterpriseID, workID string) ([]byte, string, error) {
	w, err := uc.workRepo.GetByIDAndEnterprise(ctx, workID, enterpriseID)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener obra: %w", err)
	}
	if w == nil {
		return nil, "", domain.ErrNotFound
	}

	enterprise, err := uc.enterpriseRepo.GetByID(ctx, enterpriseID)
	if err != nil || enterprise == nil {
		return nil, "", fmt.Errorf("report: obtener empresa: %w", err)
	}
	customer, err := uc.userRepo.GetByID(ctx, w.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("report: obtener cliente: %w", err)
	}

	assocs, err := uc.workEquipRepo.ListByWork(ctx, w.ID)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener equipos: %w", err)
	}
	lines := make([]EquipmentLine, 0, len(assocs))
	for _, a := range assocs {
		line := EquipmentLine{Name: "Equipo " + a.EquipmentID, Quantity: a.Quantity} // fallback
		if eq, eErr := uc.equipmentRepo.GetByIDAndEnterprise(ctx, a.EquipmentID, enterpriseID); eErr == nil && eq != nil {
			line.Name = eq.Name
			line.Brand = eq.Brand
			line.Model = eq.Model
			line.Price = eq.Price
			line.Subtotal = eq.Price.Mul(decimal.NewFromInt(int64(a.Quantity)))
		}
		lines = append(lines, line)
	}

	materials, err := uc.workMaterialRepo.ListByWork(ctx, w.ID)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener materiales: %w", err)
	}
	transactions, err := uc.transactionRepo.ListByWork(ctx, w.ID)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener transacciones: %w", err)
	}

	data := &WorkReportData{
		Enterprise: enterprise,
		Work:       w,
		Customer:   customer,
	}
	data.Equipments = lines
	data.Materials = materials
	data.Transactions = transactions
	for _, m := range materials {
		data.MaterialCost = data.MaterialCost.Add(m.Amount.Mul(m.Quantity))
	}
	for _, t := range transactions {
		if t.Amount.Sign() >= 0 {
			data.Incomes = data.Incomes.Add(t.Amount)
		} else {
			data.Expenses = data.Expenses.Add(t.Amount.Abs())
		}
	}
	data.Expenses = data.Expenses.Add(data.MaterialCost)
	data.Balance = data.Incomes.Sub(data.Expenses)

	pdf, err := uc.generator.GenerateWorkReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("obra_%s.pdf", w.ID), nil
}
