package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/repository"
	"github.com/soltecla/solarops-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// defaultWindowDays ventana por defecto: los últimos 7 días incluyendo hoy.
const defaultWindowDays = 7

var hundred = decimal.NewFromInt(100)

// SummaryUseCase agregador del dashboard financiero: métricas de la ventana
// actual, de la ventana anterior de igual longitud, variaciones porcentuales
// y serie diaria sin huecos.
type SummaryUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	log           *logger.Logger
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(analyticsRepo repository.AnalyticsRepository, log *logger.Logger) *SummaryUseCase {
	return &SummaryUseCase{analyticsRepo: analyticsRepo, log: log}
}

// Summary calcula el resumen del dashboard para [from, to] (inclusive).
// Fechas vacías o un rango inválido NO son error para el caller: se cae a la
// ventana por defecto (últimos 7 días) dejando constancia en el log.
func (uc *SummaryUseCase) Summary(ctx context.Context, enterpriseID, fromStr, toStr string) (*dto.DashboardSummaryDTO, error) {
	from, to := uc.resolveWindow(fromStr, toStr)
	days := int(to.Sub(from).Hours()/24) + 1

	// Ventana anterior: misma longitud, inmediatamente precedente.
	prevFrom := from.AddDate(0, 0, -days)
	prevTo := to.AddDate(0, 0, -days)

	curTotals, err := uc.analyticsRepo.GetPeriodTotals(ctx, enterpriseID, from, to)
	if err != nil {
		return nil, err
	}
	prevTotals, err := uc.analyticsRepo.GetPeriodTotals(ctx, enterpriseID, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	daily, err := uc.analyticsRepo.GetDailyTotals(ctx, enterpriseID, from, to)
	if err != nil {
		return nil, err
	}

	current := toMetrics(curTotals)
	previous := toMetrics(prevTotals)

	return &dto.DashboardSummaryDTO{
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
		Current:  current,
		Previous: previous,
		Variation: dto.VariationDTO{
			Incomes:    variation(previous.Incomes, current.Incomes),
			Expenses:   variation(previous.Expenses, current.Expenses),
			Remaining:  variation(previous.Remaining, current.Remaining),
			WorksCount: variation(decimal.NewFromInt(int64(previous.WorksCount)), decimal.NewFromInt(int64(current.WorksCount))),
		},
		Daily: fillDaily(from, days, daily),
	}, nil
}

// resolveWindow interpreta las fechas pedidas; ante ausencia o rango
// inválido devuelve la ventana por defecto. El error de rango se registra
// pero no se propaga.
func (uc *SummaryUseCase) resolveWindow(fromStr, toStr string) (time.Time, time.Time) {
	if fromStr == "" && toStr == "" {
		return defaultWindow()
	}
	from, errFrom := time.Parse(dateLayout, fromStr)
	to, errTo := time.Parse(dateLayout, toStr)
	if errFrom != nil || errTo != nil || from.After(to) {
		uc.log.Warn().
			Str("from", fromStr).
			Str("to", toStr).
			Err(domain.ErrInvalidDateRange).
			Msg("rango de fechas inválido, usando ventana por defecto")
		return defaultWindow()
	}
	return from, to
}

func defaultWindow() (time.Time, time.Time) {
	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return to.AddDate(0, 0, -(defaultWindowDays - 1)), to
}

func toMetrics(t repository.PeriodTotals) dto.PeriodMetricsDTO {
	expenses := t.TxExpenses.Add(t.MaterialCost)
	return dto.PeriodMetricsDTO{
		Incomes:    t.Incomes,
		Expenses:   expenses,
		Remaining:  t.Incomes.Sub(expenses),
		WorksCount: t.WorksCount,
	}
}

// variation calcula (previous − current) / previous × 100. Con previous en
// cero devuelve 0 si current también es cero y 100 en otro caso. La fórmula
// viene así del producto (signo invertido incluido) y se conserva tal cual.
func variation(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return previous.Sub(current).Div(previous).Mul(hundred)
}

// fillDaily produce exactamente `days` entradas consecutivas desde `from`,
// rellenando con ceros los días sin movimientos.
func fillDaily(from time.Time, days int, rows []repository.DailyTotal) []dto.DailyFinanceDTO {
	byDay := make(map[string]repository.DailyTotal, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format(dateLayout)] = r
	}
	out := make([]dto.DailyFinanceDTO, 0, days)
	for i := 0; i < days; i++ {
		key := from.AddDate(0, 0, i).Format(dateLayout)
		entry := dto.DailyFinanceDTO{Date: key, Incomes: decimal.Zero, Expenses: decimal.Zero}
		if r, ok := byDay[key]; ok {
			entry.Incomes = r.Incomes
			entry.Expenses = r.Expenses
		}
		out = append(out, entry)
	}
	return out
}
