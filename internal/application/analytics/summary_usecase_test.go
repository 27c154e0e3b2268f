package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltecla/solarops-api/internal/application/analytics"
	"github.com/soltecla/solarops-api/internal/domain/repository"
	"github.com/soltecla/solarops-api/pkg/logger"
)

type fakeAnalyticsRepo struct {
	totals  map[string]repository.PeriodTotals // clave "from|to"
	daily   []repository.DailyTotal
	windows [][2]time.Time
}

func (f *fakeAnalyticsRepo) GetPeriodTotals(_ context.Context, _ string, from, to time.Time) (repository.PeriodTotals, error) {
	f.windows = append(f.windows, [2]time.Time{from, to})
	return f.totals[from.Format("2006-01-02")+"|"+to.Format("2006-01-02")], nil
}

func (f *fakeAnalyticsRepo) GetDailyTotals(_ context.Context, _ string, _, _ time.Time) ([]repository.DailyTotal, error) {
	return f.daily, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestSummary_MetricasYVentanaAnterior(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totals: map[string]repository.PeriodTotals{
			// Ventana pedida: 10 días.
			"2026-03-11|2026-03-20": {Incomes: dec("1000"), TxExpenses: dec("200"), MaterialCost: dec("50"), WorksCount: 4},
			// Anterior de igual longitud, inmediatamente precedente.
			"2026-03-01|2026-03-10": {Incomes: dec("500"), TxExpenses: dec("100"), MaterialCost: dec("0"), WorksCount: 2},
		},
	}
	uc := analytics.NewSummaryUseCase(repo, testLogger())

	out, err := uc.Summary(context.Background(), "E1", "2026-03-11", "2026-03-20")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-11", out.From)
	assert.Equal(t, "2026-03-20", out.To)

	assert.True(t, out.Current.Incomes.Equal(dec("1000")))
	assert.True(t, out.Current.Expenses.Equal(dec("250")), "gastos = transacciones negativas + materiales")
	assert.True(t, out.Current.Remaining.Equal(dec("750")))
	assert.Equal(t, 4, out.Current.WorksCount)

	assert.True(t, out.Previous.Incomes.Equal(dec("500")))
	assert.True(t, out.Previous.Remaining.Equal(dec("400")))

	require.Len(t, repo.windows, 2)
	assert.Equal(t, day("2026-03-01"), repo.windows[1][0], "la ventana anterior arranca from − longitud")
	assert.Equal(t, day("2026-03-10"), repo.windows[1][1], "y termina el día antes de from")
}

// La fórmula de variación viene invertida del producto:
// (previous − current) / previous × 100.
func TestSummary_VariacionConSignoInvertido(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totals: map[string]repository.PeriodTotals{
			"2026-03-11|2026-03-20": {Incomes: dec("1000"), WorksCount: 4},
			"2026-03-01|2026-03-10": {Incomes: dec("500"), WorksCount: 2},
		},
	}
	uc := analytics.NewSummaryUseCase(repo, testLogger())

	out, err := uc.Summary(context.Background(), "E1", "2026-03-11", "2026-03-20")
	require.NoError(t, err)

	// (500 − 1000) / 500 × 100 = −100: crecer da variación NEGATIVA.
	assert.True(t, out.Variation.Incomes.Equal(dec("-100")), "got %s", out.Variation.Incomes)
	assert.True(t, out.Variation.WorksCount.Equal(dec("-100")))
}

func TestSummary_VariacionConAnteriorEnCero(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totals: map[string]repository.PeriodTotals{
			"2026-03-11|2026-03-20": {Incomes: dec("300")},
		},
	}
	uc := analytics.NewSummaryUseCase(repo, testLogger())

	out, err := uc.Summary(context.Background(), "E1", "2026-03-11", "2026-03-20")
	require.NoError(t, err)

	assert.True(t, out.Variation.Incomes.Equal(dec("100")), "anterior 0 y actual >0 da 100")
	assert.True(t, out.Variation.WorksCount.IsZero(), "ambos en cero da 0")
}

func TestSummary_SerieDiariaSinHuecos(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		daily: []repository.DailyTotal{
			{Day: day("2026-03-12"), Incomes: dec("100"), Expenses: dec("10")},
			{Day: day("2026-03-14"), Incomes: dec("0"), Expenses: dec("40")},
		},
	}
	uc := analytics.NewSummaryUseCase(repo, testLogger())

	out, err := uc.Summary(context.Background(), "E1", "2026-03-11", "2026-03-15")
	require.NoError(t, err)

	require.Len(t, out.Daily, 5, "exactamente una entrada por día de la ventana")
	assert.Equal(t, "2026-03-11", out.Daily[0].Date)
	assert.True(t, out.Daily[0].Incomes.IsZero(), "día sin movimientos se rellena a cero")
	assert.Equal(t, "2026-03-12", out.Daily[1].Date)
	assert.True(t, out.Daily[1].Incomes.Equal(dec("100")))
	assert.Equal(t, "2026-03-13", out.Daily[2].Date)
	assert.True(t, out.Daily[2].Expenses.IsZero())
	assert.True(t, out.Daily[3].Expenses.Equal(dec("40")))
	assert.Equal(t, "2026-03-15", out.Daily[4].Date)
}

// Un rango inválido no es error para el caller: se cae a la ventana por
// defecto de 7 días.
func TestSummary_RangoInvalidoUsaVentanaPorDefecto(t *testing.T) {
	casos := map[string][2]string{
		"from posterior a to": {"2026-03-20", "2026-03-11"},
		"fecha malformada":    {"20/03/2026", "2026-03-21"},
	}
	for nombre, c := range casos {
		repo := &fakeAnalyticsRepo{}
		uc := analytics.NewSummaryUseCase(repo, testLogger())

		out, err := uc.Summary(context.Background(), "E1", c[0], c[1])
		require.NoError(t, err, nombre)
		assert.Len(t, out.Daily, 7, nombre)

		require.NotEmpty(t, repo.windows, nombre)
		cur := repo.windows[0]
		assert.Equal(t, 6*24*time.Hour, cur[1].Sub(cur[0]), nombre)
	}
}

func TestSummary_SinFechasUsaVentanaPorDefecto(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewSummaryUseCase(repo, testLogger())

	out, err := uc.Summary(context.Background(), "E1", "", "")
	require.NoError(t, err)
	assert.Len(t, out.Daily, 7)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), out.To, "la ventana por defecto termina hoy")
}
