package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard financiero.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetPeriodTotals agrega las obras creadas en [from, to] de la empresa:
// ingresos (transacciones con amount >= 0), gastos de transacciones
// (|amount| con amount < 0), costo de materiales (amount × quantity) y
// número de obras. Usa COALESCE para devolver ceros en períodos sin datos.
func (r *AnalyticsRepo) GetPeriodTotals(
	ctx context.Context,
	enterpriseID string,
	from, to time.Time,
) (repository.PeriodTotals, error) {
	const query = `
	SELECT
	    COALESCE((
	        SELECT SUM(t.amount)
	        FROM transactions t
	        JOIN works w ON w.id = t.work_id
	        WHERE w.enterprise_id = $1
	          AND w.created_at::date BETWEEN $2 AND $3
	          AND t.amount >= 0
	    ), 0)                                                        AS incomes,
	    COALESCE((
	        SELECT SUM(-t.amount)
	        FROM transactions t
	        JOIN works w ON w.id = t.work_id
	        WHERE w.enterprise_id = $1
	          AND w.created_at::date BETWEEN $2 AND $3
	          AND t.amount < 0
	    ), 0)                                                        AS tx_expenses,
	    COALESCE((
	        SELECT SUM(wm.amount * wm.quantity)
	        FROM work_materials wm
	        JOIN works w ON w.id = wm.work_id
	        WHERE w.enterprise_id = $1
	          AND w.created_at::date BETWEEN $2 AND $3
	    ), 0)                                                        AS material_cost,
	    (
	        SELECT COUNT(*)
	        FROM works w
	        WHERE w.enterprise_id = $1
	          AND w.created_at::date BETWEEN $2 AND $3
	    )                                                            AS works_count`

	var out repository.PeriodTotals
	err := r.pool.QueryRow(ctx, query, enterpriseID, from, to).Scan(
		&out.Incomes, &out.TxExpenses, &out.MaterialCost, &out.WorksCount,
	)
	if err != nil {
		return repository.PeriodTotals{}, fmt.Errorf("analytics.GetPeriodTotals: %w", err)
	}
	return out, nil
}

// GetDailyTotals devuelve, por día calendario con movimientos, la suma de
// ingresos y gastos de transacciones del tenant fechadas ese día. Los días
// sin filas NO aparecen: el caso de uso rellena los huecos a cero.
func (r *AnalyticsRepo) GetDailyTotals(
	ctx context.Context,
	enterpriseID string,
	from, to time.Time,
) ([]repository.DailyTotal, error) {
	const query = `
	SELECT
	    t.date::date                                                 AS day,
	    COALESCE(SUM(t.amount) FILTER (WHERE t.amount >= 0), 0)      AS incomes,
	    COALESCE(SUM(-t.amount) FILTER (WHERE t.amount < 0), 0)      AS expenses
	FROM transactions t
	WHERE t.enterprise_id = $1
	  AND t.date::date BETWEEN $2 AND $3
	GROUP BY t.date::date
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, enterpriseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailyTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyTotal
	for rows.Next() {
		var row repository.DailyTotal
		if err := rows.Scan(&row.Day, &row.Incomes, &row.Expenses); err != nil {
			return nil, fmt.Errorf("analytics.GetDailyTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
