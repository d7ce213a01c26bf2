package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/reporting"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para ventas y ganancias.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SoldLines une cada línea con el catálogo vigente del producto; la ganancia se calcula en Go.
func (r *ReportRepo) SoldLines(ctx context.Context) ([]reporting.SoldLine, error) {
	const query = `
	SELECT d.id, d.factura_id, d.cantidad, d.tipo_venta,
	       p.id, p.nombre, p.precio, p.precio_unidad, p.precio_quintal, p.costo_unidad, p.costo_quintal
	FROM facturas_detalle d
	JOIN productos p ON p.id = d.producto_id
	ORDER BY d.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.SoldLines: %w", err)
	}
	defer rows.Close()

	var out []reporting.SoldLine
	for rows.Next() {
		var l reporting.SoldLine
		var mode string
		p := &l.Product
		if err := rows.Scan(
			&l.LineID, &l.InvoiceID, &l.Quantity, &mode,
			&p.ID, &p.Name, &p.Price, &p.PricePerUnit, &p.PricePerHundredweight, &p.CostPerUnit, &p.CostPerHundredweight,
		); err != nil {
			return nil, fmt.Errorf("reports.SoldLines scan: %w", err)
		}
		l.SaleMode = entity.SaleMode(mode)
		out = append(out, l)
	}
	return out, rows.Err()
}

// MonthlyRevenue agrupa por mes (en la zona horaria del negocio) las ventas del año.
func (r *ReportRepo) MonthlyRevenue(ctx context.Context, year int, loc *time.Location) ([]reporting.PeriodRevenue, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return r.revenueBy(ctx, "MONTH", from, from.AddDate(1, 0, 0), loc)
}

// DailyRevenue agrupa por día las ventas del mes.
func (r *ReportRepo) DailyRevenue(ctx context.Context, year, month int, loc *time.Location) ([]reporting.PeriodRevenue, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return r.revenueBy(ctx, "DAY", from, from.AddDate(0, 1, 0), loc)
}

// revenueBy field es MONTH o DAY (constante interna, no viene del cliente).
func (r *ReportRepo) revenueBy(ctx context.Context, field string, from, to time.Time, loc *time.Location) ([]reporting.PeriodRevenue, error) {
	query := `
	SELECT EXTRACT(` + field + ` FROM f.fecha_creacion AT TIME ZONE $3)::INT AS periodo,
	       COALESCE(SUM(d.cantidad * d.precio_unitario), 0)                 AS total
	FROM facturas f
	JOIN facturas_detalle d ON d.factura_id = f.id
	WHERE f.fecha_creacion >= $1 AND f.fecha_creacion < $2
	GROUP BY periodo
	ORDER BY periodo`

	rows, err := r.pool.Query(ctx, query, from, to, loc.String())
	if err != nil {
		return nil, fmt.Errorf("reports.revenueBy %s: %w", field, err)
	}
	defer rows.Close()

	var out []reporting.PeriodRevenue
	for rows.Next() {
		var pr reporting.PeriodRevenue
		if err := rows.Scan(&pr.Period, &pr.Revenue); err != nil {
			return nil, fmt.Errorf("reports.revenueBy scan: %w", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// CountInvoices cuenta facturas creadas en [from, to).
func (r *ReportRepo) CountInvoices(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM facturas WHERE fecha_creacion >= $1 AND fecha_creacion < $2`, from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reports.CountInvoices: %w", err)
	}
	return n, nil
}

// Revenue suma ventas en [from, to); con ambos límites en cero suma todo.
func (r *ReportRepo) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
	SELECT COALESCE(SUM(d.cantidad * d.precio_unitario), 0)
	FROM facturas_detalle d
	JOIN facturas f ON f.id = d.factura_id`
	var args []any
	if !from.IsZero() || !to.IsZero() {
		query += ` WHERE f.fecha_creacion >= $1 AND f.fecha_creacion < $2`
		args = append(args, from, to)
	}

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reports.Revenue: %w", err)
	}
	return total, nil
}
