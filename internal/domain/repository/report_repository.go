package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/reporting"
)

// ReportRepository consultas de solo lectura para los reportes.
// Cada método es una sola sentencia SQL, por lo que ve una instantánea consistente.
type ReportRepository interface {
	// SoldLines devuelve todas las líneas de factura unidas a los datos actuales del producto, en orden de id.
	SoldLines(ctx context.Context) ([]reporting.SoldLine, error)

	// MonthlyRevenue ingreso (cantidad × precio cobrado) por mes del año dado; disperso.
	MonthlyRevenue(ctx context.Context, year int, loc *time.Location) ([]reporting.PeriodRevenue, error)

	// DailyRevenue ingreso por día del mes dado; disperso.
	DailyRevenue(ctx context.Context, year, month int, loc *time.Location) ([]reporting.PeriodRevenue, error)

	// CountInvoices cuenta facturas con fecha_creacion en [from, to).
	CountInvoices(ctx context.Context, from, to time.Time) (int, error)

	// Revenue suma cantidad × precio cobrado de las líneas cuyas facturas caen en [from, to).
	// Con from y to en cero suma todo el histórico.
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
