// Package analytics contiene los casos de uso de reportes: estadísticas de facturas,
// ventas por mes y por día, y ganancias por línea y por producto.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/reporting"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// Cache puerto del caché versionado de reportes (cache.ReportCache).
type Cache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
}

// ReportsUseCase genera los reportes. Todos son de solo lectura.
type ReportsUseCase struct {
	repo  repository.ReportRepository
	cache Cache
	loc   *time.Location
	now   func() time.Time
}

// NewReportsUseCase construye el caso de uso. cache puede ser nil; loc nil equivale a UTC.
func NewReportsUseCase(repo repository.ReportRepository, cache Cache, loc *time.Location) *ReportsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportsUseCase{repo: repo, cache: cache, loc: loc, now: time.Now}
}

// SetClock reemplaza el reloj (pruebas).
func (uc *ReportsUseCase) SetClock(now func() time.Time) { uc.now = now }

// cached resuelve la clave versionada y delega en el caché. Sin caché el resultado pasa por JSON
// igual que si viniera de Redis, para que ambos caminos entreguen lo mismo.
func (uc *ReportsUseCase) cached(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	if uc.cache == nil {
		v, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	key, err := uc.cache.BuildKey(ctx, append([]string{"reportes"}, parts...)...)
	if err != nil {
		return fmt.Errorf("clave de caché: %w", err)
	}
	return uc.cache.FetchJSON(ctx, key, dest, loader)
}

// InvoiceStats facturas de hoy y del mes, ventas históricas e ingreso del mes, en la zona del negocio.
func (uc *ReportsUseCase) InvoiceStats(ctx context.Context) (*dto.InvoiceStatsResponse, error) {
	now := uc.now().In(uc.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	tomorrow := todayStart.AddDate(0, 0, 1)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var out dto.InvoiceStatsResponse
	err := uc.cached(ctx, &out, func(ctx context.Context) (any, error) {
		var res dto.InvoiceStatsResponse
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			res.InvoicesToday, err = uc.repo.CountInvoices(gctx, todayStart, tomorrow)
			return err
		})
		g.Go(func() (err error) {
			res.InvoicesMonth, err = uc.repo.CountInvoices(gctx, monthStart, nextMonth)
			return err
		})
		g.Go(func() (err error) {
			res.TotalSales, err = uc.repo.Revenue(gctx, time.Time{}, time.Time{})
			return err
		})
		g.Go(func() (err error) {
			res.MonthEarnings, err = uc.repo.Revenue(gctx, monthStart, nextMonth)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		res.TotalSales = pricing.Round2(res.TotalSales)
		res.MonthEarnings = pricing.Round2(res.MonthEarnings)
		return res, nil
	}, "stats", todayStart.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthlySales ingreso de cada mes del año; year 0 usa el año en curso.
func (uc *ReportsUseCase) MonthlySales(ctx context.Context, year int) (*dto.MonthlySalesResponse, error) {
	if year == 0 {
		year = uc.now().In(uc.loc).Year()
	}
	if year < 1 || year > 9999 {
		return nil, domain.NewValidationError("year", "fuera de rango")
	}
	var out dto.MonthlySalesResponse
	err := uc.cached(ctx, &out, func(ctx context.Context) (any, error) {
		rows, err := uc.repo.MonthlyRevenue(ctx, year, uc.loc)
		if err != nil {
			return nil, err
		}
		return dto.MonthlySalesResponse{Year: year, SalesPerMonth: keyed(reporting.DenseMonthly(rows))}, nil
	}, "ventas-anuales", strconv.Itoa(year))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DailySales ingreso de cada día 1..31 del mes; ceros en los días que el mes no tiene.
func (uc *ReportsUseCase) DailySales(ctx context.Context, year, month int) (*dto.DailySalesResponse, error) {
	now := uc.now().In(uc.loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 1 || year > 9999 {
		return nil, domain.NewValidationError("year", "fuera de rango")
	}
	if month < 1 || month > 12 {
		return nil, domain.NewValidationError("month", "debe estar entre 1 y 12")
	}
	var out dto.DailySalesResponse
	err := uc.cached(ctx, &out, func(ctx context.Context) (any, error) {
		rows, err := uc.repo.DailyRevenue(ctx, year, month, uc.loc)
		if err != nil {
			return nil, err
		}
		return dto.DailySalesResponse{Year: year, Month: month, SalesPerDay: keyed(reporting.DenseDaily(rows))}, nil
	}, "ventas-diarias", strconv.Itoa(year), strconv.Itoa(month))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfitLines ganancia de cada línea vendida.
func (uc *ReportsUseCase) ProfitLines(ctx context.Context) ([]dto.LineProfitResponse, error) {
	var out []dto.LineProfitResponse
	err := uc.cached(ctx, &out, func(ctx context.Context) (any, error) {
		sold, err := uc.repo.SoldLines(ctx)
		if err != nil {
			return nil, err
		}
		lines := reporting.PerLineProfit(sold)
		res := make([]dto.LineProfitResponse, 0, len(lines))
		for _, l := range lines {
			res = append(res, dto.LineProfitResponse{
				LineID:      l.LineID,
				InvoiceID:   l.InvoiceID,
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				SaleMode:    string(l.SaleMode),
				Quantity:    l.Quantity,
				SalePrice:   pricing.Round2Ptr(l.SalePrice),
				CostBasis:   pricing.Round2Ptr(l.CostBasis),
				UnitProfit:  pricing.Round2Ptr(l.UnitProfit),
				LineProfit:  pricing.Round2Ptr(l.LineProfit),
				MarginPct:   pricing.Round2Ptr(l.MarginPct),
			})
		}
		return res, nil
	}, "ganancias")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProfitByProduct ganancia agregada por producto y tipo de venta.
func (uc *ReportsUseCase) ProfitByProduct(ctx context.Context) ([]dto.ProductProfitResponse, error) {
	var out []dto.ProductProfitResponse
	err := uc.cached(ctx, &out, func(ctx context.Context) (any, error) {
		sold, err := uc.repo.SoldLines(ctx)
		if err != nil {
			return nil, err
		}
		groups := reporting.AggregateProfit(reporting.PerLineProfit(sold))
		res := make([]dto.ProductProfitResponse, 0, len(groups))
		for _, g := range groups {
			res = append(res, dto.ProductProfitResponse{
				ProductID:     g.ProductID,
				ProductName:   g.ProductName,
				SaleMode:      string(g.SaleMode),
				TotalQuantity: g.TotalQuantity,
				TotalProfit:   pricing.Round2Ptr(g.TotalProfit),
				MarginPct:     pricing.Round2Ptr(g.MarginPct),
			})
		}
		return res, nil
	}, "ganancias-por-producto")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// keyed convierte la serie densa (índice = periodo - 1) en el mapa periodo -> ingreso redondeado.
func keyed(series []decimal.Decimal) dto.SalesSeries {
	m := make(dto.SalesSeries, len(series))
	for i, v := range series {
		m[i+1] = pricing.Round2(v)
	}
	return m
}
