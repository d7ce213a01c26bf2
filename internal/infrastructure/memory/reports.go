package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/reporting"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo reportes calculados sobre el estado en memoria, bajo un mismo lock de lectura.
type ReportRepo struct{ base }

func NewReportRepository(s *Store) *ReportRepo { return &ReportRepo{base{s: s}} }

func (r *ReportRepo) SoldLines(_ context.Context) ([]reporting.SoldLine, error) {
	var out []reporting.SoldLine
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.lines) {
			l := d.lines[id]
			p, ok := d.products[l.ProductID]
			if !ok {
				continue
			}
			out = append(out, reporting.SoldLine{
				LineID:    l.ID,
				InvoiceID: l.InvoiceID,
				Product:   p,
				Quantity:  l.Quantity,
				SaleMode:  l.SaleMode,
			})
		}
	})
	return out, nil
}

func (r *ReportRepo) MonthlyRevenue(_ context.Context, year int, loc *time.Location) ([]reporting.PeriodRevenue, error) {
	return r.revenueBy(loc, func(t time.Time) (int, bool) {
		return int(t.Month()), t.Year() == year
	}), nil
}

func (r *ReportRepo) DailyRevenue(_ context.Context, year, month int, loc *time.Location) ([]reporting.PeriodRevenue, error) {
	return r.revenueBy(loc, func(t time.Time) (int, bool) {
		return t.Day(), t.Year() == year && int(t.Month()) == month
	}), nil
}

// revenueBy suma cantidad × precio cobrado por periodo; la fecha es la de la factura en la zona del negocio.
func (r *ReportRepo) revenueBy(loc *time.Location, period func(time.Time) (int, bool)) []reporting.PeriodRevenue {
	sums := map[int]decimal.Decimal{}
	r.read(func(d *data) {
		for _, l := range d.lines {
			inv, ok := d.invoices[l.InvoiceID]
			if !ok {
				continue
			}
			key, in := period(inv.CreatedAt.In(loc))
			if !in {
				continue
			}
			sums[key] = sums[key].Add(l.Subtotal())
		}
	})
	out := make([]reporting.PeriodRevenue, 0, len(sums))
	for k, v := range sums {
		out = append(out, reporting.PeriodRevenue{Period: k, Revenue: v})
	}
	return out
}

func (r *ReportRepo) CountInvoices(_ context.Context, from, to time.Time) (int, error) {
	n := 0
	r.read(func(d *data) {
		for _, inv := range d.invoices {
			if !inv.CreatedAt.Before(from) && inv.CreatedAt.Before(to) {
				n++
			}
		}
	})
	return n, nil
}

func (r *ReportRepo) Revenue(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	all := from.IsZero() && to.IsZero()
	total := decimal.Zero
	r.read(func(d *data) {
		for _, l := range d.lines {
			inv, ok := d.invoices[l.InvoiceID]
			if !ok {
				continue
			}
			if all || (!inv.CreatedAt.Before(from) && inv.CreatedAt.Before(to)) {
				total = total.Add(l.Subtotal())
			}
		}
	})
	return total, nil
}
