package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository  = (*InvoiceRepo)(nil)
	_ repository.DiscountRepository = (*DiscountRepo)(nil)
)

// InvoiceRepo facturas y líneas en memoria.
type InvoiceRepo struct{ base }

func NewInvoiceRepository(s *Store) *InvoiceRepo { return &InvoiceRepo{base{s: s}} }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.write(func(d *data) error {
		if _, ok := d.users[inv.UserID]; !ok {
			return fmt.Errorf("%w: usuario %d", domain.ErrNotFound, inv.UserID)
		}
		inv.ID = d.next("facturas")
		inv.CreatedAt = r.clock()
		header := *inv
		header.Lines = nil
		d.invoices[inv.ID] = header
		return nil
	})
}

func (r *InvoiceRepo) CreateLine(_ context.Context, l *entity.InvoiceLine) error {
	return r.write(func(d *data) error {
		if _, ok := d.invoices[l.InvoiceID]; !ok {
			return fmt.Errorf("%w: factura %d", domain.ErrNotFound, l.InvoiceID)
		}
		if _, ok := d.products[l.ProductID]; !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, l.ProductID)
		}
		l.ID = d.next("facturas_detalle")
		d.lines[l.ID] = *l
		return nil
	})
}

// withLines arma la factura con sus líneas en orden de id.
func withLines(d *data, inv entity.Invoice) *entity.Invoice {
	for _, id := range sortedKeys(d.lines) {
		if l := d.lines[id]; l.InvoiceID == inv.ID {
			inv.Lines = append(inv.Lines, &l)
		}
	}
	return &inv
}

func (r *InvoiceRepo) GetByID(_ context.Context, id int64) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.read(func(d *data) {
		if inv, ok := d.invoices[id]; ok {
			out = withLines(d, inv)
		}
	})
	return out, nil
}

func (r *InvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	r.read(func(d *data) {
		ids := sortedKeys(d.invoices)
		slices.Reverse(ids)
		for _, id := range ids {
			list = append(list, withLines(d, d.invoices[id]))
		}
	})
	return page(list, limit, offset), nil
}

// Delete borra la factura con sus líneas y descuentos.
func (r *InvoiceRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.invoices, id)
		for lid, l := range d.lines {
			if l.InvoiceID == id {
				delete(d.lines, lid)
			}
		}
		for did, disc := range d.discounts {
			if disc.InvoiceID == id {
				delete(d.discounts, did)
			}
		}
		return nil
	})
}

func lineView(d *data, l entity.InvoiceLine) *repository.InvoiceLineView {
	v := &repository.InvoiceLineView{InvoiceLine: l}
	if p, ok := d.products[l.ProductID]; ok {
		v.ProductName = p.Name
		v.Category = p.Category
		v.PricePerUnit = p.PricePerUnit
		v.PricePerHundredweight = p.PricePerHundredweight
	}
	if inv, ok := d.invoices[l.InvoiceID]; ok {
		v.CustomerName = inv.CustomerName
		v.InvoiceCreatedAt = inv.CreatedAt
	}
	return v
}

func (r *InvoiceRepo) GetLine(_ context.Context, id int64) (*repository.InvoiceLineView, error) {
	var out *repository.InvoiceLineView
	r.read(func(d *data) {
		if l, ok := d.lines[id]; ok {
			out = lineView(d, l)
		}
	})
	return out, nil
}

func (r *InvoiceRepo) ListLines(_ context.Context, limit, offset int) ([]*repository.InvoiceLineView, error) {
	var list []*repository.InvoiceLineView
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.lines) {
			list = append(list, lineView(d, d.lines[id]))
		}
	})
	slices.SortStableFunc(list, func(a, b *repository.InvoiceLineView) int {
		return b.InvoiceCreatedAt.Compare(a.InvoiceCreatedAt)
	})
	return page(list, limit, offset), nil
}

// DiscountRepo bitácora de descuentos en memoria.
type DiscountRepo struct{ base }

func NewDiscountRepository(s *Store) *DiscountRepo { return &DiscountRepo{base{s: s}} }

func (r *DiscountRepo) Create(_ context.Context, disc *entity.Discount) error {
	return r.write(func(d *data) error {
		if _, ok := d.invoices[disc.InvoiceID]; !ok {
			return fmt.Errorf("%w: factura %d", domain.ErrNotFound, disc.InvoiceID)
		}
		if disc.ProductID != nil {
			if _, ok := d.products[*disc.ProductID]; !ok {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, *disc.ProductID)
			}
		}
		disc.ID = d.next("descuentos")
		d.discounts[disc.ID] = *disc
		return nil
	})
}

func (r *DiscountRepo) GetByID(_ context.Context, id int64) (*entity.Discount, error) {
	var out *entity.Discount
	r.read(func(d *data) {
		if disc, ok := d.discounts[id]; ok {
			out = &disc
		}
	})
	return out, nil
}

func (r *DiscountRepo) List(ctx context.Context) ([]*entity.Discount, error) {
	return r.filter(func(entity.Discount) bool { return true }), nil
}

func (r *DiscountRepo) ListByInvoice(_ context.Context, invoiceID int64) ([]*entity.Discount, error) {
	return r.filter(func(disc entity.Discount) bool { return disc.InvoiceID == invoiceID }), nil
}

func (r *DiscountRepo) filter(keep func(entity.Discount) bool) []*entity.Discount {
	var list []*entity.Discount
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.discounts) {
			if disc := d.discounts[id]; keep(disc) {
				list = append(list, &disc)
			}
		}
	})
	return list
}

func (r *DiscountRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.discounts[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.discounts, id)
		return nil
	})
}
