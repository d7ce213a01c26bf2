package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.SpecialPriceRepository = (*SpecialPriceRepo)(nil)
)

// ProductRepo catálogo en memoria. Los nombres son únicos sin distinguir mayúsculas.
type ProductRepo struct{ base }

func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{base{s: s}} }

func nameTaken(d *data, name string, exceptID int64) bool {
	for id, p := range d.products {
		if id != exceptID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.write(func(d *data) error {
		if nameTaken(d, p.Name, 0) {
			return domain.ErrDuplicate
		}
		p.ID = d.next("productos")
		if p.CreatedAt.IsZero() {
			p.CreatedAt = r.clock()
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(d *data) {
		if p, ok := d.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.products) {
			p := d.products[id]
			list = append(list, &p)
		}
	})
	return page(list, limit, offset), nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.write(func(d *data) error {
		old, ok := d.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if nameTaken(d, p.Name, p.ID) {
			return domain.ErrDuplicate
		}
		p.CreatedAt = old.CreatedAt
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, l := range d.lines {
			if l.ProductID == id {
				return fmt.Errorf("%w: productos %d tiene registros asociados", domain.ErrInvalidInput, id)
			}
		}
		delete(d.products, id)
		for spID, sp := range d.specialPrices {
			if sp.ProductID == id {
				delete(d.specialPrices, spID)
			}
		}
		return nil
	})
}

// SpecialPriceRepo precios especiales en memoria.
type SpecialPriceRepo struct{ base }

func NewSpecialPriceRepository(s *Store) *SpecialPriceRepo { return &SpecialPriceRepo{base{s: s}} }

func (r *SpecialPriceRepo) Create(_ context.Context, sp *entity.SpecialPrice) error {
	return r.write(func(d *data) error {
		if _, ok := d.products[sp.ProductID]; !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, sp.ProductID)
		}
		sp.ID = d.next("precios_especiales")
		d.specialPrices[sp.ID] = *sp
		return nil
	})
}

func (r *SpecialPriceRepo) GetByID(_ context.Context, id int64) (*entity.SpecialPrice, error) {
	var out *entity.SpecialPrice
	r.read(func(d *data) {
		if sp, ok := d.specialPrices[id]; ok {
			out = &sp
		}
	})
	return out, nil
}

func (r *SpecialPriceRepo) List(_ context.Context) ([]*entity.SpecialPrice, error) {
	var list []*entity.SpecialPrice
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.specialPrices) {
			sp := d.specialPrices[id]
			list = append(list, &sp)
		}
	})
	return list, nil
}

func (r *SpecialPriceRepo) Update(_ context.Context, sp *entity.SpecialPrice) error {
	return r.write(func(d *data) error {
		if _, ok := d.specialPrices[sp.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := d.products[sp.ProductID]; !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, sp.ProductID)
		}
		d.specialPrices[sp.ID] = *sp
		return nil
	})
}

func (r *SpecialPriceRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.specialPrices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.specialPrices, id)
		return nil
	})
}
