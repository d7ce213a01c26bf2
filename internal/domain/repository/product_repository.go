package repository

import (
	"context"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// SpecialPriceRepository persistencia de precios especiales por tipo de cliente.
type SpecialPriceRepository interface {
	Create(ctx context.Context, sp *entity.SpecialPrice) error
	GetByID(ctx context.Context, id int64) (*entity.SpecialPrice, error)
	List(ctx context.Context) ([]*entity.SpecialPrice, error)
	Update(ctx context.Context, sp *entity.SpecialPrice) error
	Delete(ctx context.Context, id int64) error
}
