package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de la ferretería.
// Price es el precio de venta vigente; los precios y costos por modo de venta son opcionales (nil = sin dato).
type Product struct {
	ID                    int64
	Name                  string // único
	Price                 decimal.Decimal
	PricePerUnit          *decimal.Decimal
	PricePerHundredweight *decimal.Decimal
	CostPerUnit           *decimal.Decimal
	CostPerHundredweight  *decimal.Decimal
	UnitsPerHundredweight *int
	Category              string
	Stock                 int
	CreatedAt             time.Time
}

// SalePriceFor devuelve el precio de catálogo para el modo de venta.
// Unidad usa PricePerUnit y, si no existe, Price. Quintal solo tiene PricePerHundredweight.
func (p *Product) SalePriceFor(mode SaleMode) *decimal.Decimal {
	switch mode {
	case SaleModeHundredweight:
		return p.PricePerHundredweight
	default:
		if p.PricePerUnit != nil {
			return p.PricePerUnit
		}
		price := p.Price
		return &price
	}
}

// CostBasisFor devuelve el costo de compra para el modo de venta (nil si no está registrado).
func (p *Product) CostBasisFor(mode SaleMode) *decimal.Decimal {
	if mode == SaleModeHundredweight {
		return p.CostPerHundredweight
	}
	return p.CostPerUnit
}
