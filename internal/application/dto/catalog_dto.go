package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest body para crear/actualizar un producto.
type ProductRequest struct {
	Name                  string           `json:"nombre" validate:"required,max=255"`
	Price                 decimal.Decimal  `json:"precio" validate:"gte=0"`
	PricePerUnit          *decimal.Decimal `json:"precio_unidad" validate:"omitempty,gte=0"`
	PricePerHundredweight *decimal.Decimal `json:"precio_quintal" validate:"omitempty,gte=0"`
	CostPerUnit           *decimal.Decimal `json:"costo_unidad" validate:"omitempty,gte=0"`
	CostPerHundredweight  *decimal.Decimal `json:"costo_quintal" validate:"omitempty,gte=0"`
	UnitsPerHundredweight *int             `json:"unidades_por_quintal" validate:"omitempty,gt=0"`
	Category              string           `json:"categoria" validate:"max=100"`
	Stock                 int              `json:"stock"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID                    int64            `json:"id"`
	Name                  string           `json:"nombre"`
	Price                 decimal.Decimal  `json:"precio"`
	PricePerUnit          *decimal.Decimal `json:"precio_unidad"`
	PricePerHundredweight *decimal.Decimal `json:"precio_quintal"`
	CostPerUnit           *decimal.Decimal `json:"costo_unidad"`
	CostPerHundredweight  *decimal.Decimal `json:"costo_quintal"`
	UnitsPerHundredweight *int             `json:"unidades_por_quintal"`
	Category              string           `json:"categoria"`
	Stock                 int              `json:"stock"`
	CreatedAt             time.Time        `json:"fecha_creacion"`
}

// SpecialPriceRequest precio especial; debe ser mayor que cero.
type SpecialPriceRequest struct {
	ProductID    int64           `json:"producto" validate:"required,gt=0"`
	CustomerTier string          `json:"tipo_cliente" validate:"required,max=50"`
	Price        decimal.Decimal `json:"precio" validate:"gt=0"`
}

type SpecialPriceResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"producto"`
	CustomerTier string          `json:"tipo_cliente"`
	Price        decimal.Decimal `json:"precio"`
}

// DiscountRequest alta manual en la bitácora de descuentos.
type DiscountRequest struct {
	InvoiceID int64           `json:"factura" validate:"required,gt=0"`
	Kind      string          `json:"tipo" validate:"omitempty,oneof=Total 'Por unidad'"`
	Amount    decimal.Decimal `json:"cantidad" validate:"gte=0"`
	ProductID *int64          `json:"producto" validate:"omitempty,gt=0"`
}

type DiscountResponse struct {
	ID        int64           `json:"id"`
	InvoiceID int64           `json:"factura"`
	Kind      string          `json:"tipo"`
	Amount    decimal.Decimal `json:"cantidad"`
	ProductID *int64          `json:"producto"`
}
