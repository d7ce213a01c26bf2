package entity

import "github.com/shopspring/decimal"

// Tipos de descuento registrados en la bitácora.
const (
	DiscountTotal   = "Total"
	DiscountPerUnit = "Por unidad"
)

// Discount es un registro de auditoría de un descuento aplicado. Solo se agrega, nunca se modifica.
type Discount struct {
	ID        int64
	InvoiceID int64
	Kind      string
	Amount    decimal.Decimal
	ProductID *int64
}

// ValidDiscountKind indica si el tipo es uno de los admitidos (vacío se permite).
func ValidDiscountKind(kind string) bool {
	return kind == "" || kind == DiscountTotal || kind == DiscountPerUnit
}
