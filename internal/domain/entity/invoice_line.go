package entity

import "github.com/shopspring/decimal"

// InvoiceLine es una línea de factura. UnitPrice es el precio realmente cobrado (ya con descuento por unidad).
// Las líneas no se modifican después de creadas.
type InvoiceLine struct {
	ID        int64
	InvoiceID int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	SaleMode  SaleMode
}

// Subtotal = cantidad × precio unitario cobrado.
func (l *InvoiceLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
