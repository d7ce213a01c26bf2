package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura. Las líneas se borran en cascada con ella.
type Invoice struct {
	ID             int64
	CreatedAt      time.Time
	UserID         int64
	CustomerName   string
	DeliveryDate   *time.Time
	ShippingCost   decimal.Decimal
	DescuentoTotal decimal.Decimal
	Lines          []*InvoiceLine
}

// Subtotal suma los subtotales de las líneas.
func (i *Invoice) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range i.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Total = max(0, subtotal - descuento total) + costo de envío.
func (i *Invoice) Total() decimal.Decimal {
	net := i.Subtotal().Sub(i.DescuentoTotal)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return net.Add(i.ShippingCost)
}
