package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// NetUnitPrice aplica el descuento por unidad sobre el precio de catálogo.
// El precio resultante nunca es negativo: max(0, precio - descuento).
func NetUnitPrice(catalogPrice, perUnitDiscount decimal.Decimal) decimal.Decimal {
	net := catalogPrice.Sub(perUnitDiscount)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// MarginPct = (ganancia unitaria / costo) * 100. Con costo cero no hay margen definido.
func MarginPct(unitProfit, cost decimal.Decimal) *decimal.Decimal {
	if cost.IsZero() {
		return nil
	}
	m := unitProfit.Div(cost).Mul(hundred)
	return &m
}

// Round2 redondea a 2 decimales; solo se usa al presentar cifras.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round2Ptr igual que Round2 pero conserva nil ("sin datos").
func Round2Ptr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}
