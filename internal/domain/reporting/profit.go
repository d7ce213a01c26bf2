package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
)

// SoldLine es una línea de factura junto con el producto (datos de catálogo actuales) que vendió.
type SoldLine struct {
	LineID    int64
	InvoiceID int64
	Product   entity.Product
	Quantity  int
	SaleMode  entity.SaleMode
}

// LineProfit ganancia de una línea. Los punteros nil significan "sin datos" (costo o precio del modo ausente).
type LineProfit struct {
	LineID      int64
	InvoiceID   int64
	ProductID   int64
	ProductName string
	SaleMode    entity.SaleMode
	Quantity    int
	SalePrice   *decimal.Decimal
	CostBasis   *decimal.Decimal
	UnitProfit  *decimal.Decimal
	LineProfit  *decimal.Decimal
	MarginPct   *decimal.Decimal
}

// HasData indica si la línea tiene cifras de ganancia.
func (l LineProfit) HasData() bool { return l.LineProfit != nil }

// PerLineProfit calcula la ganancia de cada línea contra el precio de catálogo del modo, no contra el precio cobrado.
func PerLineProfit(lines []SoldLine) []LineProfit {
	out := make([]LineProfit, 0, len(lines))
	for _, l := range lines {
		p := l.Product
		lp := LineProfit{
			LineID:      l.LineID,
			InvoiceID:   l.InvoiceID,
			ProductID:   p.ID,
			ProductName: p.Name,
			SaleMode:    l.SaleMode,
			Quantity:    l.Quantity,
			SalePrice:   p.SalePriceFor(l.SaleMode),
			CostBasis:   p.CostBasisFor(l.SaleMode),
		}
		if lp.SalePrice != nil && lp.CostBasis != nil {
			unit := lp.SalePrice.Sub(*lp.CostBasis)
			total := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
			lp.UnitProfit = &unit
			lp.LineProfit = &total
			lp.MarginPct = pricing.MarginPct(unit, *lp.CostBasis)
		}
		out = append(out, lp)
	}
	return out
}

// ProductProfit agregado por (producto, modo de venta).
type ProductProfit struct {
	ProductID     int64
	ProductName   string
	SaleMode      entity.SaleMode
	TotalQuantity int
	TotalProfit   *decimal.Decimal
	MarginPct     *decimal.Decimal // margen de la última línea procesada, no un promedio
}

type groupKey struct {
	productID int64
	mode      entity.SaleMode
}

// AggregateProfit agrupa por (producto, modo) en orden de primera aparición.
// La cantidad suma todas las líneas. Una línea sin datos deja ganancia y margen del grupo en nil de forma permanente.
func AggregateProfit(lines []LineProfit) []ProductProfit {
	idx := make(map[groupKey]int)
	noData := make(map[groupKey]bool)
	var out []ProductProfit

	for _, l := range lines {
		k := groupKey{l.ProductID, l.SaleMode}
		i, ok := idx[k]
		if !ok {
			zero := decimal.Zero
			out = append(out, ProductProfit{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				SaleMode:    l.SaleMode,
				TotalProfit: &zero,
			})
			i = len(out) - 1
			idx[k] = i
		}
		g := &out[i]
		g.TotalQuantity += l.Quantity

		if noData[k] {
			continue
		}
		if !l.HasData() {
			noData[k] = true
			g.TotalProfit = nil
			g.MarginPct = nil
			continue
		}
		sum := g.TotalProfit.Add(*l.LineProfit)
		g.TotalProfit = &sum
		g.MarginPct = l.MarginPct
	}
	return out
}
