package dto

import (
	"bytes"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// InvoiceStatsResponse GET /api/estadisticas-facturas.
type InvoiceStatsResponse struct {
	InvoicesToday int             `json:"facturas_hoy"`
	InvoicesMonth int             `json:"facturas_mes"`
	TotalSales    decimal.Decimal `json:"total_ventas"`
	MonthEarnings decimal.Decimal `json:"ganancias_mes"`
}

// SalesSeries periodo (mes o día) -> ingreso. En JSON las claves salen en orden numérico
// y los montos como números con dos decimales.
type SalesSeries map[int]decimal.Decimal

func (s SalesSeries) MarshalJSON() ([]byte, error) {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`":`)
		buf.WriteString(s[k].Round(2).StringFixed(2))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MonthlySalesResponse GET /api/ventas-anuales. Siempre trae las claves 1..12.
type MonthlySalesResponse struct {
	Year          int         `json:"anio"`
	SalesPerMonth SalesSeries `json:"ventas_por_mes"`
}

// DailySalesResponse GET /api/ventas-diarias. Siempre trae las claves 1..31.
type DailySalesResponse struct {
	Year        int         `json:"anio"`
	Month       int         `json:"mes"`
	SalesPerDay SalesSeries `json:"ventas_por_dia"`
}

// LineProfitResponse ganancia de una línea; null significa "sin datos de costo".
type LineProfitResponse struct {
	LineID      int64            `json:"detalle_id"`
	InvoiceID   int64            `json:"factura_id"`
	ProductID   int64            `json:"producto_id"`
	ProductName string           `json:"producto"`
	SaleMode    string           `json:"tipo_venta"`
	Quantity    int              `json:"cantidad"`
	SalePrice   *decimal.Decimal `json:"precio_venta"`
	CostBasis   *decimal.Decimal `json:"costo"`
	UnitProfit  *decimal.Decimal `json:"ganancia_unitaria"`
	LineProfit  *decimal.Decimal `json:"ganancia_total"`
	MarginPct   *decimal.Decimal `json:"margen_porcentaje"`
}

// ProductProfitResponse agregado por (producto, tipo de venta).
type ProductProfitResponse struct {
	ProductID     int64            `json:"producto_id"`
	ProductName   string           `json:"producto"`
	SaleMode      string           `json:"tipo_venta"`
	TotalQuantity int              `json:"cantidad_total"`
	TotalProfit   *decimal.Decimal `json:"ganancia_total"`
	MarginPct     *decimal.Decimal `json:"margen_porcentaje"`
}
