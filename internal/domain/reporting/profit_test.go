package reporting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestPerLineProfit_UnidadConCosto(t *testing.T) {
	prod := entity.Product{ID: 9, Name: "Cemento", Price: *dec("15"), CostPerUnit: dec("10")}
	got := PerLineProfit([]SoldLine{{LineID: 1, InvoiceID: 1, Product: prod, Quantity: 4, SaleMode: entity.SaleModeUnit}})

	require.Len(t, got, 1)
	l := got[0]
	require.True(t, l.HasData())
	assert.True(t, l.UnitProfit.Equal(*dec("5")))
	assert.True(t, l.LineProfit.Equal(*dec("20")))
	assert.True(t, l.MarginPct.Equal(*dec("50")))
}

func TestPerLineProfit_SinCostoEsSinDatos(t *testing.T) {
	prod := entity.Product{ID: 9, Name: "Cemento", Price: *dec("15")}
	got := PerLineProfit([]SoldLine{{Product: prod, Quantity: 4, SaleMode: entity.SaleModeUnit}})

	require.Len(t, got, 1)
	assert.False(t, got[0].HasData())
	assert.Nil(t, got[0].UnitProfit)
	assert.Nil(t, got[0].LineProfit, "sin costo no es ganancia cero")
	assert.Nil(t, got[0].MarginPct)
}

func TestPerLineProfit_QuintalUsaPrecioYCostoDelModo(t *testing.T) {
	prod := entity.Product{
		ID: 3, Name: "Varilla", Price: *dec("12"),
		PricePerHundredweight: dec("500"), CostPerHundredweight: dec("400"),
		CostPerUnit: dec("1"),
	}
	got := PerLineProfit([]SoldLine{{Product: prod, Quantity: 2, SaleMode: entity.SaleModeHundredweight}})

	require.True(t, got[0].HasData())
	assert.True(t, got[0].LineProfit.Equal(*dec("200")))
	assert.True(t, got[0].MarginPct.Equal(*dec("25")))
}

func TestPerLineProfit_QuintalSinPrecioDeQuintal(t *testing.T) {
	prod := entity.Product{ID: 3, Price: *dec("12"), CostPerHundredweight: dec("400")}
	got := PerLineProfit([]SoldLine{{Product: prod, Quantity: 1, SaleMode: entity.SaleModeHundredweight}})
	assert.False(t, got[0].HasData())
}

func TestPerLineProfit_UnidadPrefierePrecioUnidad(t *testing.T) {
	prod := entity.Product{ID: 1, Price: *dec("15"), PricePerUnit: dec("18"), CostPerUnit: dec("10")}
	got := PerLineProfit([]SoldLine{{Product: prod, Quantity: 1, SaleMode: entity.SaleModeUnit}})
	assert.True(t, got[0].UnitProfit.Equal(*dec("8")))
}

func TestPerLineProfit_CostoCeroSinMargen(t *testing.T) {
	prod := entity.Product{ID: 1, Price: *dec("5"), CostPerUnit: dec("0")}
	got := PerLineProfit([]SoldLine{{Product: prod, Quantity: 2, SaleMode: entity.SaleModeUnit}})
	require.True(t, got[0].HasData())
	assert.True(t, got[0].LineProfit.Equal(*dec("10")))
	assert.Nil(t, got[0].MarginPct)
}

func TestAggregateProfit_SumaYUltimoMargen(t *testing.T) {
	lines := []LineProfit{
		{ProductID: 1, SaleMode: entity.SaleModeUnit, Quantity: 2, LineProfit: dec("10"), MarginPct: dec("50")},
		{ProductID: 1, SaleMode: entity.SaleModeUnit, Quantity: 3, LineProfit: dec("6"), MarginPct: dec("20")},
		{ProductID: 1, SaleMode: entity.SaleModeHundredweight, Quantity: 1, LineProfit: dec("100"), MarginPct: dec("25")},
	}
	got := AggregateProfit(lines)

	require.Len(t, got, 2)
	assert.Equal(t, entity.SaleModeUnit, got[0].SaleMode)
	assert.Equal(t, 5, got[0].TotalQuantity)
	assert.True(t, got[0].TotalProfit.Equal(*dec("16")))
	assert.True(t, got[0].MarginPct.Equal(*dec("20")), "el margen es el de la última línea")

	assert.Equal(t, entity.SaleModeHundredweight, got[1].SaleMode)
	assert.True(t, got[1].TotalProfit.Equal(*dec("100")))
}

func TestAggregateProfit_SinDatosSePropaga(t *testing.T) {
	lines := []LineProfit{
		{ProductID: 1, SaleMode: entity.SaleModeUnit, Quantity: 2, LineProfit: dec("10"), MarginPct: dec("50")},
		{ProductID: 1, SaleMode: entity.SaleModeUnit, Quantity: 1},
		{ProductID: 1, SaleMode: entity.SaleModeUnit, Quantity: 4, LineProfit: dec("8"), MarginPct: dec("40")},
	}
	got := AggregateProfit(lines)

	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].TotalQuantity, "la cantidad siempre se suma")
	assert.Nil(t, got[0].TotalProfit)
	assert.Nil(t, got[0].MarginPct)
}

func TestAggregateProfit_Vacio(t *testing.T) {
	assert.Empty(t, AggregateProfit(nil))
}
