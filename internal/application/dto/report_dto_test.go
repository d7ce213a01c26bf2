package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
)

func TestSalesSeries_ClavesEnOrdenYMontosNumericos(t *testing.T) {
	series := dto.SalesSeries{}
	for m := 1; m <= 12; m++ {
		series[m] = decimal.Zero
	}
	series[10] = decimal.RequireFromString("150")
	series[2] = decimal.RequireFromString("0.125")

	raw, err := json.Marshal(dto.MonthlySalesResponse{Year: 2024, SalesPerMonth: series})
	require.NoError(t, err)
	assert.Equal(t,
		`{"anio":2024,"ventas_por_mes":{"1":0.00,"2":0.13,"3":0.00,"4":0.00,"5":0.00,"6":0.00,"7":0.00,"8":0.00,"9":0.00,"10":150.00,"11":0.00,"12":0.00}}`,
		string(raw))
}

func TestSalesSeries_SeLeeDeVuelta(t *testing.T) {
	raw, err := json.Marshal(dto.SalesSeries{1: decimal.RequireFromString("24"), 2: decimal.Zero})
	require.NoError(t, err)

	var back dto.SalesSeries
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, 2)
	assert.True(t, back[1].Equal(decimal.RequireFromString("24")))
	assert.True(t, back[2].IsZero())
}
