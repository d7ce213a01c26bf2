package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNetUnitPrice_PisoCero(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"sin descuento", "10", "0", "10"},
		{"descuento parcial", "10", "2", "8"},
		{"descuento igual al precio", "10", "10", "0"},
		{"descuento mayor al precio", "10", "25.50", "0"},
		{"precio cero", "0", "3", "0"},
		{"centavos", "15.75", "0.25", "15.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NetUnitPrice(d(tc.price), d(tc.discount))
			assert.True(t, got.Equal(d(tc.want)), "obtenido %s, esperado %s", got, tc.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestMarginPct(t *testing.T) {
	m := MarginPct(d("5"), d("10"))
	require.NotNil(t, m)
	assert.True(t, m.Equal(d("50")))

	assert.Nil(t, MarginPct(d("5"), decimal.Zero), "costo cero no tiene margen")
}

func TestRound2Ptr_ConservaNil(t *testing.T) {
	assert.Nil(t, Round2Ptr(nil))
	v := d("33.3333")
	assert.Equal(t, "33.33", Round2Ptr(&v).String())
}
