package catalogcsv_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/catalogcsv"
)

func latin1(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestReadProducts_DecodificaLatin1(t *testing.T) {
	in := "nombre;precio;costo_unidad;unidades_por_quintal;categoria\n" +
		"Cemento Progreso;Q85,50;70;;Construcción\n" +
		"Tubería PVC ½\";12.00;;;Fontanería\n"

	products, rowErrs, err := catalogcsv.ReadProducts(latin1(t, in), ';')
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, products, 2)

	assert.Equal(t, "Cemento Progreso", products[0].Name)
	assert.Equal(t, "Construcción", products[0].Category)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("85.50")))
	require.NotNil(t, products[0].CostPerUnit)
	assert.True(t, products[0].CostPerUnit.Equal(decimal.NewFromInt(70)))
	assert.Nil(t, products[0].UnitsPerHundredweight)

	assert.Equal(t, "Tubería PVC ½\"", products[1].Name)
	assert.Nil(t, products[1].CostPerUnit)
}

func TestReadProducts_FilasInvalidasSeReportan(t *testing.T) {
	in := "nombre,precio,stock\n" +
		"Clavos 2\",3.50,100\n" +
		",4.00,1\n" +
		"Alambre,abc,1\n" +
		"Lija,-1,1\n"

	products, rowErrs, err := catalogcsv.ReadProducts(latin1(t, in), ',')
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 100, products[0].Stock)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.Equal(t, 4, rowErrs[1].Line)
	assert.Equal(t, 5, rowErrs[2].Line)
}

func TestReadProducts_FaltaColumnaObligatoria(t *testing.T) {
	_, _, err := catalogcsv.ReadProducts(latin1(t, "nombre;categoria\nCemento;x\n"), ';')
	assert.Error(t, err)
}
