package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/memory"
)

type countingInvalidator struct {
	mu    sync.Mutex
	bumps int
}

func (c *countingInvalidator) Bump(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumps++
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newBillingFixture almacén con el usuario 1 y los productos 7 (Q10) y 8 (Q25).
func newBillingFixture(t *testing.T) (*memory.Store, *billing.CreateInvoiceUseCase, *countingInvalidator) {
	t.Helper()
	store := memory.NewStore()
	store.SeedUsers(entity.User{ID: 1, Name: "Cajero Uno", Username: "cajero", Role: entity.RoleCajero, Enabled: true})
	store.SeedProducts(
		entity.Product{ID: 7, Name: "Cemento", Price: dec("10")},
		entity.Product{ID: 8, Name: "Varilla 3/8", Price: dec("25")},
	)
	inv := &countingInvalidator{}
	return store, billing.NewCreateInvoiceUseCase(memory.NewTxRunner(store), inv, nil), inv
}

func TestCreateInvoice_DescuentoPorUnidad(t *testing.T) {
	store, uc, inval := newBillingFixture(t)

	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID: 1,
		Items: []dto.InvoiceItemRequest{
			{ProductID: 7, Quantity: 3, PerUnitDiscount: dec("2")},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Details, 1)
	assert.True(t, resp.Details[0].UnitPrice.Equal(dec("8")))
	assert.True(t, resp.Details[0].Subtotal.Equal(dec("24")))
	assert.Equal(t, string(entity.SaleModeUnit), resp.Details[0].SaleMode)

	require.Len(t, resp.Discounts, 1)
	d := resp.Discounts[0]
	assert.Equal(t, entity.DiscountPerUnit, d.Kind)
	assert.True(t, d.Amount.Equal(dec("2")))
	require.NotNil(t, d.ProductID)
	assert.Equal(t, int64(7), *d.ProductID)

	assert.True(t, resp.Total.Equal(dec("24")))
	invoices, lines, discounts := store.Counts()
	assert.Equal(t, 1, invoices)
	assert.Equal(t, 1, lines)
	assert.Equal(t, 1, discounts)
	assert.Equal(t, 1, inval.bumps)
}

func TestCreateInvoice_ProductoInexistenteRevierteTodo(t *testing.T) {
	store, uc, inval := newBillingFixture(t)

	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID: 1,
		Items: []dto.InvoiceItemRequest{
			{ProductID: 7, Quantity: 1, PerUnitDiscount: dec("1")},
			{ProductID: 8, Quantity: 2},
			{ProductID: 999, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransactionAborted))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	invoices, lines, discounts := store.Counts()
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
	assert.Zero(t, discounts)
	assert.Zero(t, inval.bumps)
}

func TestCreateInvoice_PrecioNuncaNegativo(t *testing.T) {
	cases := []struct {
		name     string
		discount string
		want     string
	}{
		{"sin descuento", "0", "10"},
		{"descuento parcial", "3.5", "6.5"},
		{"descuento igual al precio", "10", "0"},
		{"descuento mayor al precio", "250", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, uc, _ := newBillingFixture(t)
			resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
				UserID: 1,
				Items:  []dto.InvoiceItemRequest{{ProductID: 7, Quantity: 2, PerUnitDiscount: dec(tc.discount)}},
			})
			require.NoError(t, err)
			assert.True(t, resp.Details[0].UnitPrice.Equal(dec(tc.want)), "precio %s", resp.Details[0].UnitPrice)
			assert.False(t, resp.Details[0].UnitPrice.IsNegative())
		})
	}
}

func TestCreateInvoice_UnDescuentoPorLineaConDescuento(t *testing.T) {
	store, uc, _ := newBillingFixture(t)

	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID: 1,
		Items: []dto.InvoiceItemRequest{
			{ProductID: 7, Quantity: 1, PerUnitDiscount: dec("1")},
			{ProductID: 8, Quantity: 1},
			{ProductID: 8, Quantity: 4, PerUnitDiscount: dec("0.50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Discounts, 2)
	assert.Equal(t, int64(7), *resp.Discounts[0].ProductID)
	assert.Equal(t, int64(8), *resp.Discounts[1].ProductID)

	_, lines, discounts := store.Counts()
	assert.Equal(t, 3, lines)
	assert.Equal(t, 2, discounts)
}

func TestCreateInvoice_DescuentoTotalNegativo(t *testing.T) {
	store, uc, inval := newBillingFixture(t)

	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID:         1,
		DescuentoTotal: dec("-0.01"),
		Items:          []dto.InvoiceItemRequest{{ProductID: 7, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, errors.Is(err, domain.ErrNegativeTotalDiscount))
	assert.Contains(t, err.Error(), "negative total discount")

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "descuento_total", verr.Field)

	invoices, lines, _ := store.Counts()
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
	assert.Zero(t, inval.bumps)
}

func TestCreateInvoice_ValidacionesDeEntrada(t *testing.T) {
	cases := []struct {
		name  string
		req   dto.CreateInvoiceRequest
		field string
	}{
		{"sin usuario", dto.CreateInvoiceRequest{Items: []dto.InvoiceItemRequest{{ProductID: 7, Quantity: 1}}}, "usuario_id"},
		{"envío negativo", dto.CreateInvoiceRequest{UserID: 1, ShippingCost: dec("-5")}, "costo_envio"},
		{"cantidad cero", dto.CreateInvoiceRequest{UserID: 1, Items: []dto.InvoiceItemRequest{{ProductID: 7}}}, "productos[0].cantidad"},
		{"descuento por unidad negativo", dto.CreateInvoiceRequest{UserID: 1, Items: []dto.InvoiceItemRequest{
			{ProductID: 7, Quantity: 1},
			{ProductID: 7, Quantity: 1, PerUnitDiscount: dec("-1")},
		}}, "productos[1].descuento_por_unidad"},
		{"tipo de venta desconocido", dto.CreateInvoiceRequest{UserID: 1, Items: []dto.InvoiceItemRequest{
			{ProductID: 7, Quantity: 1, SaleMode: "Caja"},
		}}, "productos[0].tipo_venta"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, uc, _ := newBillingFixture(t)
			_, err := uc.CreateInvoice(context.Background(), tc.req)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "se esperaba ValidationError, llegó %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.False(t, errors.Is(err, domain.ErrTransactionAborted))

			invoices, _, _ := store.Counts()
			assert.Zero(t, invoices)
		})
	}
}

func TestCreateInvoice_PrecioDelCatalogoYModoPorDefecto(t *testing.T) {
	_, uc, _ := newBillingFixture(t)
	cliente := dec("1")

	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID:         1,
		CustomerName:   "Ferretería El Martillo",
		ShippingCost:   dec("15"),
		DescuentoTotal: dec("5"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: 8, Quantity: 2, UnitPrice: &cliente},
			{ProductID: 7, Quantity: 1, SaleMode: "Quintal"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Details[0].UnitPrice.Equal(dec("25")), "precio_unitario del cliente se ignora")
	assert.Equal(t, "Unidad", resp.Details[0].SaleMode)
	assert.Equal(t, "Quintal", resp.Details[1].SaleMode)

	// (50 + 10) - 5 + 15
	assert.True(t, resp.Subtotal.Equal(dec("60")))
	assert.True(t, resp.Total.Equal(dec("70")))
	assert.Equal(t, "Ferretería El Martillo", resp.CustomerName)
}

func TestCreateInvoice_UsuarioInexistente(t *testing.T) {
	store, uc, _ := newBillingFixture(t)

	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID: 42,
		Items:  []dto.InvoiceItemRequest{{ProductID: 7, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransactionAborted))

	invoices, _, _ := store.Counts()
	assert.Zero(t, invoices)
}
