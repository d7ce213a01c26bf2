package billing_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/memory"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

func TestInvoiceUseCase_ConsultaYBorrado(t *testing.T) {
	store, create, inval := newBillingFixture(t)
	ctx := context.Background()

	created, err := create.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		UserID: 1,
		Items: []dto.InvoiceItemRequest{
			{ProductID: 7, Quantity: 3, PerUnitDiscount: dec("2")},
			{ProductID: 8, Quantity: 1},
		},
	})
	require.NoError(t, err)

	uc := billing.NewInvoiceUseCase(memory.NewInvoiceRepository(store), memory.NewDiscountRepository(store), inval, nil)

	got, err := uc.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Details, 2)
	assert.Len(t, got.Discounts, 1)
	assert.True(t, got.Total.Equal(dec("49")))

	lines, err := uc.ListLines(ctx, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	flat, err := uc.ListFlat(ctx, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, flat, 2)

	require.NoError(t, uc.DeleteInvoice(ctx, created.ID))
	invoices, n, discounts := store.Counts()
	assert.Zero(t, invoices)
	assert.Zero(t, n, "las líneas se borran con la factura")
	assert.Zero(t, discounts)
	assert.Equal(t, 2, inval.bumps)

	_, err = uc.GetInvoice(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteInvoice(ctx, created.ID), domain.ErrNotFound)
}

func TestInvoiceUseCase_DescuentoManual(t *testing.T) {
	store, create, _ := newBillingFixture(t)
	ctx := context.Background()
	created, err := create.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		UserID: 1,
		Items:  []dto.InvoiceItemRequest{{ProductID: 7, Quantity: 1}},
	})
	require.NoError(t, err)

	uc := billing.NewInvoiceUseCase(memory.NewInvoiceRepository(store), memory.NewDiscountRepository(store), nil, nil)

	d, err := uc.CreateDiscount(ctx, dto.DiscountRequest{InvoiceID: created.ID, Kind: entity.DiscountTotal, Amount: dec("3")})
	require.NoError(t, err)
	assert.Nil(t, d.ProductID)

	_, err = uc.CreateDiscount(ctx, dto.DiscountRequest{InvoiceID: 404, Kind: entity.DiscountTotal, Amount: dec("3")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateDiscount(ctx, dto.DiscountRequest{InvoiceID: created.ID, Kind: "Regalo", Amount: dec("3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListDiscounts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteDiscount(ctx, d.ID))
	assert.ErrorIs(t, uc.DeleteDiscount(ctx, d.ID), domain.ErrNotFound)
}

type failingInvalidator struct{}

func (failingInvalidator) Bump(context.Context) error { return errors.New("redis caído") }

func TestInvoiceUseCase_BorradoRegistraFalloDeInvalidacion(t *testing.T) {
	store, create, _ := newBillingFixture(t)
	ctx := context.Background()
	created, err := create.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		UserID: 1,
		Items:  []dto.InvoiceItemRequest{{ProductID: 7, Quantity: 1}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	uc := billing.NewInvoiceUseCase(memory.NewInvoiceRepository(store), memory.NewDiscountRepository(store), failingInvalidator{}, log)

	require.NoError(t, uc.DeleteInvoice(ctx, created.ID), "el borrado no depende del caché")
	assert.Contains(t, buf.String(), "no se pudo invalidar caché de reportes")
	assert.Contains(t, buf.String(), "redis caído")
}
