package usecase_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/memory"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Productos ────────────────────────────────────────────────────────────────

func TestProductUseCase_NombreDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()), nil, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ProductRequest{Name: "Cemento", Price: dec("75")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.ProductRequest{Name: "cemento", Price: dec("80")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_PrecioNegativo(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()), nil, nil)
	costo := dec("-1")

	_, err := uc.Create(context.Background(), dto.ProductRequest{Name: "Pala", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.ProductRequest{Name: "Pala", Price: dec("10"), CostPerUnit: &costo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ActualizarConservaStock(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()), nil, nil)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.ProductRequest{Name: "Alambre", Price: dec("12"), Stock: 40})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, p.ID, dto.ProductRequest{Name: "Alambre de amarre", Price: dec("13.5")})
	require.NoError(t, err)
	assert.Equal(t, "Alambre de amarre", upd.Name)
	assert.Equal(t, 40, upd.Stock)
	assert.True(t, upd.Price.Equal(dec("13.5")))

	_, err = uc.Update(ctx, 999, dto.ProductRequest{Name: "x", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_NoSeBorraSiFueFacturado(t *testing.T) {
	store := memory.NewStore()
	store.SeedUsers(entity.User{ID: 1, Username: "caja", Enabled: true})
	store.SeedProducts(entity.Product{ID: 5, Name: "Tubo", Price: dec("30")})
	create := billing.NewCreateInvoiceUseCase(memory.NewTxRunner(store), nil, nil)
	_, err := create.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		UserID: 1, Items: []dto.InvoiceItemRequest{{ProductID: 5, Quantity: 1}},
	})
	require.NoError(t, err)

	uc := usecase.NewProductUseCase(memory.NewProductRepository(store), nil, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), 5), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Delete(context.Background(), 6), domain.ErrNotFound)
}

type failingInvalidator struct{ calls int }

func (f *failingInvalidator) Bump(context.Context) error {
	f.calls++
	return errors.New("redis caído")
}

func TestProductUseCase_FalloDeInvalidacionSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	inval := &failingInvalidator{}
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()), inval, log)

	p, err := uc.Create(context.Background(), dto.ProductRequest{Name: "Clavo 3", Price: dec("0.50")})
	require.NoError(t, err, "el catálogo no depende del caché")
	assert.Equal(t, "Clavo 3", p.Name)
	assert.Equal(t, 1, inval.calls)
	assert.Contains(t, buf.String(), "no se pudo invalidar caché de reportes")
	assert.Contains(t, buf.String(), `"component":"catalogo"`)
}

func TestSpecialPriceUseCase_PrecioDebeSerPositivo(t *testing.T) {
	store := memory.NewStore()
	store.SeedProducts(entity.Product{ID: 1, Name: "Lámina", Price: dec("60")})
	uc := usecase.NewSpecialPriceUseCase(memory.NewSpecialPriceRepository(store), memory.NewProductRepository(store))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.SpecialPriceRequest{ProductID: 1, CustomerTier: "Mayorista", Price: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.SpecialPriceRequest{ProductID: 2, CustomerTier: "Mayorista", Price: dec("55")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sp, err := uc.Create(ctx, dto.SpecialPriceRequest{ProductID: 1, CustomerTier: "Mayorista", Price: dec("55")})
	require.NoError(t, err)
	assert.True(t, sp.Price.Equal(dec("55")))
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

func TestUserUseCase_CrearYCambiarContraseña(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewUserRepository(store)
	uc := usecase.NewUserUseCase(repo)
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.UserRequest{Name: "Ana", Username: "ana", Password: "secreta1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCajero, u.Role)
	assert.True(t, u.Enabled)

	stored, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta1")))

	// sin contraseña se conserva la anterior
	off := false
	_, err = uc.Update(ctx, u.ID, dto.UserRequest{Name: "Ana María", Username: "ana", Role: entity.RoleAdministrador, Enabled: &off})
	require.NoError(t, err)
	stored, _ = repo.GetByID(ctx, u.ID)
	assert.False(t, stored.Enabled)
	assert.Equal(t, entity.RoleAdministrador, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta1")))

	_, err = uc.Update(ctx, u.ID, dto.UserRequest{Username: "ana", Password: "nueva-clave"})
	require.NoError(t, err)
	stored, _ = repo.GetByID(ctx, u.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva-clave")))
}

func TestUserUseCase_Validaciones(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.UserRequest{Username: "sinclave"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.UserRequest{Username: "x", Password: "secreta1", Role: "Gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.UserRequest{Username: "dup", Password: "secreta1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.UserRequest{Username: "dup", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ── Caja y deudores ──────────────────────────────────────────────────────────

func newCashbook(store *memory.Store) *usecase.CashbookUseCase {
	return usecase.NewCashbookUseCase(
		memory.NewCashRegisterRepository(store),
		memory.NewDebtorRepository(store),
		memory.NewDebtRecordRepository(store),
		memory.NewDebtPaymentRepository(store),
	)
}

func TestCashbook_TotalesDeCaja(t *testing.T) {
	uc := newCashbook(memory.NewStore())
	ctx := context.Background()

	c, err := uc.CreateCashRegister(ctx, dto.CashRegisterRequest{
		BankAccount: dec("500"), Cash: dec("1200.50"), Change: dec("50"), Expenses: dec("150"), ExtraIncome: dec("25"),
	})
	require.NoError(t, err)
	assert.True(t, c.Total.Equal(dec("1625.50")))
	assert.True(t, c.TotalSinDeuda.Equal(c.Total))
	assert.True(t, c.TotalConDeuda.Equal(c.Total))

	upd, err := uc.UpdateCashRegister(ctx, c.ID, dto.CashRegisterRequest{Cash: dec("100")})
	require.NoError(t, err)
	assert.True(t, upd.Total.Equal(dec("100")))
	assert.Equal(t, c.CreatedAt, upd.CreatedAt)

	_, err = uc.CreateCashRegister(ctx, dto.CashRegisterRequest{Expenses: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCashbook_DeudorConCargosYAbonos(t *testing.T) {
	uc := newCashbook(memory.NewStore())
	ctx := context.Background()

	d, err := uc.CreateDebtor(ctx, dto.DebtorRequest{Name: "Constructora López"})
	require.NoError(t, err)
	assert.Equal(t, entity.DebtorActive, d.Status)

	rec, err := uc.CreateDebtRecord(ctx, dto.DebtRecordRequest{DebtorID: d.ID, Description: "10 sacos de cemento", Amount: dec("750")})
	require.NoError(t, err)
	assert.Equal(t, "Constructora López", rec.DebtorName)

	caja, err := uc.CreateCashRegister(ctx, dto.CashRegisterRequest{Cash: dec("300")})
	require.NoError(t, err)
	pay, err := uc.CreateDebtPayment(ctx, dto.DebtPaymentRequest{DebtorID: d.ID, Amount: dec("250"), CashRegisterID: caja.ID})
	require.NoError(t, err)
	assert.Equal(t, "Constructora López", pay.DebtorName)

	_, err = uc.CreateDebtPayment(ctx, dto.DebtPaymentRequest{DebtorID: d.ID, Amount: dec("1"), CashRegisterID: 77})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateDebtor(ctx, dto.DebtorRequest{Name: "X", Status: "Moroso"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.DeleteDebtor(ctx, d.ID))
	records, err := uc.ListDebtRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	payments, err := uc.ListDebtPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

// ── Impresión ────────────────────────────────────────────────────────────────

func TestPrintUseCase_ColaYCP850(t *testing.T) {
	uc := usecase.NewPrintUseCase(memory.NewPrintJobRepository(memory.NewStore()))
	ctx := context.Background()

	job, err := uc.AddJob(ctx, dto.PrintJobRequest{Text: "Año €"})
	require.NoError(t, err)
	_, err = uc.AddJob(ctx, dto.PrintJobRequest{Text: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	plain, err := uc.ListPending(ctx, "")
	require.NoError(t, err)
	require.Len(t, plain, 1)
	assert.Empty(t, plain[0].Payload)

	encoded, err := uc.ListPending(ctx, "CP850")
	require.NoError(t, err)
	require.Len(t, encoded, 1)
	raw, err := base64.StdEncoding.DecodeString(encoded[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, []byte{'A', 0xA4, 'o', ' ', '?'}, raw)
	assert.Equal(t, usecase.EncodingCP850, encoded[0].Encoding)

	_, err = uc.ListPending(ctx, "utf-16")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.MarkPrinted(ctx, job.ID))
	pending, err := uc.ListPending(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.ErrorIs(t, uc.MarkPrinted(ctx, 404), domain.ErrNotFound)
}
