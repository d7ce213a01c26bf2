package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/analytics"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/auth"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/memory"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/pdf"
	apphttp "github.com/jeancarlo3213/ferrefactura-backend/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: API completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type countingMetrics struct{ created int }

func (m *countingMetrics) InvoiceCreated() { m.created++ }

type apiFixture struct {
	app     *fiber.App
	store   *memory.Store
	metrics *countingMetrics
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	hash, err := auth.HashPassword("clave-admin")
	require.NoError(t, err)

	store := memory.NewStore()
	store.SeedUsers(
		entity.User{ID: 1, Name: "Admin", Username: "admin", PasswordHash: hash, Role: entity.RoleAdministrador, Enabled: true},
		entity.User{ID: 2, Name: "Caja", Username: "caja", PasswordHash: hash, Role: entity.RoleCajero, Enabled: true},
	)
	store.SeedProducts(
		entity.Product{ID: 7, Name: "Cemento", Price: decimal.RequireFromString("10")},
		entity.Product{ID: 8, Name: "Varilla 3/8", Price: decimal.RequireFromString("25")},
	)

	products := memory.NewProductRepository(store)
	users := memory.NewUserRepository(store)
	invoices := memory.NewInvoiceRepository(store)
	discounts := memory.NewDiscountRepository(store)
	prints := memory.NewPrintJobRepository(store)

	m := &countingMetrics{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		UserUC:         usecase.NewUserUseCase(users),
		ProductUC:      usecase.NewProductUseCase(products, nil, nil),
		SpecialPriceUC: usecase.NewSpecialPriceUseCase(memory.NewSpecialPriceRepository(store), products),
		CreateInvoice:  billing.NewCreateInvoiceUseCase(memory.NewTxRunner(store), nil, nil),
		InvoiceUC:      billing.NewInvoiceUseCase(invoices, discounts, nil, nil),
		PDFUC:          billing.NewPDFUseCase(invoices, discounts, products, users, pdf.NewMarotoPDFGenerator("Ferretería Prueba")),
		ReceiptUC:      billing.NewReceiptUseCase(invoices, discounts, products, users, prints, "Ferretería Prueba"),
		CashbookUC: usecase.NewCashbookUseCase(
			memory.NewCashRegisterRepository(store),
			memory.NewDebtorRepository(store),
			memory.NewDebtRecordRepository(store),
			memory.NewDebtPaymentRepository(store),
		),
		PrintUC:        usecase.NewPrintUseCase(prints),
		ReportsUC:      analytics.NewReportsUseCase(memory.NewReportRepository(store), nil, time.UTC),
		InvoiceCounter: m,
		JWTSecret:      testJWTSecret,
	})
	return &apiFixture{app: app, store: store, metrics: m}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// login obtiene un token real por el endpoint de auth.
func (f *apiFixture) login(t *testing.T, username string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/api-token-auth", "", map[string]string{"username": username, "password": "clave-admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FacturaCompletaPdfEImpresion(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodPost, "/api/facturas", token, map[string]any{
		"nombre_cliente": "Don Pedro",
		"costo_envio":    5,
		"productos": []map[string]any{
			{"producto_id": 7, "cantidad": 3, "descuento_por_unidad": 2},
			{"producto_id": 8, "cantidad": 1, "tipo_venta": "Quintal"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID      int64 `json:"id"`
		Factura struct {
			UserID int64           `json:"usuario_id"`
			Total  decimal.Decimal `json:"total"`
		} `json:"factura"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, int64(2), created.Factura.UserID, "usuario_id sale del token")
	// 3×8 + 25 + 5 de envío
	assert.True(t, created.Factura.Total.Equal(decimal.RequireFromString("54")), created.Factura.Total.String())
	assert.Equal(t, 1, f.metrics.created)

	resp = f.do(t, http.MethodGet, "/api/facturas/1", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/facturas/1/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = f.do(t, http.MethodPost, "/api/facturas/1/imprimir", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/get_jobs?encoding=cp850", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var jobs []struct {
		ID       int64  `json:"id"`
		Payload  string `json:"payload"`
		Encoding string `json:"encoding"`
	}
	decodeBody(t, resp, &jobs)
	require.Len(t, jobs, 1)
	assert.NotEmpty(t, jobs[0].Payload)
	assert.Equal(t, "cp850", jobs[0].Encoding)

	resp = f.do(t, http.MethodPost, "/api/mark_printed/1", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/get_jobs", token, nil)
	decodeBody(t, resp, &jobs)
	assert.Empty(t, jobs)
}

func TestRouter_ProductoInexistenteResponde404SinEscribir(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodPost, "/api/facturas", token, map[string]any{
		"productos": []map[string]any{
			{"producto_id": 7, "cantidad": 1},
			{"producto_id": 999, "cantidad": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	invoices, lines, discounts := f.store.Counts()
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
	assert.Zero(t, discounts)
	assert.Zero(t, f.metrics.created)
}

func TestRouter_ValidacionDeCuerpo(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodPost, "/api/facturas", token, map[string]any{
		"productos": []map[string]any{{"producto_id": 7, "cantidad": 0}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "productos[0].cantidad")
}

func TestRouter_DescuentoTotalNegativo(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodPost, "/api/facturas", token, map[string]any{
		"descuento_total": -1,
		"productos":       []map[string]any{{"producto_id": 7, "cantidad": 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestRouter_CuerpoMalformado(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	req := httptest.NewRequest(http.MethodPost, "/api/facturas", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_BODY")
}

func TestRouter_IDNoNumerico(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodGet, "/api/facturas/abc", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "otra"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_SinTokenResponde401(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/productos", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_UsuariosSoloAdministrador(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/usuarios", f.login(t, "caja"), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/usuarios", f.login(t, "admin"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []map[string]any
	decodeBody(t, resp, &users)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "contraseña")
	}
}

func TestRouter_HealthPublico(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, caja y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ProductoDuplicadoResponde409(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "admin")

	resp := f.do(t, http.MethodPost, "/api/productos", token, map[string]any{"nombre": "Cemento", "precio": 12})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_PrecioEspecialDebeSerPositivo(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "admin")

	resp := f.do(t, http.MethodPost, "/api/precios-especiales", token, map[string]any{"producto": 7, "tipo_cliente": "Mayorista", "precio": 0})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/precios-especiales", token, map[string]any{"producto": 7, "tipo_cliente": "Mayorista", "precio": 9.5})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_CajaDiariaCalculaTotales(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodPost, "/api/caja-diaria", token, map[string]any{
		"cuenta_banco": 100, "efectivo": 50, "sencillo": 5, "ingreso_extra": 10, "gastos": 15,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		ID    int64           `json:"id"`
		Total decimal.Decimal `json:"total"`
	}
	decodeBody(t, resp, &out)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("150")), out.Total.String())

	resp = f.do(t, http.MethodPost, "/api/caja-diaria", token, map[string]any{"gastos": -1})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/caja-diaria/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/caja-diaria/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_VentasAnualesOrdenNumerico(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodPost, "/api/facturas", token, map[string]any{
		"nombre_cliente": "Don Pedro",
		"productos": []map[string]any{
			{"producto_id": 7, "cantidad": 3, "descuento_por_unidad": 2},
		},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/ventas-anuales", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `"ventas_por_mes":{"1":`)
	one := strings.Index(body, `{"1":`)
	two := strings.Index(body, `"2":`)
	nine := strings.Index(body, `"9":`)
	ten := strings.Index(body, `"10":`)
	require.True(t, one >= 0 && two >= 0 && nine >= 0 && ten >= 0, body)
	assert.Less(t, one, two)
	assert.Less(t, two, nine)
	assert.Less(t, nine, ten, "10 va después de 9")

	month := int(time.Now().In(time.UTC).Month())
	assert.Contains(t, body, `"`+strconv.Itoa(month)+`":24.00`, "montos como números, no cadenas")
	assert.NotContains(t, body, `:"0"`)
}

func TestRouter_ReportesDensos(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "caja")

	resp := f.do(t, http.MethodGet, "/api/ventas-anuales?year=2024", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var monthly struct {
		Year  int                        `json:"anio"`
		Sales map[string]decimal.Decimal `json:"ventas_por_mes"`
	}
	decodeBody(t, resp, &monthly)
	assert.Equal(t, 2024, monthly.Year)
	assert.Len(t, monthly.Sales, 12)

	resp = f.do(t, http.MethodGet, "/api/ventas-diarias?year=2024&month=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var daily struct {
		Sales map[string]decimal.Decimal `json:"ventas_por_dia"`
	}
	decodeBody(t, resp, &daily)
	assert.Len(t, daily.Sales, 31)

	resp = f.do(t, http.MethodGet, "/api/ventas-diarias?month=13", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{"/api/estadisticas-facturas", "/api/reportes/ganancias", "/api/reportes/ganancias-por-producto"} {
		resp = f.do(t, http.MethodGet, path, token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
