package observability

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware_RegistraRutaYCodigo(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/api/facturas/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/facturas/15", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	body := scrape(t, app)
	assert.Contains(t, body, `ferrefactura_http_requests_total{code="418",method="GET",route="/api/facturas/:id"} 1`)
	assert.Contains(t, body, `ferrefactura_http_request_duration_seconds_bucket{method="GET",route="/api/facturas/:id"`)
}

func TestInvoiceCreated_Contador(t *testing.T) {
	m := NewMetrics()
	m.InvoiceCreated()
	m.InvoiceCreated()

	app := fiber.New()
	app.Get("/metrics", m.Handler())
	assert.Contains(t, scrape(t, app), "ferrefactura_invoices_created_total 2")
}

func TestMetrics_NilEsSeguro(t *testing.T) {
	var m *Metrics
	m.InvoiceCreated()

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
