package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jeancarlo3213/ferrefactura-backend/internal/interfaces/http"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

func TestRequestLogger_RegistraEstadoYRuta(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "/falla", entry["path"])
	assert.Equal(t, float64(fiber.StatusTeapot), entry["status"])
	assert.Equal(t, "info", entry["level"])
}
