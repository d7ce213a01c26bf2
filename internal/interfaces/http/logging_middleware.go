package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
// Los 5xx salen en nivel error; el resto en info.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int64("user_id", GetUserID(c)).
			Interface("request_id", c.Locals("requestid")).
			Msg("request.complete")
		return err
	}
}
