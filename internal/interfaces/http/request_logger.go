package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Abasto-api/pkg/logger"
)

// HeaderRequestID cabecera con el identificador único de la petición.
const HeaderRequestID = "X-Request-Id"

// RequestLogger middleware que emite una línea de log estructurada por petición:
// método, ruta, status, latencia y request id. La severidad sigue la clase del
// status (5xx = error, 4xx = warn, resto = info).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http_request")

		return err
	}
}
