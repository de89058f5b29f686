// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one "http" entry per request. 5xx responses are logged at
// error level, 4xx at warn, everything else at info.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		kv := []any{
			"method", c.Method(),
			"path", c.OriginalURL(),
			"route", c.Route().Path,
			"status", status,
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"request_id", reqID,
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Errorw("http", append(kv, "error", err)...)
		case status >= fiber.StatusBadRequest:
			log.Warnw("http", kv...)
		default:
			log.Infow("http", kv...)
		}
		return err
	}
}
