// Package middleware holds the HTTP middleware of the application.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/TrustedSamu/sap-energy-portal/internal/logger"
)

// slowRequestThreshold marks requests worth flagging in the app log.
const slowRequestThreshold = 500 * time.Millisecond

// RequestTiming measures every request and writes the duration to the
// performance log. Slow requests additionally surface in the app log.
func RequestTiming() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		logger.GetPerformanceLogger().WithFields(map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": duration.Milliseconds(),
		}).Info("Request processed")

		if duration > slowRequestThreshold {
			logger.WithRequest(c).WithField("duration_ms", duration.Milliseconds()).
				Warn("Slow request")
		}

		return err
	}
}
