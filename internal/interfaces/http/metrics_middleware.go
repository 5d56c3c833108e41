package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/javierdrios/Socorro-api/internal/infrastructure/metrics"
)

// MetricsMiddleware cuenta y cronometra cada petición. Usa la plantilla de la
// ruta (no el path crudo) para evitar explosión de cardinalidad por los ids.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" || route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
