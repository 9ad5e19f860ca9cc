package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/kuhatje/Spur-AMP/internal/gateway/proxy"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe reports that the process is up.
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe reports ready only when every upstream answers its own
// readiness probe.
func ReadinessProbe(upstreams ...*proxy.Upstream) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		services := fiber.Map{}
		ready := true
		for _, u := range upstreams {
			if err := u.Ready(ctx); err != nil {
				services[u.Name] = err.Error()
				ready = false
				continue
			}
			services[u.Name] = "ready"
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "degraded",
				"services": services,
			})
		}
		return c.JSON(fiber.Map{
			"status":   "ready",
			"services": services,
		})
	}
}

func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
