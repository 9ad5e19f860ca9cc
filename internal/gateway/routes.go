package gateway

import (
	"github.com/gofiber/fiber/v3"

	"github.com/kuhatje/Spur-AMP/internal/gateway/handlers"
	"github.com/kuhatje/Spur-AMP/internal/gateway/proxy"
)

const apiPrefix = "/api/v1"

// Register mounts health, docs and the proxied API on app.
func Register(app *fiber.App, converter, projects *proxy.Upstream) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(converter, projects))
	app.Get("/health/startup", handlers.StartupProbe)

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(apiPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Panel Layout Planner API v1",
			"status":  "ok",
		})
	})

	// Converter Service: /api/v1/convert/<route> -> <converter>/<route>
	api.All("/convert/*", converter.Handler(apiPrefix+"/convert"))

	// Projects Service
	toProjects := projects.Handler(apiPrefix)
	api.Post("/login", toProjects)
	api.Post("/logout", toProjects)
	api.All("/projects", toProjects)
	api.All("/projects/*", toProjects)
}
