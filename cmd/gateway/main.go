package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/kuhatje/Spur-AMP/internal/common/config"
	"github.com/kuhatje/Spur-AMP/internal/common/middleware"
	"github.com/kuhatje/Spur-AMP/internal/gateway"
	"github.com/kuhatje/Spur-AMP/internal/gateway/proxy"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()
	upstreamTimeout := time.Duration(cfg.WriteTimeout) * time.Second

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
		BodyLimit:    16 * 1024 * 1024,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	converter := proxy.New("converter", cfg.ConverterURL, upstreamTimeout)
	projects := proxy.New("projects", cfg.ProjectsURL, upstreamTimeout)
	gateway.Register(app, converter, projects)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /api/v1/convert to %s, /api/v1/projects to %s", cfg.ConverterURL, cfg.ProjectsURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
