package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/kuhatje/Spur-AMP/internal/common/config"
	"github.com/kuhatje/Spur-AMP/internal/common/middleware"
	"github.com/kuhatje/Spur-AMP/internal/planner/handlers"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
)

// ============================================================
// Converter Service
// ============================================================

func main() {
	cfg := config.Load()
	port := cfg.PortOr("3001")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Converter Service",
		BodyLimit:    16 * 1024 * 1024,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Converter Routes
	// ============================================================

	handlers.NewConverter(mapper.Options{
		CellSizeFeet:    cfg.CellSizeFeet,
		StoryHeightFeet: cfg.StoryHeightFeet,
	}).Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting Converter Service on %s (env: %s, cell %.1f ft, story %.1f ft)",
		addr, cfg.Environment, cfg.CellSizeFeet, cfg.StoryHeightFeet)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
