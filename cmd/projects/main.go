package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/kuhatje/Spur-AMP/internal/common/config"
	"github.com/kuhatje/Spur-AMP/internal/common/middleware"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
	"github.com/kuhatje/Spur-AMP/internal/projects/handlers"
	"github.com/kuhatje/Spur-AMP/internal/projects/repository"
	"github.com/kuhatje/Spur-AMP/internal/projects/service"
)

// ============================================================
// Projects Service
// ============================================================

func main() {
	cfg := config.Load()
	port := cfg.PortOr("3002")

	db, err := repository.OpenSQLite(cfg.ProjectsDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	exporter := mapper.NewExporter(mapper.Options{
		CellSizeFeet:    cfg.CellSizeFeet,
		StoryHeightFeet: cfg.StoryHeightFeet,
	}, nil, scene.DefaultConfig())
	editor := service.NewEditor(repo, service.NewFileStorage(cfg.ExportDir), exporter, cfg.LayoutJSONPath)
	projectHandler := handlers.NewProjectHandler(repo, service.NewSessionManager(), editor)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Projects Service",
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
		if err := db.PingContext(context.Background()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Project Routes
	// ============================================================

	projectHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting Projects Service on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.ProjectsDBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
