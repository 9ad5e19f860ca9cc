package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
)

// StatusFor maps planner errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, parser.ErrMalformedImport),
		errors.Is(err, layout.ErrInvalidPanel),
		errors.Is(err, layout.ErrOutOfBounds):
		return fiber.StatusBadRequest
	case errors.Is(err, layout.ErrNotFound),
		errors.Is(err, layout.ErrStoryIndex):
		return fiber.StatusNotFound
	case errors.Is(err, layout.ErrInvalidPlacement),
		errors.Is(err, layout.ErrStoryUnderflow):
		return fiber.StatusConflict
	}
	// export failures and anything unexpected
	return fiber.StatusInternalServerError
}

// Fail logs err under tag and writes it as a JSON error body.
func Fail(c fiber.Ctx, tag string, err error) error {
	status := StatusFor(err)
	log.Printf("[%s] %d: %v", tag, status, err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
