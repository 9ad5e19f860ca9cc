package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// ============================================================
// Convert Handler
// ============================================================

// Converter serves conversions of a posted project file. Every request
// decodes its own Building, so handlers share no mutable state.
type Converter struct {
	opts    mapper.Options
	catalog *inventory.Catalog
	scene   scene.Config
}

func NewConverter(opts mapper.Options) *Converter {
	return &Converter{
		opts:    opts,
		catalog: inventory.DefaultCatalog(),
		scene:   scene.DefaultConfig(),
	}
}

// Register mounts the conversion routes on r.
func (h *Converter) Register(r fiber.Router) {
	r.Post("/scene", h.Scene)
	r.Post("/render", h.RenderSVG)
	r.Post("/preview", h.Preview)
	r.Post("/glb", h.GLB)
	r.Post("/revit", h.Revit)
	r.Post("/manufacturing", h.Manufacturing)
	r.Post("/gcode", h.GCode)
	r.Post("/inventory", h.Inventory)
	r.Post("/inventory/quote", h.Quote)
	r.Post("/inventory/chart", h.InventoryChart)
}

// readProject takes the project file from a multipart "file" field or from
// the raw body.
func readProject(c fiber.Ctx) (*layout.Building, error) {
	log.Printf("[CONVERTER] %s %s, Content-Type: %s, Content-Length: %d",
		c.Method(), c.Path(), c.Get("Content-Type"), len(c.Body()))

	var data []byte
	if strings.HasPrefix(c.Get("Content-Type"), fiber.MIMEMultipartForm) {
		file, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: file required in multipart/form-data", parser.ErrMalformedImport)
		}
		f, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	} else {
		data = c.Body()
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: body required", parser.ErrMalformedImport)
	}
	return parser.Decode(bytes.NewReader(data))
}

// Scene returns the scene description as JSON.
func (h *Converter) Scene(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "CONVERTER", err)
	}
	return c.JSON(scene.Build(b, h.scene))
}

// Revit returns the interchange payload for the Revit importer.
func (h *Converter) Revit(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "CONVERTER", err)
	}
	payload := mapper.BuildRevitPayload(b, h.opts)
	log.Printf("[CONVERTER] Revit payload: %d stories, %d panels", payload.Metadata.TotalFloors, payload.Metadata.TotalPanels)
	return c.JSON(payload)
}

// Manufacturing returns the per-story panel list. ?project= names the export.
func (h *Converter) Manufacturing(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "CONVERTER", err)
	}
	return c.JSON(mapper.BuildManufacturing(b, c.Query("project"), h.opts))
}

// Inventory returns panel counts, costs and weights.
func (h *Converter) Inventory(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "CONVERTER", err)
	}
	return c.JSON(inventory.Aggregate(b, h.catalog))
}

// Quote returns the priced component list. ?project= names the quote.
func (h *Converter) Quote(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "CONVERTER", err)
	}
	return c.JSON(mapper.New(h.opts).Quote(b, h.catalog, c.Query("project")))
}
