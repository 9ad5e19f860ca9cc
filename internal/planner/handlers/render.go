package handlers

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// ============================================================
// Render Handlers
// ============================================================

const mimeGLB = "model/gltf-binary"

// RenderSVG returns the isometric preview as SVG.
func (h *Converter) RenderSVG(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "RENDER", err)
	}

	svg, err := mapper.NewRenderer().Render(scene.Build(b, h.scene))
	if err != nil {
		return Fail(c, "RENDER", err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// Preview returns the isometric preview as PNG.
func (h *Converter) Preview(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "RENDER", err)
	}

	var buf bytes.Buffer
	if err := mapper.RenderPNG(scene.Build(b, h.scene), &buf); err != nil {
		return Fail(c, "RENDER", err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// GLB returns the binary glTF model.
func (h *Converter) GLB(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "RENDER", err)
	}

	var buf bytes.Buffer
	if err := scene.ExportGLB(scene.Build(b, h.scene), &buf); err != nil {
		return Fail(c, "RENDER", err)
	}
	log.Printf("[RENDER] GLB: %d bytes", buf.Len())

	c.Set("Content-Type", mimeGLB)
	c.Set("Content-Disposition", `attachment; filename="house.glb"`)
	return c.Send(buf.Bytes())
}

// GCode returns the cutting template for the panels of the project.
func (h *Converter) GCode(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "RENDER", err)
	}

	var buf bytes.Buffer
	if err := mapper.WriteGCode(&buf, inventory.Aggregate(b, h.catalog)); err != nil {
		return Fail(c, "RENDER", err)
	}
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.Send(buf.Bytes())
}

// InventoryChart returns the inventory as an HTML bar chart page.
func (h *Converter) InventoryChart(c fiber.Ctx) error {
	b, err := readProject(c)
	if err != nil {
		return Fail(c, "RENDER", err)
	}

	var buf bytes.Buffer
	if err := inventory.RenderChart(inventory.Aggregate(b, h.catalog), &buf); err != nil {
		return Fail(c, "RENDER", err)
	}
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}
