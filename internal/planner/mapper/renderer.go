package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kuhatje/Spur-AMP/internal/planner/geometry"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// ============================================================
// Renderer
// ============================================================

const (
	svgPadding      = 20.0
	inactiveOpacity = 0.45
)

// Renderer draws a scene as an isometric SVG, painter style: plates bottom
// up, then solids in scene order.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the SVG document of sc.
func (r *Renderer) Render(sc *scene.Scene) (string, error) {
	if sc == nil {
		return "", fmt.Errorf("%w: scene is nil", ErrExportFailure)
	}

	minX, minY, maxX, maxY := bounds(sc)
	width := maxX - minX + 2*svgPadding
	height := maxY - minY + 2*svgPadding

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height),
		formatFloat(minX-svgPadding), formatFloat(minY-svgPadding), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range r.renderPlates(sc) {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}
	for _, elem := range r.renderSolids(sc) {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func (r *Renderer) renderPlates(sc *scene.Scene) []string {
	var out []string
	for _, p := range sc.Plates {
		dash := ""
		if p.Dashed {
			dash = ` stroke-dasharray="8 4"`
		}
		out = append(out, fmt.Sprintf(`<polygon id="plate-%d" class="plate %s" points="%s" fill="%s" stroke="%s" stroke-width="%s"%s />`,
			p.Story, p.Style, formatPoints(p.Polygon), p.Fill, p.Stroke, formatFloat(p.LineWidth), dash))
	}
	return out
}

func (r *Renderer) renderSolids(sc *scene.Scene) []string {
	var out []string
	for _, s := range sc.Solids {
		opacity := ""
		if s.Story != sc.ActiveStory {
			opacity = fmt.Sprintf(` opacity="%s"`, formatFloat(inactiveOpacity))
		}
		var faces []string
		for _, f := range s.Faces {
			faces = append(faces, fmt.Sprintf(`<polygon class="%s" points="%s" fill="%s" stroke="#333333" stroke-width="0.5" />`,
				f.Name, formatPoints(f.Polygon), f.Color))
		}
		out = append(out, fmt.Sprintf(`<g id="%s" class="%s"%s>%s</g>`,
			InstanceID(s.Kind, s.Story, s.X, s.Y), s.Kind, opacity, strings.Join(faces, "")))
	}
	return out
}

func bounds(sc *scene.Scene) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(pts []geometry.Point) {
		for _, p := range pts {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	for _, p := range sc.Plates {
		grow(p.Polygon)
	}
	for _, s := range sc.Solids {
		for _, f := range s.Faces {
			grow(f.Polygon)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*100)/100, 'f', -1, 64)
}

func formatPoints(pts []geometry.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}
	return strings.Join(parts, " ")
}
