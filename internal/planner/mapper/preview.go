package mapper

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kuhatje/Spur-AMP/internal/planner/geometry"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// ============================================================
// Raster preview
// ============================================================

// MaxPreviewSide bounds the longest side of the raster preview in pixels.
// Larger scenes are scaled down to fit.
const MaxPreviewSide = 2048.0

// maxPreviewPoints is MaxPreviewSide in plot points at the canvas resolution.
const maxPreviewPoints = MaxPreviewSide * float64(vg.Inch) / vgimg.DefaultDPI

// RenderPNG writes the isometric preview of sc as a PNG image.
func RenderPNG(sc *scene.Scene, w io.Writer) error {
	p, width, height, err := previewPlot(sc)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	return nil
}

// PreviewImage rasterizes the preview of sc in memory.
func PreviewImage(sc *scene.Scene) (image.Image, error) {
	p, width, height, err := previewPlot(sc)
	if err != nil {
		return nil, err
	}
	c := vgimg.New(width, height)
	p.Draw(draw.New(c))
	return c.Image(), nil
}

func previewPlot(sc *scene.Scene) (*plot.Plot, vg.Length, vg.Length, error) {
	if sc == nil {
		return nil, 0, 0, fmt.Errorf("%w: scene is nil", ErrExportFailure)
	}

	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = color.White

	for _, plate := range sc.Plates {
		poly, err := polygon(plate.Polygon, plate.Fill, plate.Stroke, plate.LineWidth, plate.Dashed)
		if err != nil {
			return nil, 0, 0, err
		}
		p.Add(poly)
	}
	for _, s := range sc.Solids {
		for _, f := range s.Faces {
			fill := f.Color
			if s.Story != sc.ActiveStory {
				fill = fade(fill)
			}
			poly, err := polygon(f.Polygon, fill, "#333333", 0.5, false)
			if err != nil {
				return nil, 0, 0, err
			}
			p.Add(poly)
		}
	}

	minX, minY, maxX, maxY := bounds(sc)
	// screen Y grows downwards, plot Y upwards
	p.X.Min, p.X.Max = minX-svgPadding, maxX+svgPadding
	p.Y.Min, p.Y.Max = -maxY-svgPadding, -minY+svgPadding

	width, height := previewSize(maxX-minX+2*svgPadding, maxY-minY+2*svgPadding)
	return p, vg.Points(width), vg.Points(height), nil
}

// previewSize keeps the aspect ratio and clamps the longest side to
// maxPreviewPoints.
func previewSize(width, height float64) (float64, float64) {
	longest := max(width, height)
	if longest <= maxPreviewPoints {
		return width, height
	}
	k := maxPreviewPoints / longest
	return width * k, height * k
}

func polygon(pts []geometry.Point, fill, stroke string, lineWidth float64, dashed bool) (*plotter.Polygon, error) {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: -pt.Y}
	}
	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	poly.Color = parseColor(fill)
	poly.LineStyle.Color = parseColor(stroke)
	poly.LineStyle.Width = vg.Points(lineWidth)
	if dashed {
		poly.LineStyle.Dashes = []vg.Length{vg.Points(8), vg.Points(4)}
	}
	return poly, nil
}

// fade blends a hex color halfway to white, for stories other than the
// active one.
func fade(hex string) string {
	return geometry.Lighten(hex, 100*inactiveOpacity)
}

// parseColor understands "#rrggbb" and "rgba(r,g,b,a)". Anything else is
// mid gray.
func parseColor(s string) color.Color {
	if r, g, b, ok := geometry.RGB(s); ok {
		return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
	}
	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")"), ",")
		if len(parts) == 4 {
			var ch [4]float64
			ok := true
			for i, part := range parts {
				v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
				if err != nil {
					ok = false
					break
				}
				ch[i] = v
			}
			if ok {
				return color.NRGBA{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2]), A: uint8(ch[3]*255 + 0.5)}
			}
		}
	}
	return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
}
