package geometry

import "fmt"

// ============================================================
// Corner L-shape
// ============================================================

// DefaultCornerThickness is the strip width of a corner panel in cell units.
const DefaultCornerThickness = 0.18

// Rect is an axis-aligned rectangle in cell-local or model coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Offset moves the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// CornerLShape returns the L footprint of a corner panel in the unit cell
// [0,1]x[0,1]. The rotation names the direction the L opens to; the inner
// corner sits on the opposite side.
//
//	  0: opens bottom-right (left + top strips)
//	 90: opens bottom-left  (top + right strips)
//	180: opens top-left     (right + bottom strips)
//	270: opens top-right    (bottom + left strips)
func CornerLShape(rotation int, t float64) ([6]Point, error) {
	switch normalizeRotation(rotation) {
	case 0:
		return [6]Point{{0, 0}, {t, 0}, {t, 1 - t}, {1, 1 - t}, {1, 1}, {0, 1}}, nil
	case 90:
		return [6]Point{{1 - t, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 1 - t}, {1 - t, 1 - t}}, nil
	case 180:
		return [6]Point{{0, 0}, {1, 0}, {1, 1}, {1 - t, 1}, {1 - t, t}, {0, t}}, nil
	case 270:
		return [6]Point{{0, 0}, {1, 0}, {1, t}, {t, t}, {t, 1}, {0, 1}}, nil
	}
	return [6]Point{}, fmt.Errorf("corner rotation %d is not a quarter turn", rotation)
}

// CornerSegments splits the L footprint into its two straight strips. The
// first strip is the full-length one; the second covers the rest of the other
// leg, so the two never overlap and their union equals CornerLShape.
func CornerSegments(rotation int, t float64) ([2]Rect, error) {
	switch normalizeRotation(rotation) {
	case 0:
		return [2]Rect{{X: 0, Y: 0, W: t, H: 1}, {X: t, Y: 1 - t, W: 1 - t, H: t}}, nil
	case 90:
		return [2]Rect{{X: 0, Y: 1 - t, W: 1, H: t}, {X: 1 - t, Y: 0, W: t, H: 1 - t}}, nil
	case 180:
		return [2]Rect{{X: 1 - t, Y: 0, W: t, H: 1}, {X: 0, Y: 0, W: 1 - t, H: t}}, nil
	case 270:
		return [2]Rect{{X: 0, Y: 0, W: 1, H: t}, {X: 0, Y: t, W: t, H: 1 - t}}, nil
	}
	return [2]Rect{}, fmt.Errorf("corner rotation %d is not a quarter turn", rotation)
}

// TranslatePolygon offsets every vertex of poly by (dx, dy).
func TranslatePolygon(poly []Point, dx, dy float64) []Point {
	out := make([]Point, len(poly))
	for i, p := range poly {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

func normalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	if r%90 != 0 {
		return -1
	}
	return r
}
