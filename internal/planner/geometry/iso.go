package geometry

import "math"

// ============================================================
// Isometric projection
// ============================================================

// Fixed axonometric angle. The legacy 0.866 constant agrees with Cos30 to 1e-3.
var (
	Cos30 = math.Cos(math.Pi / 6)
	Sin30 = 0.5
)

// Point is a 2D point, either in model space (grid units) or on screen.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projection holds the screen parameters of an isometric view.
type Projection struct {
	Scale       float64 `json:"scale"`
	HeightScale float64 `json:"heightScale"`
	OffsetX     float64 `json:"offsetX"`
	OffsetY     float64 `json:"offsetY"`
}

// DefaultProjection matches the desktop preview canvas.
func DefaultProjection() Projection {
	return Projection{Scale: 20, HeightScale: 20, OffsetX: 190, OffsetY: 400}
}

// Project maps model coordinates to screen coordinates. Higher z moves the
// point up the screen (smaller screen Y).
func Project(x, y, z, scale, heightScale, offsetX, offsetY float64) Point {
	return Point{
		X: offsetX + (x-y)*Cos30*scale,
		Y: offsetY - (x+y)*Sin30*scale - z*heightScale,
	}
}

// Project is the method form of the package-level Project.
func (p Projection) Project(x, y, z float64) Point {
	return Project(x, y, z, p.Scale, p.HeightScale, p.OffsetX, p.OffsetY)
}

// ProjectRect projects the corners of an axis-aligned rectangle at elevation z.
// Order: (x,y), (x+w,y), (x+w,y+h), (x,y+h).
func ProjectRect(x, y, w, h, z, scale, heightScale, offsetX, offsetY float64) []Point {
	return []Point{
		Project(x, y, z, scale, heightScale, offsetX, offsetY),
		Project(x+w, y, z, scale, heightScale, offsetX, offsetY),
		Project(x+w, y+h, z, scale, heightScale, offsetX, offsetY),
		Project(x, y+h, z, scale, heightScale, offsetX, offsetY),
	}
}

// ProjectRect is the method form of the package-level ProjectRect.
func (p Projection) ProjectRect(x, y, w, h, z float64) []Point {
	return ProjectRect(x, y, w, h, z, p.Scale, p.HeightScale, p.OffsetX, p.OffsetY)
}
