package geometry

// ============================================================
// Prisms & plates
// ============================================================

// Shading applied to the side faces of a prism, in percent of the base color.
const (
	RightFaceDarken = 15
	TopFaceLighten  = 15
)

// Box is an axis-aligned box in model space. X/Y is the minimum corner of the
// footprint, Z the base elevation.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`  // along x
	Depth  float64 `json:"depth"`  // along y
	Height float64 `json:"height"` // along z
}

// Footprint returns the box outline in the XY plane, counter-clockwise.
func (b Box) Footprint() []Point {
	return []Point{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y + b.Depth},
		{X: b.X, Y: b.Y + b.Depth},
	}
}

// Face is one projected polygon with its fill color.
type Face struct {
	Name    string  `json:"name"`
	Polygon []Point `json:"polygon"`
	Color   string  `json:"color"`
}

// Prism returns the three faces visible from the isometric viewpoint:
// the -x face (left), the -y face (right) and the top.
func Prism(b Box, proj Projection, baseColor string) []Face {
	z0 := b.Z
	z1 := b.Z + b.Height
	x0, x1 := b.X, b.X+b.Width
	y0, y1 := b.Y, b.Y+b.Depth

	left := []Point{
		proj.Project(x0, y1, z0),
		proj.Project(x0, y0, z0),
		proj.Project(x0, y0, z1),
		proj.Project(x0, y1, z1),
	}
	right := []Point{
		proj.Project(x0, y0, z0),
		proj.Project(x1, y0, z0),
		proj.Project(x1, y0, z1),
		proj.Project(x0, y0, z1),
	}
	top := proj.ProjectRect(x0, y0, b.Width, b.Depth, z1)

	return []Face{
		{Name: "left", Polygon: left, Color: baseColor},
		{Name: "right", Polygon: right, Color: Darken(baseColor, RightFaceDarken)},
		{Name: "top", Polygon: top, Color: Lighten(baseColor, TopFaceLighten)},
	}
}

// Plate projects a flat rectangle at elevation z, e.g. a story cutting plane.
func Plate(x, y, w, h, z float64, proj Projection) []Point {
	return proj.ProjectRect(x, y, w, h, z)
}
