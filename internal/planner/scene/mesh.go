package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kuhatje/Spur-AMP/internal/planner/geometry"
)

// Mesh is a flat-shaded triangle mesh in model space (z up).
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	Indices   []uint32
}

// Extrude turns a solid's footprint into a closed prism: two caps plus one
// quad per footprint edge. Every face has its own vertices.
func Extrude(s Solid) (Mesh, error) {
	poly := s.Footprint
	if geometry.SignedArea(poly) < 0 {
		poly = reversed(poly)
	}
	tris := geometry.Triangulate(poly)
	if len(tris) != len(poly)-2 {
		return Mesh{}, fmt.Errorf("footprint of %s at (%d,%d) cannot be triangulated", s.Kind, s.X, s.Y)
	}

	var m Mesh
	up := r3.Vec{Z: 1}
	down := r3.Vec{Z: -1}
	for _, t := range tris {
		a, b, c := poly[t[0]], poly[t[1]], poly[t[2]]
		m.addTriangle(vec(a, s.Top), vec(b, s.Top), vec(c, s.Top), up)
		m.addTriangle(vec(a, s.Base), vec(c, s.Base), vec(b, s.Base), down)
	}

	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		a0, b0 := vec(a, s.Base), vec(b, s.Base)
		a1, b1 := vec(a, s.Top), vec(b, s.Top)
		n := r3.Unit(r3.Cross(r3.Sub(b0, a0), r3.Sub(a1, a0)))
		m.addTriangle(a0, b0, b1, n)
		m.addTriangle(a0, b1, a1, n)
	}
	return m, nil
}

func (m *Mesh) addTriangle(a, b, c, n r3.Vec) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, a, b, c)
	m.Normals = append(m.Normals, n, n, n)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

func vec(p geometry.Point, z float64) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: z}
}

func reversed(poly []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}
