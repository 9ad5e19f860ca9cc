package geometry

import "math"

// ============================================================
// Polygon helpers
// ============================================================

// Contains reports whether p lies inside poly (even-odd rule). Points exactly
// on an edge may land on either side.
func Contains(poly []Point, p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// SignedArea is positive for counter-clockwise polygons.
func SignedArea(poly []Point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the absolute polygon area.
func Area(poly []Point) float64 {
	return math.Abs(SignedArea(poly))
}

// Triangulate splits a simple polygon into triangles by ear clipping and
// returns vertex index triples, wound counter-clockwise.
func Triangulate(poly []Point) [][3]int {
	n := len(poly)
	if n < 3 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if SignedArea(poly) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	var tris [][3]int
	guard := 0
	for len(idx) > 3 && guard < n*n {
		guard++
		clipped := false
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(poly, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func isEar(poly []Point, idx []int, prev, cur, next int) bool {
	a, b, c := poly[prev], poly[cur], poly[next]
	if cross(a, b, c) <= 0 {
		return false
	}
	for _, k := range idx {
		if k == prev || k == cur || k == next {
			continue
		}
		if inTriangle(poly[k], a, b, c) {
			return false
		}
	}
	return true
}

func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func inTriangle(p, a, b, c Point) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}
