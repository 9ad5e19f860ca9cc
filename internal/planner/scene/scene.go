package scene

import (
	"sort"

	"github.com/kuhatje/Spur-AMP/internal/planner/geometry"
	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
)

// ============================================================
// Scene constants (model units, one cell = 1)
// ============================================================

const (
	// PreviewStoryHeight is the vertical distance between stories in the
	// preview. The interchange payload uses feet instead.
	PreviewStoryHeight = 3.0
	FloorThickness     = 0.15
	PanelThickness     = 0.18
)

const fallbackColor = "#A0A0A0"

// PlateStyle selects how a story plate is drawn.
type PlateStyle string

const (
	PlateGround PlateStyle = "ground"
	PlateActive PlateStyle = "active"
	PlateUpper  PlateStyle = "upper"
)

// Plate is the cutting plane of one story. The ground story is always
// opaque; upper stories are dashed, the active one highlighted.
type Plate struct {
	Story     int              `json:"story"`
	Style     PlateStyle       `json:"style"`
	Elevation float64          `json:"elevation"`
	Footprint []geometry.Point `json:"footprint"`
	Polygon   []geometry.Point `json:"polygon"`
	Fill      string           `json:"fill"`
	Stroke    string           `json:"stroke"`
	LineWidth float64          `json:"lineWidth"`
	Dashed    bool             `json:"dashed"`
}

// SortKey orders solids back to front.
type SortKey struct {
	Story int `json:"story"`
	Depth int `json:"depth"`
}

// Solid is the 3D geometry of one panel instance. Footprint is extruded from
// Base to Top; Boxes is the same volume as axis-aligned prisms.
type Solid struct {
	Kind      layout.PanelType   `json:"kind"`
	Story     int                `json:"story"`
	X         int                `json:"x"`
	Y         int                `json:"y"`
	Rotation  layout.Orientation `json:"rotation"`
	Color     string             `json:"color"`
	Footprint []geometry.Point   `json:"footprint"`
	Base      float64            `json:"base"`
	Top       float64            `json:"top"`
	Boxes     []geometry.Box     `json:"boxes"`
	Faces     []geometry.Face    `json:"faces"`
	SortKey   SortKey            `json:"sortKey"`
}

// Scene is the renderable description of a building snapshot.
type Scene struct {
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Stories     int                 `json:"stories"`
	ActiveStory int                 `json:"activeStory"`
	Projection  geometry.Projection `json:"projection"`
	Plates      []Plate             `json:"plates"`
	Solids      []Solid             `json:"solids"`
}

// Config tunes scene generation.
type Config struct {
	Projection      geometry.Projection
	CornerThickness float64
	Catalog         *inventory.Catalog
}

// DefaultConfig is the preview canvas setup.
func DefaultConfig() Config {
	return Config{
		Projection:      geometry.DefaultProjection(),
		CornerThickness: geometry.DefaultCornerThickness,
		Catalog:         inventory.DefaultCatalog(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Projection.Scale <= 0 {
		c.Projection = d.Projection
	}
	if c.CornerThickness <= 0 || c.CornerThickness >= 0.5 {
		c.CornerThickness = d.CornerThickness
	}
	if c.Catalog == nil {
		c.Catalog = d.Catalog
	}
	return c
}

// ============================================================
// Build
// ============================================================

// Build converts a building snapshot into plates and solids. It does not
// modify b, and equal snapshots give equal scenes.
func Build(b *layout.Building, cfg Config) *Scene {
	cfg = cfg.withDefaults()
	proj := cfg.Projection

	sc := &Scene{
		Stories:     b.StoryCount(),
		ActiveStory: b.ActiveIndex(),
		Projection:  proj,
	}

	for _, s := range b.Stories() {
		if s.Width > sc.Width {
			sc.Width = s.Width
		}
		if s.Height > sc.Height {
			sc.Height = s.Height
		}

		elev := float64(s.Index) * PreviewStoryHeight
		sc.Plates = append(sc.Plates, buildPlate(s, elev, b.ActiveIndex(), proj))

		for _, c := range s.Cells() {
			for _, p := range c.Panels {
				solid, ok := buildSolid(p, s.Index, elev, cfg)
				if ok {
					sc.Solids = append(sc.Solids, solid)
				}
			}
		}
	}

	sort.SliceStable(sc.Solids, func(i, j int) bool {
		a, b := sc.Solids[i].SortKey, sc.Solids[j].SortKey
		if a.Story != b.Story {
			return a.Story > b.Story
		}
		return a.Depth > b.Depth
	})
	return sc
}

func buildPlate(s *layout.Story, elev float64, active int, proj geometry.Projection) Plate {
	w, h := float64(s.Width), float64(s.Height)
	p := Plate{
		Story:     s.Index,
		Elevation: elev,
		Footprint: geometry.Box{Width: w, Depth: h}.Footprint(),
		Polygon:   geometry.Plate(0, 0, w, h, elev, proj),
	}
	switch {
	case s.Index == 0:
		p.Style, p.Fill, p.Stroke, p.LineWidth = PlateGround, "#C0C0C0", "#000000", 2
	case s.Index == active:
		p.Style, p.Fill, p.Stroke, p.LineWidth = PlateActive, "rgba(4,116,188,0.4)", "#0474BC", 3
		p.Dashed = true
	default:
		p.Style, p.Fill, p.Stroke, p.LineWidth = PlateUpper, "rgba(160,160,160,0.6)", "#606060", 2
		p.Dashed = true
	}
	return p
}

func buildSolid(p layout.PanelInstance, story int, elev float64, cfg Config) (Solid, bool) {
	x, y := float64(p.X), float64(p.Y)
	s := Solid{
		Kind:     p.Type,
		Story:    story,
		X:        p.X,
		Y:        p.Y,
		Rotation: p.Rotation,
		Color:    cfg.Catalog.Color(p.Type, fallbackColor),
		SortKey:  SortKey{Story: story, Depth: p.X + p.Y},
	}

	wallBase := elev + FloorThickness
	wallHeight := PreviewStoryHeight - FloorThickness

	switch p.Type {
	case layout.FloorPanel:
		s.Boxes = []geometry.Box{{X: x, Y: y, Z: elev, Width: 1, Depth: 1, Height: FloorThickness}}
	case layout.StructuralPanel:
		box := edgeSlab(p.Rotation, PanelThickness)
		box.X += x
		box.Y += y
		box.Z, box.Height = wallBase, wallHeight
		s.Boxes = []geometry.Box{box}
	case layout.CornerPanel:
		shape, err := geometry.CornerLShape(int(p.Rotation), cfg.CornerThickness)
		if err != nil {
			return Solid{}, false
		}
		segs, _ := geometry.CornerSegments(int(p.Rotation), cfg.CornerThickness)
		s.Footprint = geometry.TranslatePolygon(shape[:], x, y)
		for _, r := range segs {
			r = r.Offset(x, y)
			s.Boxes = append(s.Boxes, geometry.Box{X: r.X, Y: r.Y, Z: wallBase, Width: r.W, Depth: r.H, Height: wallHeight})
		}
	default:
		// legacy and sentinel types have no geometry
		return Solid{}, false
	}

	if s.Footprint == nil {
		s.Footprint = s.Boxes[0].Footprint()
	}
	s.Base = s.Boxes[0].Z
	s.Top = s.Boxes[0].Z + s.Boxes[0].Height
	s.Faces = projectBoxes(s.Boxes, s.Color, cfg.Projection)
	return s, true
}

// edgeSlab is the cell-local footprint of a structural panel: a thin slab
// along the edge picked by rotation (0 -y, 90 -x, 180 +y, 270 +x).
func edgeSlab(rot layout.Orientation, t float64) geometry.Box {
	switch rot {
	case layout.Rot90:
		return geometry.Box{Width: t, Depth: 1}
	case layout.Rot180:
		return geometry.Box{Y: 1 - t, Width: 1, Depth: t}
	case layout.Rot270:
		return geometry.Box{X: 1 - t, Width: t, Depth: 1}
	default:
		return geometry.Box{Width: 1, Depth: t}
	}
}

// projectBoxes emits prism faces, farther boxes first.
func projectBoxes(boxes []geometry.Box, color string, proj geometry.Projection) []geometry.Face {
	ordered := append([]geometry.Box(nil), boxes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return boxDepth(ordered[i]) > boxDepth(ordered[j])
	})

	var faces []geometry.Face
	for _, b := range ordered {
		faces = append(faces, geometry.Prism(b, proj, color)...)
	}
	return faces
}

func boxDepth(b geometry.Box) float64 {
	return b.X + b.Width/2 + b.Y + b.Depth/2
}
