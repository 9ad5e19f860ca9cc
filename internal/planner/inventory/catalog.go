package inventory

import "github.com/kuhatje/Spur-AMP/internal/planner/layout"

// ============================================================
// Panel catalog
// ============================================================

// PanelSpec is the catalog entry of one panel type. Width and height are in
// feet, thickness in inches, weight in pounds, price in USD.
type PanelSpec struct {
	Type             layout.PanelType `json:"type"`
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	Width            float64          `json:"width"`
	Height           float64          `json:"height"`
	Thickness        float64          `json:"thickness"`
	Material         string           `json:"material"`
	Weight           float64          `json:"weight"`
	Price            float64          `json:"price"`
	FireRating       string           `json:"fireRating"`
	InsulationRValue float64          `json:"insulationRValue"`
	Color            string           `json:"color"`
	ModelPath        string           `json:"modelPath,omitempty"`
}

// Catalog is a read-only lookup table keyed by panel type. Entry order is
// kept for reports.
type Catalog struct {
	specs []PanelSpec
	index map[layout.PanelType]int
}

// NewCatalog builds a catalog. Later duplicates of a type override earlier
// ones in place.
func NewCatalog(specs ...PanelSpec) *Catalog {
	c := &Catalog{index: make(map[layout.PanelType]int)}
	for _, s := range specs {
		if i, ok := c.index[s.Type]; ok {
			c.specs[i] = s
			continue
		}
		c.index[s.Type] = len(c.specs)
		c.specs = append(c.specs, s)
	}
	return c
}

// Lookup returns the spec for t.
func (c *Catalog) Lookup(t layout.PanelType) (PanelSpec, bool) {
	i, ok := c.index[t]
	if !ok {
		return PanelSpec{}, false
	}
	return c.specs[i], true
}

// Specs returns the entries in catalog order.
func (c *Catalog) Specs() []PanelSpec {
	return append([]PanelSpec(nil), c.specs...)
}

// Color returns the display color of t, or fallback when t is not listed.
func (c *Catalog) Color(t layout.PanelType, fallback string) string {
	if s, ok := c.Lookup(t); ok && s.Color != "" {
		return s.Color
	}
	return fallback
}

// DefaultCatalog is the standard Daylun product line.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		PanelSpec{
			Type:             layout.StructuralPanel,
			SKU:              "DLN-PNL-4X8-STD",
			Name:             "Daylun Standard Panel 4×8",
			Category:         "Wall Panel",
			Width:            4,
			Height:           8,
			Thickness:        6.5,
			Material:         "EPS Core with OSB Facing",
			Weight:           85,
			Price:            90,
			FireRating:       "Class A",
			InsulationRValue: 22.5,
			Color:            "#2E8B57",
			ModelPath:        "/models/panels/daylun-4x8-panel.glb",
		},
		PanelSpec{
			Type:             layout.CornerPanel,
			SKU:              "DLN-PNL-CRN-STD",
			Name:             "Daylun Corner Panel",
			Category:         "Corner Reinforcement",
			Width:            4,
			Height:           8,
			Thickness:        6.5,
			Material:         "EPS Core with OSB Facing",
			Weight:           95,
			Price:            110,
			FireRating:       "Class A",
			InsulationRValue: 22.5,
			Color:            "#228B22",
			ModelPath:        "/models/panels/daylun-corner-panel.glb",
		},
		PanelSpec{
			Type:             layout.FloorPanel,
			SKU:              "DLN-PNL-FLR-STD",
			Name:             "Daylun Floor Panel",
			Category:         "Floor System",
			Width:            4,
			Height:           8,
			Thickness:        8,
			Material:         "OSB with Structural Core",
			Weight:           75,
			Price:            85,
			FireRating:       "Class A",
			InsulationRValue: 15,
			Color:            "#8FBC8F",
			ModelPath:        "/models/panels/daylun-floor-panel.glb",
		},
	)
}
