package layout

import "fmt"

// ============================================================
// Panel types
// ============================================================

// PanelType tags a placed component. The string values are the tags stored
// in project files.
type PanelType string

const (
	StructuralPanel PanelType = "panel_4x8"
	CornerPanel     PanelType = "corner_panel"
	FloorPanel      PanelType = "floor_panel"
	Empty           PanelType = "empty"

	// Legacy tags from the door/window product line. Loadable, never placeable.
	LegacyWallPanel   PanelType = "wall_panel"
	LegacyDoorPanel   PanelType = "door_panel"
	LegacyWindowPanel PanelType = "window_panel"
)

// structuralAlias is accepted on input for StructuralPanel.
const structuralAlias = "structural_panel"

// PlaceableTypes lists the types AddPanel accepts, in catalog order.
var PlaceableTypes = []PanelType{StructuralPanel, CornerPanel, FloorPanel}

// ParsePanelType resolves a stored tag. Unknown tags are an error.
func ParsePanelType(s string) (PanelType, error) {
	switch PanelType(s) {
	case StructuralPanel, CornerPanel, FloorPanel, Empty,
		LegacyWallPanel, LegacyDoorPanel, LegacyWindowPanel:
		return PanelType(s), nil
	}
	if s == structuralAlias {
		return StructuralPanel, nil
	}
	return "", fmt.Errorf("%w: unknown panel type %q", ErrInvalidPanel, s)
}

// Placeable reports whether the type may be added through AddPanel.
func (t PanelType) Placeable() bool {
	return t == StructuralPanel || t == CornerPanel || t == FloorPanel
}

// Legacy reports whether the type belongs to the retired product line.
func (t PanelType) Legacy() bool {
	return t == LegacyWallPanel || t == LegacyDoorPanel || t == LegacyWindowPanel
}

// WallClass panels share the wall-plane slot of a cell.
func (t PanelType) WallClass() bool {
	return t == StructuralPanel || t == CornerPanel || t.Legacy()
}

// FloorClass panels are independent of wall-class occupancy.
func (t PanelType) FloorClass() bool {
	return t == FloorPanel
}

func (t PanelType) sameClass(o PanelType) bool {
	return (t.WallClass() && o.WallClass()) || (t.FloorClass() && o.FloorClass())
}

// ============================================================
// Orientation
// ============================================================

// Orientation is a quarter-turn rotation in degrees.
type Orientation int

const (
	Rot0   Orientation = 0
	Rot90  Orientation = 90
	Rot180 Orientation = 180
	Rot270 Orientation = 270
)

// Valid reports whether o is one of the four quarter turns.
func (o Orientation) Valid() bool {
	return o == Rot0 || o == Rot90 || o == Rot180 || o == Rot270
}

// Next returns the orientation a quarter turn further.
func (o Orientation) Next() Orientation {
	return (o + 90) % 360
}

// PanelInstance is one placed panel. It is a value owned by its cell.
type PanelInstance struct {
	Type     PanelType   `json:"type"`
	X        int         `json:"x"`
	Y        int         `json:"y"`
	Rotation Orientation `json:"rotation"`
}
