package layout

import "fmt"

// ============================================================
// Story
// ============================================================

// Default story dimensions in cells.
const (
	DefaultWidth  = 10
	DefaultHeight = 10
)

// Cell is a non-empty grid position and its panels in insertion order.
type Cell struct {
	X      int
	Y      int
	Panels []PanelInstance
}

// Story is one building level. Cells live in a row-major arena indexed by
// y*Width+x; an empty slot is an absent cell.
type Story struct {
	Index  int
	Width  int
	Height int
	cells  [][]PanelInstance
}

// NewStory allocates an empty story. Non-positive sizes fall back to the
// defaults.
func NewStory(index, width, height int) *Story {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Story{
		Index:  index,
		Width:  width,
		Height: height,
		cells:  make([][]PanelInstance, width*height),
	}
}

// InBounds reports whether (x, y) is a cell of this story.
func (s *Story) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

func (s *Story) slot(x, y int) int { return y*s.Width + x }

// Panels returns a copy of the panels at (x, y).
func (s *Story) Panels(x, y int) []PanelInstance {
	if !s.InBounds(x, y) {
		return nil
	}
	src := s.cells[s.slot(x, y)]
	if len(src) == 0 {
		return nil
	}
	out := make([]PanelInstance, len(src))
	copy(out, src)
	return out
}

// Panel looks up the first panel of the given type at (x, y).
func (s *Story) Panel(x, y int, t PanelType) (PanelInstance, bool) {
	if !s.InBounds(x, y) {
		return PanelInstance{}, false
	}
	for _, p := range s.cells[s.slot(x, y)] {
		if p.Type == t {
			return p, true
		}
	}
	return PanelInstance{}, false
}

// AddPanel places a new panel. It fails without mutating the story when the
// cell is out of bounds, the panel is not placeable, or a panel of the same
// class already occupies the cell.
func (s *Story) AddPanel(x, y int, t PanelType, rot Orientation) error {
	if !t.Placeable() {
		return fmt.Errorf("%w: type %q cannot be placed", ErrInvalidPanel, t)
	}
	return s.Restore(PanelInstance{Type: t, X: x, Y: y, Rotation: rot})
}

// Restore inserts a stored panel, accepting legacy types. Used when loading
// project files; the occupancy rules are the same as AddPanel.
func (s *Story) Restore(p PanelInstance) error {
	if !s.InBounds(p.X, p.Y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, p.X, p.Y, s.Width, s.Height)
	}
	if p.Type == Empty || p.Type == "" {
		return fmt.Errorf("%w: empty slot cannot be stored", ErrInvalidPanel)
	}
	if _, err := ParsePanelType(string(p.Type)); err != nil {
		return err
	}
	if !p.Rotation.Valid() {
		return fmt.Errorf("%w: rotation %d", ErrInvalidPanel, p.Rotation)
	}
	if p.Type.FloorClass() && p.Rotation != Rot0 {
		p.Rotation = Rot0
	}

	i := s.slot(p.X, p.Y)
	for _, existing := range s.cells[i] {
		if existing.Type.sameClass(p.Type) {
			return fmt.Errorf("%w: (%d,%d) holds %s", ErrInvalidPlacement, p.X, p.Y, existing.Type)
		}
	}
	s.cells[i] = append(s.cells[i], p)
	return nil
}

// RemovePanel removes the first panel of type t at (x, y).
func (s *Story) RemovePanel(x, y int, t PanelType) error {
	if !s.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	i := s.slot(x, y)
	for k, p := range s.cells[i] {
		if p.Type != t {
			continue
		}
		s.cells[i] = append(s.cells[i][:k:k], s.cells[i][k+1:]...)
		if len(s.cells[i]) == 0 {
			s.cells[i] = nil
		}
		return nil
	}
	return fmt.Errorf("%w: no %s at (%d,%d)", ErrNotFound, t, x, y)
}

// RotatePanel turns the first panel of type t at (x, y) a quarter turn.
// Floor-class panels are stored unrotated and stay at 0.
func (s *Story) RotatePanel(x, y int, t PanelType) error {
	if !s.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	cell := s.cells[s.slot(x, y)]
	for k := range cell {
		if cell[k].Type == t {
			if !t.FloorClass() {
				cell[k].Rotation = cell[k].Rotation.Next()
			}
			return nil
		}
	}
	return fmt.Errorf("%w: no %s at (%d,%d)", ErrNotFound, t, x, y)
}

// Clear empties every cell.
func (s *Story) Clear() {
	for i := range s.cells {
		s.cells[i] = nil
	}
}

// replace puts p into its cell, dropping any panel of the same class.
func (s *Story) replace(p PanelInstance) {
	i := s.slot(p.X, p.Y)
	kept := s.cells[i][:0:0]
	for _, existing := range s.cells[i] {
		if !existing.Type.sameClass(p.Type) {
			kept = append(kept, existing)
		}
	}
	s.cells[i] = append(kept, p)
}

// Cells returns the non-empty cells in row-major order.
func (s *Story) Cells() []Cell {
	var out []Cell
	for i, panels := range s.cells {
		if len(panels) == 0 {
			continue
		}
		cp := make([]PanelInstance, len(panels))
		copy(cp, panels)
		out = append(out, Cell{X: i % s.Width, Y: i / s.Width, Panels: cp})
	}
	return out
}

// PanelCount returns the number of stored panels.
func (s *Story) PanelCount() int {
	n := 0
	for _, panels := range s.cells {
		n += len(panels)
	}
	return n
}

// Clone returns a deep copy.
func (s *Story) Clone() *Story {
	c := NewStory(s.Index, s.Width, s.Height)
	for i, panels := range s.cells {
		if len(panels) == 0 {
			continue
		}
		c.cells[i] = append([]PanelInstance(nil), panels...)
	}
	return c
}
