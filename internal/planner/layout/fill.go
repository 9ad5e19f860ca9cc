package layout

// ============================================================
// Bulk fills
// ============================================================

// Edge rotations: a structural panel hugs the edge it sits on.
const (
	bottomEdge = Rot0
	topEdge    = Rot180
	leftEdge   = Rot90
	rightEdge  = Rot270
)

// Corner rotations open the L into the interior.
const (
	topLeftCorner     = Rot0
	topRightCorner    = Rot90
	bottomRightCorner = Rot180
	bottomLeftCorner  = Rot270
)

// FillPerimeter rings a story with structural panels and puts corner panels
// on its four corners. Existing wall-class panels on touched cells are
// replaced; floor panels stay.
func (b *Building) FillPerimeter(index int) error {
	s, err := b.Story(index)
	if err != nil {
		return err
	}
	w, h := s.Width, s.Height

	for x := 1; x < w-1; x++ {
		s.replace(PanelInstance{Type: StructuralPanel, X: x, Y: 0, Rotation: bottomEdge})
		s.replace(PanelInstance{Type: StructuralPanel, X: x, Y: h - 1, Rotation: topEdge})
	}
	for y := 1; y < h-1; y++ {
		s.replace(PanelInstance{Type: StructuralPanel, X: 0, Y: y, Rotation: leftEdge})
		s.replace(PanelInstance{Type: StructuralPanel, X: w - 1, Y: y, Rotation: rightEdge})
	}

	// on 1-wide or 1-tall stories the corners coincide and the last write wins
	s.replace(PanelInstance{Type: CornerPanel, X: 0, Y: h - 1, Rotation: topLeftCorner})
	s.replace(PanelInstance{Type: CornerPanel, X: w - 1, Y: h - 1, Rotation: topRightCorner})
	s.replace(PanelInstance{Type: CornerPanel, X: w - 1, Y: 0, Rotation: bottomRightCorner})
	s.replace(PanelInstance{Type: CornerPanel, X: 0, Y: 0, Rotation: bottomLeftCorner})
	return nil
}

// FillFloor puts one floor panel on every cell of a story, keeping wall-class
// panels.
func (b *Building) FillFloor(index int) error {
	s, err := b.Story(index)
	if err != nil {
		return err
	}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			s.replace(PanelInstance{Type: FloorPanel, X: x, Y: y, Rotation: Rot0})
		}
	}
	return nil
}
