package layout

import "errors"

// Grid model failures. Every one of them leaves the Building unchanged.
var (
	ErrInvalidPlacement = errors.New("cell already holds a panel of the same class")
	ErrNotFound         = errors.New("panel not found")
	ErrStoryUnderflow   = errors.New("cannot remove the last story")
	ErrOutOfBounds      = errors.New("cell out of bounds")
	ErrInvalidPanel     = errors.New("invalid panel")
	ErrStoryIndex       = errors.New("story index out of range")
)
