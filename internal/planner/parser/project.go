package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/models"
)

// ErrMalformedImport is returned for any project file that cannot be turned
// into a valid Building. The caller's Building is never touched.
var ErrMalformedImport = errors.New("malformed project file")

// Import limits.
const (
	MaxStoryDimension = 512
	MaxFloors         = 64
)

// ============================================================
// Decode
// ============================================================

// Decode reads one project file. Unknown fields, duplicate object keys and
// trailing data are rejected.
func Decode(r io.Reader) (*layout.Building, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p models.Project
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after project", ErrMalformedImport)
	}
	if err := checkDuplicateKeys(json.NewDecoder(bytes.NewReader(data))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return FromProject(p)
}

// checkDuplicateKeys walks one JSON value token by token. encoding/json keeps
// the last of repeated keys, which would silently drop cells.
func checkDuplicateKeys(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		seen := make(map[string]struct{})
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := kt.(string)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("duplicate key %q", key)
			}
			seen[key] = struct{}{}
			if err := checkDuplicateKeys(dec); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := checkDuplicateKeys(dec); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token()
	return err
}

// FromProject validates a decoded project and builds a Building from it.
// floorNumber is advisory; stories are numbered by position.
func FromProject(p models.Project) (*layout.Building, error) {
	if len(p.Floors) == 0 {
		return nil, fmt.Errorf("%w: no floors", ErrMalformedImport)
	}
	if len(p.Floors) > MaxFloors {
		return nil, fmt.Errorf("%w: %d floors exceeds %d", ErrMalformedImport, len(p.Floors), MaxFloors)
	}

	stories := make([]*layout.Story, 0, len(p.Floors))
	for i, floor := range p.Floors {
		s, err := decodeFloor(i, floor)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}

	b, err := layout.FromStories(stories, p.CurrentFloorIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return b, nil
}

func decodeFloor(index int, floor models.Floor) (*layout.Story, error) {
	if floor.Width <= 0 || floor.Height <= 0 ||
		floor.Width > MaxStoryDimension || floor.Height > MaxStoryDimension {
		return nil, fmt.Errorf("%w: floor %d has size %dx%d", ErrMalformedImport, index, floor.Width, floor.Height)
	}
	s := layout.NewStory(index, floor.Width, floor.Height)

	for key, records := range floor.Components {
		x, y, err := ParseCellKey(key)
		if err != nil {
			return nil, fmt.Errorf("floor %d: %w", index, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: floor %d cell %q is empty", ErrMalformedImport, index, key)
		}
		for _, rec := range records {
			if rec.X != x || rec.Y != y {
				return nil, fmt.Errorf("%w: floor %d cell %q holds panel at (%d,%d)", ErrMalformedImport, index, key, rec.X, rec.Y)
			}
			t, err := layout.ParsePanelType(rec.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: floor %d: %v", ErrMalformedImport, index, err)
			}
			inst := layout.PanelInstance{Type: t, X: x, Y: y, Rotation: layout.Orientation(rec.Rotation)}
			if err := s.Restore(inst); err != nil {
				return nil, fmt.Errorf("%w: floor %d: %v", ErrMalformedImport, index, err)
			}
		}
	}
	return s, nil
}

// ============================================================
// Encode
// ============================================================

// Encode writes b as an indented project file.
func Encode(w io.Writer, b *layout.Building) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToProject(b)); err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return nil
}

// ToProject flattens b into its file representation.
func ToProject(b *layout.Building) models.Project {
	p := models.Project{CurrentFloorIndex: b.ActiveIndex()}
	for _, s := range b.Stories() {
		floor := models.Floor{
			FloorNumber: s.Index,
			Width:       s.Width,
			Height:      s.Height,
			Components:  make(map[string][]models.PanelRecord),
		}
		for _, c := range s.Cells() {
			key := FormatCellKey(c.X, c.Y)
			for _, inst := range c.Panels {
				floor.Components[key] = append(floor.Components[key], models.PanelRecord{
					Type:     string(inst.Type),
					X:        inst.X,
					Y:        inst.Y,
					Rotation: int(inst.Rotation),
				})
			}
		}
		p.Floors = append(p.Floors, floor)
	}
	return p
}
