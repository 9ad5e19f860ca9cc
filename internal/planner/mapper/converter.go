package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/models"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
)

// ErrExportFailure reports that an export artifact could not be written. The
// building is never affected.
var ErrExportFailure = errors.New("export failed")

// Interchange defaults, in feet.
const (
	DefaultCellSizeFeet    = 8.0
	DefaultStoryHeightFeet = 10.0
)

const cornerNotes = "Rotate L-shaped placeholder to face exterior corner"

// Families maps panel types to the Revit family the importer places.
var Families = map[layout.PanelType]string{
	layout.StructuralPanel: "Daylun_Panel_4x8_Placeholder",
	layout.CornerPanel:     "Daylun_CornerPanel_Placeholder",
	layout.FloorPanel:      "Daylun_FloorPanel_Placeholder",
	layout.Empty:           "Daylun_EmptySlot",
}

// ============================================================
// Converter
// ============================================================

// Options configures unit conversion. Non-positive values use the defaults.
type Options struct {
	CellSizeFeet    float64
	StoryHeightFeet float64
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.CellSizeFeet <= 0 {
		o.CellSizeFeet = DefaultCellSizeFeet
	}
	if o.StoryHeightFeet <= 0 {
		o.StoryHeightFeet = DefaultStoryHeightFeet
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Converter struct {
	opts Options
}

func New(opts Options) *Converter {
	return &Converter{opts: opts.withDefaults()}
}

// Convert reads a project file and builds its Revit payload.
func (c *Converter) Convert(r io.Reader) (*models.RevitPayload, error) {
	b, err := parser.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return c.Build(b), nil
}

// Build flattens b into the payload read by the Revit importer.
func (c *Converter) Build(b *layout.Building) *models.RevitPayload {
	opts := c.opts
	counts := map[string]int{}
	for _, t := range layout.PlaceableTypes {
		counts[string(t)] = 0
	}
	counts[string(layout.Empty)] = 0

	payload := &models.RevitPayload{Stories: []models.RevitStory{}}
	total := 0
	for _, s := range b.Stories() {
		story := models.RevitStory{
			StoryNumber:   s.Index + 1,
			ElevationFeet: float64(s.Index) * opts.StoryHeightFeet,
			Components:    []models.RevitComponent{},
		}
		for _, cell := range s.Cells() {
			for _, p := range cell.Panels {
				family, ok := Families[p.Type]
				if !ok || p.Type == layout.Empty {
					continue
				}
				story.Components = append(story.Components, c.component(p, s.Index, family))
				counts[string(p.Type)]++
				total++
			}
		}
		payload.Stories = append(payload.Stories, story)
	}

	payload.Metadata = models.RevitMetadata{
		GeneratedAt:     opts.Now().UTC().Format(time.RFC3339Nano),
		CellSizeFeet:    opts.CellSizeFeet,
		StoryHeightFeet: opts.StoryHeightFeet,
		TotalFloors:     b.StoryCount(),
		TotalPanels:     total,
		ComponentCounts: counts,
	}
	return payload
}

func (c *Converter) component(p layout.PanelInstance, story int, family string) models.RevitComponent {
	cell := c.opts.CellSizeFeet
	comp := models.RevitComponent{
		ID:     InstanceID(p.Type, story, p.X, p.Y),
		Type:   string(p.Type),
		Family: family,
		Story:  story + 1,
		Position: models.Position{
			X:         float64(p.X) * cell,
			Y:         float64(p.Y) * cell,
			Elevation: float64(story) * c.opts.StoryHeightFeet,
		},
		RotationDeg: int(p.Rotation),
		FootprintCenter: models.Point{
			X: float64(p.X)*cell + cell/2,
			Y: float64(p.Y)*cell + cell/2,
		},
	}
	if p.Type == layout.CornerPanel {
		comp.Notes = cornerNotes
	}
	return comp
}

// InstanceID is the stable component id for a panel: type, 1-based story
// and grid cell.
func InstanceID(t layout.PanelType, story, x, y int) string {
	return fmt.Sprintf("%s_S%d_%d_%d", t, story+1, x, y)
}

// BuildRevitPayload is a shorthand for New(opts).Build(b).
func BuildRevitPayload(b *layout.Building, opts Options) *models.RevitPayload {
	return New(opts).Build(b)
}

// ============================================================
// Writers
// ============================================================

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	return nil
}

// WriteFileAtomic writes through fn into a temp file next to path and renames
// it into place, so readers never see a partial file.
func WriteFileAtomic(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create dir: %v", ErrExportFailure, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrExportFailure, err)
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		if errors.Is(err, ErrExportFailure) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", ErrExportFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename: %v", ErrExportFailure, err)
	}
	return nil
}

// WriteRevitPayload stores the payload where the Revit importer picks it up.
func WriteRevitPayload(path string, payload *models.RevitPayload) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return WriteJSON(w, payload)
	})
}

// CopyFileAtomic replaces dst with the contents of src without exposing a
// partial file.
func CopyFileAtomic(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrExportFailure, src, err)
	}
	defer f.Close()

	return WriteFileAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, f)
		return err
	})
}
