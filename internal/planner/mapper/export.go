package mapper

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// ============================================================
// Export bundle
// ============================================================

// Artifact file names written by Exporter.
const (
	RevitFile         = "daylun-revit-layout.json"
	ManufacturingFile = "manufacturing.json"
	QuoteFile         = "quote.json"
	GLBFile           = "house.glb"
	GCodeFile         = "panels.gcode"
	PreviewFile       = "preview.png"
	SVGFile           = "preview.svg"
)

// Exporter writes the full artifact set of a building into a directory.
type Exporter struct {
	conv    *Converter
	catalog *inventory.Catalog
	scene   scene.Config
}

func NewExporter(opts Options, catalog *inventory.Catalog, cfg scene.Config) *Exporter {
	if catalog == nil {
		catalog = inventory.DefaultCatalog()
	}
	return &Exporter{conv: New(opts), catalog: catalog, scene: cfg}
}

// Export writes every artifact of b into dir and returns the paths written.
// A failing artifact does not stop the others; the returned error joins the
// failures, each wrapping ErrExportFailure.
func (e *Exporter) Export(b *layout.Building, dir, project string) ([]string, error) {
	snap := b.Clone()
	sc := scene.Build(snap, e.scene)

	steps := []struct {
		name  string
		write func(io.Writer) error
	}{
		{RevitFile, func(w io.Writer) error { return WriteJSON(w, e.conv.Build(snap)) }},
		{ManufacturingFile, func(w io.Writer) error { return WriteJSON(w, e.conv.Manufacturing(snap, project)) }},
		{QuoteFile, func(w io.Writer) error { return WriteJSON(w, e.conv.Quote(snap, e.catalog, project)) }},
		{GLBFile, func(w io.Writer) error { return scene.ExportGLB(sc, w) }},
		{GCodeFile, func(w io.Writer) error { return WriteGCode(w, inventory.Aggregate(snap, e.catalog)) }},
		{PreviewFile, func(w io.Writer) error { return RenderPNG(sc, w) }},
		{SVGFile, func(w io.Writer) error {
			svg, err := NewRenderer().Render(sc)
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, svg)
			return err
		}},
	}

	var written []string
	var errs []error
	for _, step := range steps {
		path := filepath.Join(dir, step.name)
		if err := WriteFileAtomic(path, step.write); err != nil {
			log.Printf("[EXPORT] %s failed: %v", step.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", step.name, err))
			continue
		}
		written = append(written, path)
	}
	log.Printf("[EXPORT] %d/%d artifacts written to %s", len(written), len(steps), dir)
	return written, errors.Join(errs...)
}
