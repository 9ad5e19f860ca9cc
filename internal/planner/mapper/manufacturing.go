package mapper

import (
	"time"

	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/models"
)

// DefaultProjectName labels exports that carry no project name.
const DefaultProjectName = "House Builder Project"

// PanelSize is the display size label of a panel type in manufacturing
// exports.
func PanelSize(t layout.PanelType) string {
	switch t {
	case layout.StructuralPanel:
		return "4x8"
	case layout.CornerPanel:
		return "corner"
	case layout.FloorPanel:
		return "floor"
	}
	return string(t)
}

// Manufacturing lists every stored panel per story for the shop floor.
func (c *Converter) Manufacturing(b *layout.Building, project string) *models.Manufacturing {
	if project == "" {
		project = DefaultProjectName
	}
	out := &models.Manufacturing{
		Project:         project,
		Timestamp:       c.opts.Now().UTC().Format(time.RFC3339Nano),
		Stories:         []models.ManufacturingStory{},
		EstimatedHeight: float64(b.StoryCount()) * c.opts.StoryHeightFeet,
	}

	for _, s := range b.Stories() {
		story := models.ManufacturingStory{
			StoryNumber: s.Index + 1,
			Dimensions:  models.Dimensions{Width: s.Width, Height: s.Height},
			Panels:      []models.ManufacturingPanel{},
		}
		for _, cell := range s.Cells() {
			for _, p := range cell.Panels {
				story.Panels = append(story.Panels, models.ManufacturingPanel{
					Type:      string(p.Type),
					Position:  models.GridPoint{X: p.X, Y: p.Y},
					Rotation:  int(p.Rotation),
					PanelSize: PanelSize(p.Type),
				})
				out.TotalPanels++
			}
		}
		out.Stories = append(out.Stories, story)
	}
	return out
}

// BuildManufacturing is a shorthand for New(opts).Manufacturing(b, project).
func BuildManufacturing(b *layout.Building, project string, opts Options) *models.Manufacturing {
	return New(opts).Manufacturing(b, project)
}

// Quote prices every stored panel of b against catalog, stamped with the
// converter clock.
func (c *Converter) Quote(b *layout.Building, catalog *inventory.Catalog, project string) *models.Quote {
	return inventory.BuildQuote(inventory.Aggregate(b, catalog), project, c.opts.Now())
}
