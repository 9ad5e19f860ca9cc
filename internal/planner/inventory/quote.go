package inventory

import (
	"time"

	"github.com/kuhatje/Spur-AMP/internal/planner/models"
)

// DefaultQuoteProject labels quotes that carry no project name.
const DefaultQuoteProject = "Blueshell Frame Quote"

// BuildQuote turns an inventory summary into a customer quote. Types missing
// from the catalog are quoted under their tag at no cost.
func BuildQuote(sum Summary, project string, now time.Time) *models.Quote {
	if project == "" {
		project = DefaultQuoteProject
	}
	q := &models.Quote{
		Project:    project,
		Timestamp:  now.UTC().Format(time.RFC3339Nano),
		Components: make([]models.QuoteLine, 0, len(sum.Lines)),
		Totals: models.QuoteTotals{
			TotalCost:   sum.TotalCost,
			TotalWeight: sum.TotalWeight,
			TotalPanels: sum.TotalPanels,
		},
	}
	for _, l := range sum.Lines {
		line := models.QuoteLine{
			SKU:        string(l.Type),
			Name:       string(l.Type),
			Quantity:   l.Count,
			TotalPrice: l.TotalCost,
			Weight:     l.TotalWeight,
		}
		if l.Spec != nil {
			line.SKU = l.Spec.SKU
			line.Name = l.Spec.Name
			line.UnitPrice = l.Spec.Price
		}
		q.Components = append(q.Components, line)
	}
	return q
}
