package inventory

import (
	"sort"

	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
)

// Line is the summary row of one panel type. Spec is nil for types the
// catalog does not list; those lines cost and weigh nothing.
type Line struct {
	Type        layout.PanelType `json:"type"`
	Count       int              `json:"count"`
	Spec        *PanelSpec       `json:"spec"`
	TotalCost   float64          `json:"totalCost"`
	TotalWeight float64          `json:"totalWeight"`
}

// Summary is the inventory of a building snapshot.
type Summary struct {
	Counts      map[layout.PanelType]int `json:"counts"`
	Lines       []Line                   `json:"lines"`
	TotalPanels int                      `json:"totalPanels"`
	TotalCost   float64                  `json:"totalCost"`
	TotalWeight float64                  `json:"totalWeight"`
}

// Aggregate counts every stored panel of b and prices the counts against
// catalog. Every catalog type gets a line, even at zero; unknown types seen in
// b follow in name order.
func Aggregate(b *layout.Building, catalog *Catalog) Summary {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	counts := make(map[layout.PanelType]int)
	for _, spec := range catalog.Specs() {
		counts[spec.Type] = 0
	}
	total := 0
	for _, s := range b.Stories() {
		for _, c := range s.Cells() {
			for _, p := range c.Panels {
				counts[p.Type]++
				total++
			}
		}
	}

	sum := Summary{Counts: counts, TotalPanels: total}
	for _, spec := range catalog.Specs() {
		sum.addLine(Line{Type: spec.Type, Count: counts[spec.Type], Spec: &spec})
	}

	var unknown []layout.PanelType
	for t := range counts {
		if _, ok := catalog.Lookup(t); !ok {
			unknown = append(unknown, t)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, t := range unknown {
		sum.addLine(Line{Type: t, Count: counts[t]})
	}
	return sum
}

func (s *Summary) addLine(l Line) {
	if l.Spec != nil {
		l.TotalCost = float64(l.Count) * l.Spec.Price
		l.TotalWeight = float64(l.Count) * l.Spec.Weight
	}
	s.TotalCost += l.TotalCost
	s.TotalWeight += l.TotalWeight
	s.Lines = append(s.Lines, l)
}
