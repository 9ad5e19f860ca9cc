package inventory

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChart writes an HTML page with two bar charts: panel counts and cost
// per type.
func RenderChart(sum Summary, w io.Writer) error {
	x := make([]string, 0, len(sum.Lines))
	counts := make([]opts.BarData, 0, len(sum.Lines))
	costs := make([]opts.BarData, 0, len(sum.Lines))
	for _, l := range sum.Lines {
		label := string(l.Type)
		if l.Spec != nil && l.Spec.SKU != "" {
			label = l.Spec.SKU
		}
		x = append(x, label)
		counts = append(counts, opts.BarData{Value: l.Count})
		costs = append(costs, opts.BarData{Value: l.TotalCost})
	}

	countBar := charts.NewBar()
	countBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Panel Inventory", Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Panels", Subtitle: fmt.Sprintf("total=%d", sum.TotalPanels)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	countBar.SetXAxis(x).
		AddSeries("count", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	costBar := charts.NewBar()
	costBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cost (USD)",
			Subtitle: fmt.Sprintf("total=$%.2f weight=%.0f lb", sum.TotalCost, sum.TotalWeight),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	costBar.SetXAxis(x).
		AddSeries("cost", costs,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.PageTitle = "Panel Inventory"
	page.AddCharts(countBar, costBar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render inventory chart: %w", err)
	}
	return nil
}
