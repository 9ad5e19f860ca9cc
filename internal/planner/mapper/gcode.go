package mapper

import (
	"fmt"
	"io"
	"strings"

	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
)

// ============================================================
// G-code template
// ============================================================

const (
	mmPerFoot    = 304.8
	mmPerInch    = 25.4
	feedRate     = 1000
	spindleSpeed = 12000
	safeZ        = 5.0
	cutZ         = 1.0
	parkZ        = 50.0
)

// WriteGCode writes a cutting template with one rectangular cut per panel
// type in sum. Corner panels get an extra pass for the L notch. Types without
// a catalog spec or with a zero count are skipped.
func WriteGCode(w io.Writer, sum inventory.Summary) error {
	var b strings.Builder
	b.WriteString("; Panel Layout Planner - G-code Template\n")
	b.WriteString("; Generated for panel cutting operations\n\n")

	b.WriteString("; Initialize\n")
	b.WriteString("G21 ; Set units to millimeters\n")
	b.WriteString("G90 ; Absolute positioning\n")
	fmt.Fprintf(&b, "G0 Z%s ; Lift Z\n", mm(safeZ))
	fmt.Fprintf(&b, "M3 S%d ; Start spindle\n\n", spindleSpeed)

	for _, line := range sum.Lines {
		if line.Count == 0 || line.Spec == nil {
			continue
		}
		width := line.Spec.Width * mmPerFoot
		height := line.Spec.Height * mmPerFoot

		fmt.Fprintf(&b, "; Cutting %d x %s (%s)\n", line.Count, line.Type, line.Spec.SKU)
		fmt.Fprintf(&b, "; Panel dimensions: %sx%smm\n", mm(width), mm(height))
		writeRect(&b, width, height)

		if line.Type == layout.CornerPanel {
			leg := line.Spec.Thickness * mmPerInch
			b.WriteString("; L notch\n")
			fmt.Fprintf(&b, "G0 X%s Y%s ; Move to notch start\n", mm(leg), mm(height))
			fmt.Fprintf(&b, "G0 Z%s ; Lower to cutting height\n", mm(cutZ))
			fmt.Fprintf(&b, "G1 X%s Y%s F%d ; Cut inner leg\n", mm(leg), mm(leg), feedRate)
			fmt.Fprintf(&b, "G1 X%s Y%s F%d ; Cut inner foot\n", mm(width), mm(leg), feedRate)
			fmt.Fprintf(&b, "G0 Z%s ; Lift Z\n\n", mm(safeZ))
		}
	}

	b.WriteString("; Finish\n")
	b.WriteString("M5 ; Stop spindle\n")
	fmt.Fprintf(&b, "G0 Z%s ; Lift Z to safe height\n", mm(parkZ))
	b.WriteString("G0 X0 Y0 ; Return to home\n")
	b.WriteString("M30 ; End program\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	return nil
}

func writeRect(b *strings.Builder, width, height float64) {
	b.WriteString("G0 X0 Y0 ; Move to start\n")
	fmt.Fprintf(b, "G0 Z%s ; Lower to cutting height\n", mm(cutZ))
	fmt.Fprintf(b, "G1 X%s Y0 F%d ; Cut edge 1\n", mm(width), feedRate)
	fmt.Fprintf(b, "G1 X%s Y%s F%d ; Cut edge 2\n", mm(width), mm(height), feedRate)
	fmt.Fprintf(b, "G1 X0 Y%s F%d ; Cut edge 3\n", mm(height), feedRate)
	fmt.Fprintf(b, "G1 X0 Y0 F%d ; Cut edge 4\n", feedRate)
	fmt.Fprintf(b, "G0 Z%s ; Lift Z\n\n", mm(safeZ))
}

func mm(v float64) string {
	return formatFloat(v)
}
