package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Darken moves a #rrggbb color towards black by pct percent.
func Darken(hex string, pct float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	f := 1 - pct/100
	return formatHex(float64(r)*f, float64(g)*f, float64(b)*f)
}

// Lighten moves a #rrggbb color towards white by pct percent.
func Lighten(hex string, pct float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	f := pct / 100
	return formatHex(
		float64(r)+(255-float64(r))*f,
		float64(g)+(255-float64(g))*f,
		float64(b)+(255-float64(b))*f,
	)
}

// RGB returns the channels of a #rrggbb color.
func RGB(hex string) (uint8, uint8, uint8, bool) {
	return parseHex(hex)
}

func parseHex(hex string) (uint8, uint8, uint8, bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func formatHex(r, g, b float64) string {
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
