package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Cell keys
// ============================================================

// FormatCellKey builds the "<x>,<y>" key used in project files.
func FormatCellKey(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

// ParseCellKey splits a "<x>,<y>" key. Only the canonical form written by
// FormatCellKey is accepted: whitespace, signs, leading zeros and extra parts
// are rejected.
func ParseCellKey(key string) (int, int, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: cell key %q", ErrMalformedImport, key)
	}

	coords := make([]int, 2)
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" ||
			(len(part) > 1 && part[0] == '0') {
			return 0, 0, fmt.Errorf("%w: cell key %q", ErrMalformedImport, key)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: cell key %q: %v", ErrMalformedImport, key, err)
		}
		coords[i] = v
	}
	return coords[0], coords[1], nil
}
