package grid

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// SortRows reorders the rows below the header row by the values in column
// byCol. Values compare numerically when both parse as finite numbers and as
// plain strings otherwise. The sort is stable and row 0 never moves.
func SortRows(g Grid, byCol int, descending bool) Grid {
	if g.RowCount() < 3 || byCol < 0 {
		return g.Clone()
	}
	rows := g.Rows()
	body := rows[1:]

	key := func(row []string) string {
		if byCol < len(row) {
			return row[byCol]
		}
		return ""
	}
	sort.SliceStable(body, func(i, j int) bool {
		a, b := key(body[i]), key(body[j])
		if descending {
			a, b = b, a
		}
		return compareCells(a, b) < 0
	})
	return Trim(FromRows(rows))
}

func compareCells(a, b string) int {
	if x, ok := parseNumber(a); ok {
		if y, ok := parseNumber(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(a, b)
}

// parseNumber reports s as a finite number. Blank text is not a number, so a
// blank key compares as text against numbers too.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
