package grid

// Grid is column-major text storage: g[col][row]. Every column has the same
// length; reads outside the stored area return "".
//
// Grid values are treated as immutable. Every mutating function returns a new
// Grid and leaves its argument untouched.
type Grid [][]string

// New returns an all-empty grid of the given size.
func New(cols, rows int) Grid {
	if cols <= 0 {
		return Grid{}
	}
	if rows < 0 {
		rows = 0
	}
	g := make(Grid, cols)
	for i := range g {
		g[i] = make([]string, rows)
	}
	return g
}

// FromRows builds a grid from row-major data. Ragged rows are padded with "".
func FromRows(rows [][]string) Grid {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	g := New(width, len(rows))
	for r, row := range rows {
		for c, v := range row {
			g[c][r] = v
		}
	}
	return g
}

// Normalize pads ragged columns so the grid is rectangular. The input is not modified.
func Normalize(g Grid) Grid {
	height := 0
	for _, col := range g {
		height = max(height, len(col))
	}
	out := New(len(g), height)
	for c, col := range g {
		copy(out[c], col)
	}
	return out
}

func (g Grid) Columns() int { return len(g) }

func (g Grid) RowCount() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Empty() bool {
	return g.Columns() == 0 || g.RowCount() == 0
}

func (g Grid) Cell(col, row int) string {
	if col < 0 || col >= len(g) || row < 0 || row >= len(g[col]) {
		return ""
	}
	return g[col][row]
}

// InBounds reports whether (col, row) addresses stored data.
func (g Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Columns() && row >= 0 && row < g.RowCount()
}

func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for c, col := range g {
		out[c] = append([]string(nil), col...)
	}
	return out
}

// Rows returns a row-major copy of the grid.
func (g Grid) Rows() [][]string {
	rows := make([][]string, g.RowCount())
	for r := range rows {
		rows[r] = make([]string, g.Columns())
		for c := range g {
			rows[r][c] = g[c][r]
		}
	}
	return rows
}

func Equal(a, b Grid) bool {
	if a.Columns() != b.Columns() || a.RowCount() != b.RowCount() {
		return false
	}
	for c := range a {
		for r := range a[c] {
			if a[c][r] != b[c][r] {
				return false
			}
		}
	}
	return true
}

// grow copies g into a grid of at least cols x rows, filling new cells with "".
func grow(g Grid, cols, rows int) Grid {
	out := New(max(cols, g.Columns()), max(rows, g.RowCount()))
	for c, col := range g {
		copy(out[c], col)
	}
	return out
}

// Trim drops trailing all-empty columns, then trailing rows that are empty in
// every remaining column. Leading rows and columns are never dropped.
func Trim(g Grid) Grid {
	cols := g.Columns()
	for cols > 0 && columnEmpty(g[cols-1]) {
		cols--
	}
	rows := g.RowCount()
	if cols == 0 {
		return Grid{}
	}

rowScan:
	for rows > 0 {
		for c := 0; c < cols; c++ {
			if g[c][rows-1] != "" {
				break rowScan
			}
		}
		rows--
	}

	out := make(Grid, cols)
	for c := 0; c < cols; c++ {
		out[c] = append([]string(nil), g[c][:rows]...)
	}
	return out
}

func columnEmpty(col []string) bool {
	for _, v := range col {
		if v != "" {
			return false
		}
	}
	return true
}

// WriteCell grows the grid to cover (col, row), sets the cell and trims.
func WriteCell(g Grid, col, row int, value string) Grid {
	if col < 0 || row < 0 {
		return Trim(g)
	}
	out := grow(g, col+1, row+1)
	out[col][row] = value
	return Trim(out)
}

// InsertColumn splices an empty column at index at. It reports false and
// returns g unchanged when at lies outside the stored columns.
func InsertColumn(g Grid, at int) (Grid, bool) {
	if at < 0 || at >= g.Columns() {
		return g, false
	}
	out := make(Grid, 0, g.Columns()+1)
	for c, col := range g {
		if c == at {
			out = append(out, make([]string, g.RowCount()))
		}
		out = append(out, append([]string(nil), col...))
	}
	return Trim(out), true
}

// InsertRow splices an empty row at index at in every column. It reports false
// when at lies outside the stored rows.
func InsertRow(g Grid, at int) (Grid, bool) {
	if at < 0 || at >= g.RowCount() {
		return g, false
	}
	out := make(Grid, g.Columns())
	for c, col := range g {
		next := make([]string, 0, len(col)+1)
		next = append(next, col[:at]...)
		next = append(next, "")
		next = append(next, col[at:]...)
		out[c] = next
	}
	return Trim(out), true
}

func DeleteColumn(g Grid, at int) (Grid, bool) {
	if at < 0 || at >= g.Columns() {
		return g, false
	}
	out := make(Grid, 0, g.Columns()-1)
	for c, col := range g {
		if c == at {
			continue
		}
		out = append(out, append([]string(nil), col...))
	}
	return Trim(out), true
}

func DeleteRow(g Grid, at int) (Grid, bool) {
	if at < 0 || at >= g.RowCount() {
		return g, false
	}
	out := make(Grid, g.Columns())
	for c, col := range g {
		next := make([]string, 0, len(col)-1)
		next = append(next, col[:at]...)
		next = append(next, col[at+1:]...)
		out[c] = next
	}
	return Trim(out), true
}
