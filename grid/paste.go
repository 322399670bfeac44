package grid

// Payload is row-major clipboard data: p[row][col]. Rows may be ragged.
type Payload [][]string

// Size returns the payload width (its widest row) and height.
func (p Payload) Size() (width, height int) {
	for _, row := range p {
		width = max(width, len(row))
	}
	return width, len(p)
}

// Valid reports whether the payload holds at least one cell.
func (p Payload) Valid() bool {
	w, h := p.Size()
	return w > 0 && h > 0
}

// at reads the payload with both indices wrapped around its size. Positions a
// short row does not reach read as "".
func (p Payload) at(row, col int) string {
	w, h := p.Size()
	r := p[row%h]
	c := col % w
	if c >= len(r) {
		return ""
	}
	return r[c]
}

// Tile repeats p to exactly width x height.
func Tile(p Payload, width, height int) Payload {
	if !p.Valid() || width <= 0 || height <= 0 {
		return nil
	}
	out := make(Payload, height)
	for r := range out {
		out[r] = make([]string, width)
		for c := range out[r] {
			out[r][c] = p.at(r, c)
		}
	}
	return out
}

// Extract copies rect out of g. Cells outside the stored data read as "".
func Extract(g Grid, rect Rect) Payload {
	out := make(Payload, rect.Height())
	for r := range out {
		out[r] = make([]string, rect.Width())
		for c := range out[r] {
			out[r][c] = g.Cell(rect.Min.Col+c, rect.Min.Row+r)
		}
	}
	return out
}

// Fill overwrites dst with p tiled across it, then trims. Cells outside dst
// keep their values.
func Fill(g Grid, p Payload, dst Rect) Grid {
	if !p.Valid() || dst.Min.Col < 0 || dst.Min.Row < 0 {
		return Trim(g)
	}
	out := grow(g, dst.Max.Col+1, dst.Max.Row+1)
	for r := 0; r < dst.Height(); r++ {
		for c := 0; c < dst.Width(); c++ {
			out[dst.Min.Col+c][dst.Min.Row+r] = p.at(r, c)
		}
	}
	return Trim(out)
}

// Clear empties every cell of rect.
func Clear(g Grid, rect Rect) Grid {
	return Fill(g, Payload{{""}}, rect)
}

// Reconcile pastes p at anchor. sel is the active range selection, or nil
// when a single cell is selected. The destination never shrinks below sel and
// grows to fit larger data; a smaller payload repeats to fill it. Reconcile
// returns the new grid and the destination rectangle.
func Reconcile(g Grid, p Payload, anchor Address, sel *Rect) (Grid, Rect) {
	w, h := p.Size()
	if !p.Valid() {
		return Trim(g), RectAt(anchor, 1, 1)
	}
	if w == 1 && h == 1 && sel == nil {
		return WriteCell(g, anchor.Col, anchor.Row, p[0][0]), RectAt(anchor, 1, 1)
	}

	origin := anchor
	if sel != nil {
		origin = sel.Min
		w = max(w, sel.Width())
		h = max(h, sel.Height())
	}
	dst := RectAt(origin, w, h)
	return Fill(g, p, dst), dst
}

// FillRegion computes where an auto-fill from sel toward target lands. The
// fill extends sel along one axis only: horizontally when target shares a row
// with sel, vertically otherwise. It returns the region to write and the
// union of sel and that region; ok is false when target lies inside sel.
func FillRegion(sel Rect, target Address) (dst, union Rect, ok bool) {
	if sel.Contains(target) {
		return Rect{}, sel, false
	}
	dst = sel
	if target.Row >= sel.Min.Row && target.Row <= sel.Max.Row {
		if target.Col > sel.Max.Col {
			dst.Min.Col, dst.Max.Col = sel.Max.Col+1, target.Col
		} else {
			dst.Min.Col, dst.Max.Col = target.Col, sel.Min.Col-1
		}
	} else if target.Row < sel.Min.Row {
		dst.Min.Row, dst.Max.Row = target.Row, sel.Min.Row-1
	} else {
		dst.Min.Row, dst.Max.Row = sel.Max.Row+1, target.Row
	}
	return dst, sel.Union(dst), true
}

// AutoFill replicates the content of sel toward target. It returns the new
// grid and the union selection; ok is false when there is nothing to fill.
func AutoFill(g Grid, sel Rect, target Address) (Grid, Rect, bool) {
	dst, union, ok := FillRegion(sel, target)
	if !ok {
		return g, sel, false
	}
	return Fill(g, Extract(g, sel), dst), union, true
}
