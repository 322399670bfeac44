package engine

import "gridedit/grid"

// PointerDown handles a button press on t.
func (e *Engine) PointerDown(t Target, b Button) {
	if b == Secondary {
		e.contextPress(t)
		return
	}
	if e.gesture == (filling{}) {
		return
	}

	switch t.Kind {
	case Cell:
		a := e.clamp(t.Col, t.Row)
		if e.edit.Active {
			if e.edit.At.Equal(a) {
				return
			}
			e.commitEdit()
		}
		e.selectCell(a)
		e.gesture = pressing{mode: pressCell}
	case RowHeader:
		e.commitEdit()
		row := e.clamp(0, t.Row).Row
		ext := grid.Address{Col: e.cap.Columns - 1, Row: row}
		e.sel = &Selection{Anchor: grid.Address{Col: 0, Row: row}, Extent: &ext}
		e.drag = nil
		e.gesture = pressing{mode: pressRow}
	case ColumnHeader:
		e.commitEdit()
		col := e.clamp(t.Col, 0).Col
		ext := grid.Address{Col: col, Row: e.cap.Rows - 1}
		e.sel = &Selection{Anchor: grid.Address{Col: col, Row: 0}, Extent: &ext}
		e.drag = nil
		e.gesture = pressing{mode: pressColumn}
	}
}

// PointerMove handles the pointer hovering t while a button is held.
func (e *Engine) PointerMove(t Target) {
	if e.sel == nil {
		return
	}
	switch g := e.gesture.(type) {
	case pressing:
		e.extendTo(g.mode, t)
	case filling:
		if t.Kind != Cell {
			return
		}
		a := e.clamp(t.Col, t.Row)
		if e.sel.Rect().Contains(a) {
			e.drag = nil
			return
		}
		e.drag = &a
	}
}

func (e *Engine) extendTo(mode pressMode, t Target) {
	var ext grid.Address
	switch mode {
	case pressCell:
		if t.Kind != Cell {
			return
		}
		ext = e.clamp(t.Col, t.Row)
	case pressRow:
		if t.Kind != Cell && t.Kind != RowHeader {
			return
		}
		ext = grid.Address{Col: e.cap.Columns - 1, Row: e.clamp(0, t.Row).Row}
	case pressColumn:
		if t.Kind != Cell && t.Kind != ColumnHeader {
			return
		}
		ext = grid.Address{Col: e.clamp(t.Col, 0).Col, Row: e.cap.Rows - 1}
	}
	if ext.Equal(e.sel.Anchor) {
		e.sel.Extent = nil
		return
	}
	e.sel.Extent = &ext
}

// PointerUp ends the current gesture. Releasing a fill drag over a target
// outside the selection commits the auto-fill.
func (e *Engine) PointerUp() {
	g := e.gesture
	e.gesture = nil
	if g != (filling{}) {
		return
	}
	if e.drag == nil || e.sel == nil {
		return
	}
	target := *e.drag
	e.drag = nil
	out, union, ok := grid.AutoFill(e.data, e.sel.Rect(), target)
	if !ok {
		return
	}
	e.selectRect(union)
	e.apply(out)
}

// GripDown starts a fill drag from the selection's grip handle.
func (e *Engine) GripDown() {
	if e.sel == nil {
		return
	}
	e.commitEdit()
	e.gesture = filling{}
	e.drag = nil
}

// DoubleClick selects the cell under t and opens it for editing with its
// current text.
func (e *Engine) DoubleClick(t Target) {
	if t.Kind != Cell {
		return
	}
	a := e.clamp(t.Col, t.Row)
	if e.edit.Active && e.edit.At.Equal(a) {
		return
	}
	e.commitEdit()
	e.gesture = nil
	e.selectCell(a)
	e.beginEdit(true)
}

// contextPress selects the cell under a secondary press unless it already
// lies in the active rectangle, so menu actions apply to the whole range.
func (e *Engine) contextPress(t Target) {
	if t.Kind != Cell {
		return
	}
	a := e.clamp(t.Col, t.Row)
	if e.sel != nil && e.sel.Rect().Contains(a) {
		return
	}
	e.commitEdit()
	e.selectCell(a)
}
