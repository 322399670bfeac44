package engine

import (
	"gridedit/clipboardx"
	"gridedit/grid"
)

// Copy returns the selected cells as a row-major payload and keeps it as the
// internal clipboard. An open edit is committed first.
func (e *Engine) Copy() grid.Payload {
	if e.sel == nil {
		return nil
	}
	if e.stageEdit() {
		e.notify()
	}
	e.clip = grid.Extract(e.data, e.sel.Rect())
	return e.clip
}

// CopyText is Copy serialized for the platform clipboard.
func (e *Engine) CopyText(escape bool) string {
	p := e.Copy()
	if p == nil {
		return ""
	}
	return clipboardx.Encode(p, escape)
}

// Cut copies the selection and then clears it.
func (e *Engine) Cut() grid.Payload {
	if e.sel == nil {
		return nil
	}
	e.stageEdit()
	e.clip = grid.Extract(e.data, e.sel.Rect())
	e.apply(grid.Clear(e.data, e.sel.Rect()))
	return e.clip
}

// Paste writes p at the selection and selects the written region. It reports
// false when there is no selection or nothing to paste.
func (e *Engine) Paste(p grid.Payload) bool {
	if e.sel == nil || !p.Valid() {
		return false
	}
	e.stageEdit()
	e.clip = p
	out, dst := grid.Reconcile(e.data, p, e.sel.Anchor, e.rangeRect())
	e.selectRect(dst)
	e.apply(out)
	return true
}

// PasteText decodes clipboard text and pastes it. Empty text is ignored.
func (e *Engine) PasteText(text string, quoted bool) bool {
	p, ok := clipboardx.Decode(text, quoted)
	if !ok {
		return false
	}
	return e.Paste(p)
}

// PasteInternal pastes the payload of the last copy.
func (e *Engine) PasteInternal() bool {
	return e.Paste(e.clip)
}

// InsertColumn adds a column before the anchor, or after it when after is
// set. Past the stored data only the displayed capacity grows.
func (e *Engine) InsertColumn(after bool) {
	if e.sel == nil {
		return
	}
	staged := e.stageEdit()
	at := e.sel.Anchor.Col
	if after {
		at++
	}
	e.cap.Columns++
	if out, ok := grid.InsertColumn(e.data, at); ok {
		e.apply(out)
	} else if staged {
		e.notify()
	}
}

func (e *Engine) InsertRow(after bool) {
	if e.sel == nil {
		return
	}
	staged := e.stageEdit()
	at := e.sel.Anchor.Row
	if after {
		at++
	}
	e.cap.Rows++
	if out, ok := grid.InsertRow(e.data, at); ok {
		e.apply(out)
	} else if staged {
		e.notify()
	}
}

// DeleteColumn removes the anchor's column. Capacity shrinks by one while it
// is above the configured minimum.
func (e *Engine) DeleteColumn() {
	if e.sel == nil {
		return
	}
	staged := e.stageEdit()
	if e.cap.Columns > e.opts.MinColumns {
		e.cap.Columns--
	}
	if out, ok := grid.DeleteColumn(e.data, e.sel.Anchor.Col); ok {
		e.apply(out)
	} else {
		e.fitCapacity()
		if staged {
			e.notify()
		}
	}
	e.clampSelection()
}

func (e *Engine) DeleteRow() {
	if e.sel == nil {
		return
	}
	staged := e.stageEdit()
	if e.cap.Rows > e.opts.MinRows {
		e.cap.Rows--
	}
	if out, ok := grid.DeleteRow(e.data, e.sel.Anchor.Row); ok {
		e.apply(out)
	} else {
		e.fitCapacity()
		if staged {
			e.notify()
		}
	}
	e.clampSelection()
}

// Sort reorders the data rows by the anchor's column, keeping row 0 in place.
func (e *Engine) Sort(descending bool) {
	if e.sel == nil {
		return
	}
	e.stageEdit()
	e.apply(grid.SortRows(e.data, e.sel.Anchor.Col, descending))
}
