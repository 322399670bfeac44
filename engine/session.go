package engine

import (
	"unicode/utf8"

	"gridedit/grid"
)

// EditBuffer is the text being typed into the anchor cell.
type EditBuffer struct {
	Value  string
	Active bool
	At     grid.Address
}

// beginEdit opens the buffer on the anchor. Append mode seeds it with the
// current cell text; overwrite mode starts empty.
func (e *Engine) beginEdit(appendMode bool) {
	if e.sel == nil {
		return
	}
	a := e.sel.Anchor
	e.sel.Extent = nil
	e.drag = nil
	e.edit = EditBuffer{Active: true, At: a}
	if appendMode {
		e.edit.Value = e.data.Cell(a.Col, a.Row)
	}
}

// commitEdit writes the buffer into its cell and notifies the host. It
// reports whether an edit was open.
func (e *Engine) commitEdit() bool {
	if !e.stageEdit() {
		return false
	}
	e.notify()
	return true
}

// stageEdit writes the buffer into its cell without notifying. Actions that
// follow it with their own change emit once for both.
func (e *Engine) stageEdit() bool {
	if !e.edit.Active {
		return false
	}
	ed := e.edit
	e.edit = EditBuffer{}
	e.data = grid.WriteCell(e.data, ed.At.Col, ed.At.Row, ed.Value)
	e.fitCapacity()
	return true
}

func (e *Engine) cancelEdit() {
	e.edit = EditBuffer{}
}

func (e *Engine) backspaceEdit() {
	v := e.edit.Value
	if v == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(v)
	e.edit.Value = v[:len(v)-size]
}

// Commit writes any open edit into its cell without moving the anchor.
func (e *Engine) Commit() bool {
	return e.commitEdit()
}
