package engine

import (
	"unicode"

	"gridedit/grid"
)

// Key handles a navigation or editing key. It reports whether the key was
// consumed; hosts should skip their own handling of consumed keys.
func (e *Engine) Key(k Key) bool {
	if e.sel == nil {
		return false
	}
	if e.edit.Active {
		switch k {
		case KeyEnter:
			e.commitEdit()
			e.move(0, 1)
			return true
		case KeyBackspace:
			e.backspaceEdit()
			return true
		case KeyEscape:
			e.cancelEdit()
			return true
		}
		e.commitEdit()
	}

	switch k {
	case KeyUp:
		e.move(0, -1)
	case KeyDown:
		e.move(0, 1)
	case KeyLeft:
		e.move(-1, 0)
	case KeyRight, KeyTab:
		e.move(1, 0)
	case KeyEnter:
		e.beginEdit(true)
	case KeyBackspace:
		e.clearSelection()
	default:
		return false
	}
	return true
}

// TypeRune feeds a printable character. Outside an edit it starts one that
// replaces the anchor cell's text.
func (e *Engine) TypeRune(r rune) bool {
	if e.sel == nil || !unicode.IsPrint(r) {
		return false
	}
	if !e.edit.Active {
		e.beginEdit(false)
	}
	e.edit.Value += string(r)
	return true
}

func (e *Engine) move(dc, dr int) {
	a := e.sel.Anchor
	e.selectCell(e.clamp(a.Col+dc, a.Row+dr))
}

func (e *Engine) clearSelection() {
	if r := e.rangeRect(); r != nil {
		e.apply(grid.Clear(e.data, *r))
		return
	}
	a := e.sel.Anchor
	e.apply(grid.WriteCell(e.data, a.Col, a.Row, ""))
}

// SelectCell commits any open edit and moves the anchor to the clamped cell,
// as if it had been reached with the arrow keys.
func (e *Engine) SelectCell(col, row int) {
	e.commitEdit()
	e.gesture = nil
	e.selectCell(e.clamp(col, row))
}
