package editor

import (
	"fmt"
	"log"
	"time"

	"gridedit/clipboardx"
	"gridedit/engine"
	"gridedit/grid"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if e.pasting {
		e.collectPaste(ev)
		return
	}
	// Overlays absorb every key while open.
	if e.menu != nil {
		e.menu.HandleKey(ev)
		return
	}
	if e.dialog != nil {
		e.dialog.HandleKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.handleQuit()
		return
	case tcell.KeyCtrlS:
		e.saveCurrentFile()
		return
	case tcell.KeyCtrlC:
		e.copySelection()
		return
	case tcell.KeyCtrlX:
		e.cutSelection()
		return
	case tcell.KeyCtrlV:
		e.pasteClipboard()
		return
	case tcell.KeyCtrlP:
		e.openMenu()
		return
	case tcell.KeyCtrlG:
		e.openGotoCellDialog()
		return
	case tcell.KeyF1:
		e.toggleHelpDialog()
		return
	case tcell.KeyPgUp, tcell.KeyPgDn, tcell.KeyHome, tcell.KeyEnd:
		e.jump(ev.Key())
		return
	}

	if k, ok := e.engineKey(ev); ok {
		if e.engine.Key(k) {
			e.ensureAnchorVisible()
		}
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		if e.engine.TypeRune(ev.Rune()) {
			e.ensureAnchorVisible()
		}
	}
}

// engineKey maps a terminal key onto the engine's key set.
func (e *Editor) engineKey(ev *tcell.EventKey) (engine.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.KeyUp, true
	case tcell.KeyDown:
		return engine.KeyDown, true
	case tcell.KeyLeft, tcell.KeyBacktab:
		return engine.KeyLeft, true
	case tcell.KeyRight:
		return engine.KeyRight, true
	case tcell.KeyTab:
		return engine.KeyTab, true
	case tcell.KeyEnter:
		return engine.KeyEnter, true
	case tcell.KeyEscape:
		return engine.KeyEscape, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return engine.KeyBackspace, true
	case tcell.KeyDelete:
		// Delete clears cells but does not edit the buffer.
		if e.engine.State() != engine.Typing {
			return engine.KeyBackspace, true
		}
	}
	return 0, false
}

// jump moves the anchor by a page or to the row edges.
func (e *Editor) jump(k tcell.Key) {
	sel, ok := e.engine.Selection()
	if !ok {
		return
	}
	a := sel.Anchor
	page := e.layout().visibleRows()
	switch k {
	case tcell.KeyPgUp:
		e.engine.SelectCell(a.Col, a.Row-page)
	case tcell.KeyPgDn:
		e.engine.SelectCell(a.Col, a.Row+page)
	case tcell.KeyHome:
		e.engine.SelectCell(0, a.Row)
	case tcell.KeyEnd:
		e.engine.SelectCell(max(0, e.engine.Grid().Columns()-1), a.Row)
	}
	e.ensureAnchorVisible()
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()
	btn := ev.Buttons()

	if e.menu != nil {
		e.menu.HandleMouse(ev)
		if btn == tcell.ButtonNone {
			e.releasePointer()
		}
		return
	}
	if e.dialog != nil {
		e.dialog.HandleMouse(ev)
		return
	}

	l := e.layout()
	capacity := e.engine.Capacity()

	switch {
	case btn == tcell.WheelUp:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.view.scrollCol = max(0, e.view.scrollCol-1)
		} else {
			e.view.scrollRow = max(0, e.view.scrollRow-3)
		}
	case btn == tcell.WheelDown:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.view.scrollCol = min(capacity.Columns-1, e.view.scrollCol+1)
		} else {
			e.view.scrollRow = max(0, min(capacity.Rows-l.visibleRows(), e.view.scrollRow+3))
		}
	case btn == tcell.WheelLeft:
		e.view.scrollCol = max(0, e.view.scrollCol-1)
	case btn == tcell.WheelRight:
		e.view.scrollCol = min(capacity.Columns-1, e.view.scrollCol+1)
	case btn&tcell.ButtonPrimary != 0:
		if !e.mouseDown {
			e.mouseDown = true
			e.pointerPress(l, mx, my)
			return
		}
		// Drags past the sheet edge track the last visible cell.
		mx = max(l.x, min(mx, l.x+l.w-1))
		my = max(l.y, min(my, l.y+l.h-1))
		if t, ok := e.targetAt(l, mx, my); ok {
			e.engine.PointerMove(t)
		}
	case btn&tcell.ButtonSecondary != 0:
		if e.secondaryDown {
			return
		}
		e.secondaryDown = true
		if t, ok := e.targetAt(l, mx, my); ok {
			e.engine.PointerDown(t, engine.Secondary)
			e.openPopupMenu(mx, my)
		}
	case btn == tcell.ButtonNone:
		e.releasePointer()
	}
}

func (e *Editor) pointerPress(l layout, mx, my int) {
	if mx == e.gripX && my == e.gripY {
		e.engine.GripDown()
		return
	}
	t, ok := e.targetAt(l, mx, my)
	if !ok {
		return
	}
	if t.Kind == engine.Cell {
		a := grid.Address{Col: t.Col, Row: t.Row}
		now := time.Now()
		if now.Sub(e.lastClick) < doubleClickInterval && a.Equal(e.lastClickCell) {
			e.lastClick = time.Time{}
			e.engine.DoubleClick(t)
			return
		}
		e.lastClick, e.lastClickCell = now, a
	}
	e.engine.PointerDown(t, engine.Primary)
}

func (e *Editor) releasePointer() {
	if e.mouseDown {
		e.mouseDown = false
		e.engine.PointerUp()
	}
	e.secondaryDown = false
}

// targetAt hit-tests a screen position against the sheet.
func (e *Editor) targetAt(l layout, mx, my int) (engine.Target, bool) {
	if mx < l.x || my < l.y || mx >= l.x+l.w || my >= l.y+l.h {
		return engine.Target{}, false
	}
	inColHeader := my == l.y
	inRowHeader := mx < l.x+l.rowHeaderW
	switch {
	case inColHeader && inRowHeader:
		return engine.Target{Kind: engine.Corner}, true
	case inColHeader:
		return engine.ColumnHeaderTarget(l.colAt(e.view.scrollCol, mx)), true
	case inRowHeader:
		return engine.RowHeaderTarget(l.rowAt(e.view.scrollRow, my)), true
	}
	return engine.CellTarget(l.colAt(e.view.scrollCol, mx), l.rowAt(e.view.scrollRow, my)), true
}

// Bracketed paste

func (e *Editor) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		e.pasting = true
		e.pasteBuf = e.pasteBuf[:0]
		return
	}
	e.pasting = false
	text := string(e.pasteBuf)
	e.pasteBuf = nil
	if e.dialog != nil || e.menu != nil {
		return
	}
	e.pasteText(text)
}

func (e *Editor) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		e.pasteBuf = append(e.pasteBuf, ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		e.pasteBuf = append(e.pasteBuf, '\n')
	case tcell.KeyTab:
		e.pasteBuf = append(e.pasteBuf, '\t')
	}
}

// Clipboard operations

func (e *Editor) copySelection() {
	if _, ok := e.engine.Selection(); !ok {
		return
	}
	text := e.engine.CopyText(e.cfg.ClipboardEscape)
	if !e.clip.Write(text) {
		log.Printf("no platform clipboard, copy kept in memory")
	}
	w, h := e.engine.Clipboard().Size()
	e.setTemporaryMessage(fmt.Sprintf("Copied %d×%d", w, h))
}

func (e *Editor) cutSelection() {
	p := e.engine.Cut()
	if p == nil {
		return
	}
	if !e.clip.Write(clipboardx.Encode(p, e.cfg.ClipboardEscape)) {
		log.Printf("no platform clipboard, cut kept in memory")
	}
	w, h := p.Size()
	e.setTemporaryMessage(fmt.Sprintf("Cut %d×%d", w, h))
}

func (e *Editor) pasteClipboard() {
	e.pasteText(e.clip.Read())
}

func (e *Editor) pasteText(text string) {
	if !e.engine.PasteText(text, e.cfg.ClipboardEscape) {
		e.setTemporaryError("Clipboard is empty")
		return
	}
	e.ensureAnchorVisible()
}

// pasteInternal re-applies the last copied cells, falling back to the
// platform clipboard when nothing was copied here.
func (e *Editor) pasteInternal() {
	if e.engine.PasteInternal() {
		e.ensureAnchorVisible()
		return
	}
	e.pasteClipboard()
}
