package editor

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"gridedit/config"
	"gridedit/grid"
	"gridedit/sheetio"
	"gridedit/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 40

// layout is the screen geometry of the sheet for one frame.
type layout struct {
	x, y, w, h int // sheet area including headers
	rowHeaderW int
	cellH      int
	widths     []int // one per capacity column
}

func (e *Editor) layout() layout {
	screenW, screenH := e.screen.Size()
	opts := e.engine.Options()
	capacity := e.engine.Capacity()

	l := layout{w: screenW, h: screenH - 1, cellH: max(1, opts.CellHeight)}
	if opts.Width > 0 {
		l.w = min(l.w, opts.Width)
	}
	if opts.Height > 0 {
		l.h = min(l.h, opts.Height)
	}
	l.rowHeaderW = max(4, len(strconv.Itoa(capacity.Rows))+2)
	l.widths = columnWidths(e.engine.Grid(), capacity.Columns, opts.MinCellWidth)
	return l
}

// columnWidths sizes each column to its widest first line, between minW and
// maxCellWidth. The extra column holds the grid line.
func columnWidths(g grid.Grid, cols, minW int) []int {
	widths := make([]int, cols)
	for c := range widths {
		w := minW
		if c < g.Columns() {
			for _, v := range g[c] {
				w = max(w, min(runewidth.StringWidth(displayText(v))+1, maxCellWidth))
			}
		}
		widths[c] = w
	}
	return widths
}

// displayText is the single line shown for a cell.
func displayText(v string) string {
	if i := strings.IndexAny(v, "\r\n"); i >= 0 {
		v = v[:i] + "…"
	}
	return strings.ReplaceAll(v, "\t", " ")
}

func (l layout) visibleRows() int {
	return max(1, (l.h-1)/l.cellH)
}

// colX returns the screen x of column col, or false when it is scrolled out
// of view.
func (l layout) colX(scrollCol, col int) (int, bool) {
	if col < scrollCol || col >= len(l.widths) {
		return 0, false
	}
	x := l.x + l.rowHeaderW
	for c := scrollCol; c < col; c++ {
		x += l.widths[c]
		if x >= l.x+l.w {
			return 0, false
		}
	}
	return x, x < l.x+l.w
}

func (l layout) rowY(scrollRow, row int) (int, bool) {
	if row < scrollRow {
		return 0, false
	}
	y := l.y + 1 + (row-scrollRow)*l.cellH
	return y, y < l.y+l.h
}

// colAt maps a screen x to a column. Points past the last column map to it.
func (l layout) colAt(scrollCol, x int) int {
	cx := l.x + l.rowHeaderW
	for c := scrollCol; c < len(l.widths); c++ {
		cx += l.widths[c]
		if x < cx {
			return c
		}
	}
	return len(l.widths) - 1
}

func (l layout) rowAt(scrollRow, y int) int {
	return scrollRow + (y-l.y-1)/l.cellH
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()

	screenW, screenH := e.screen.Size()
	e.clampScroll()
	e.updateStatus()
	e.statusBar.Theme = theme

	l := e.layout()
	e.renderSheet(l, theme)
	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	if e.dialog != nil {
		e.dialog.Theme = theme
		switch e.dialog.Type {
		case ui.DialogHelp:
			e.dialog.Render(e.screen, 0, 0, screenW, screenH-1)
		default:
			e.dialog.Render(e.screen, 0, screenH-2, screenW, 1)
		}
	}
	if e.menu != nil {
		e.menu.Theme = theme
		e.menu.Render(e.screen, 0, 0, screenW, screenH-1)
	}

	e.screen.Show()
}

func (e *Editor) renderSheet(l layout, theme *config.ColorScheme) {
	sel, hasSel := e.engine.Selection()
	var rect grid.Rect
	if hasSel {
		rect = sel.Rect()
	}
	var fill grid.Rect
	hasFill := false
	if target, ok := e.engine.DragTarget(); ok && hasSel {
		fill, _, hasFill = grid.FillRegion(rect, target)
	}
	ed := e.engine.Edit()

	cellStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	lineStyle := cellStyle.Foreground(theme.GridLine)
	headerStyle := tcell.StyleDefault.Background(theme.HeaderBg).Foreground(theme.HeaderFg)
	activeHeader := headerStyle.Background(theme.HeaderActiveBg).Bold(true)
	selStyle := cellStyle.Background(theme.Selection)
	anchorStyle := cellStyle.Background(theme.Anchor).Bold(true)
	fillStyle := cellStyle.Background(theme.FillTarget)

	right := l.x + l.w
	bottom := l.y + l.h

	// Corner and column headers
	for x := l.x; x < min(l.x+l.rowHeaderW, right); x++ {
		e.screen.SetContent(x, l.y, ' ', nil, headerStyle)
	}
	for c := e.view.scrollCol; c < len(l.widths); c++ {
		x, ok := l.colX(e.view.scrollCol, c)
		if !ok {
			break
		}
		st := headerStyle
		if hasSel && c >= rect.Min.Col && c <= rect.Max.Col {
			st = activeHeader
		}
		w := min(l.widths[c], right-x)
		fillRow(e.screen, x, l.y, w, st)
		name := sheetio.ColumnName(c)
		nx := x + max(0, (w-runewidth.StringWidth(name))/2)
		ui.DrawText(e.screen, nx, l.y, x+w, name, st)
	}

	e.gripX, e.gripY = -1, -1
	cursorX, cursorY := -1, -1

	for r := e.view.scrollRow; ; r++ {
		y, ok := l.rowY(e.view.scrollRow, r)
		if !ok || r >= e.engine.Capacity().Rows {
			break
		}
		// Row header
		st := headerStyle
		if hasSel && r >= rect.Min.Row && r <= rect.Max.Row {
			st = activeHeader
		}
		for dy := 0; dy < l.cellH && y+dy < bottom; dy++ {
			fillRow(e.screen, l.x, y+dy, min(l.rowHeaderW, l.w), st)
		}
		num := strconv.Itoa(r + 1)
		ui.DrawText(e.screen, l.x+l.rowHeaderW-1-len(num), y, l.x+l.rowHeaderW, num, st)

		for c := e.view.scrollCol; c < len(l.widths); c++ {
			x, ok := l.colX(e.view.scrollCol, c)
			if !ok {
				break
			}
			w := min(l.widths[c], right-x)
			a := grid.Address{Col: c, Row: r}

			st := cellStyle
			switch {
			case hasFill && fill.Contains(a):
				st = fillStyle
			case hasSel && a.Equal(sel.Anchor):
				st = anchorStyle
			case hasSel && rect.Contains(a):
				st = selStyle
			}

			text := displayText(e.engine.Cell(c, r))
			editing := ed.Active && ed.At.Equal(a)
			if editing {
				text = strings.NewReplacer("\n", " ", "\t", " ").Replace(ed.Value)
				// Keep the end of the buffer in view.
				for runewidth.StringWidth(text) > w-2 && text != "" {
					_, size := utf8.DecodeRuneInString(text)
					text = text[size:]
				}
			} else {
				text = runewidth.Truncate(text, w-1, "…")
			}

			for dy := 0; dy < l.cellH && y+dy < bottom; dy++ {
				fillRow(e.screen, x, y+dy, w-1, st)
				if w == l.widths[c] {
					e.screen.SetContent(x+w-1, y+dy, '│', nil, lineStyle)
				}
			}
			end := ui.DrawText(e.screen, x, y, x+w-1, text, st)
			if editing {
				cursorX, cursorY = end, y
			}

			if hasSel && a.Equal(rect.Max) && w == l.widths[c] {
				gy := min(y+l.cellH-1, bottom-1)
				e.screen.SetContent(x+w-1, gy, '■', nil, lineStyle.Foreground(theme.Anchor).Bold(true))
				e.gripX, e.gripY = x+w-1, gy
			}
		}
	}

	if cursorX >= 0 && e.dialog == nil && e.menu == nil {
		e.screen.ShowCursor(cursorX, cursorY)
	} else {
		e.screen.HideCursor()
	}
}

func fillRow(screen tcell.Screen, x, y, w int, style tcell.Style) {
	for dx := 0; dx < w; dx++ {
		screen.SetContent(x+dx, y, ' ', nil, style)
	}
}

// ensureAnchorVisible scrolls so the anchor cell is on screen.
func (e *Editor) ensureAnchorVisible() {
	sel, ok := e.engine.Selection()
	if !ok || e.screen == nil {
		return
	}
	l := e.layout()
	a := sel.Anchor

	if a.Row < e.view.scrollRow {
		e.view.scrollRow = a.Row
	} else if vis := l.visibleRows(); a.Row >= e.view.scrollRow+vis {
		e.view.scrollRow = a.Row - vis + 1
	}

	if a.Col < e.view.scrollCol {
		e.view.scrollCol = a.Col
		return
	}
	for e.view.scrollCol < a.Col {
		x, ok := l.colX(e.view.scrollCol, a.Col)
		if ok && x+l.widths[a.Col] <= l.x+l.w {
			break
		}
		e.view.scrollCol++
	}
}

// clampScroll keeps the view inside capacity after it shrinks.
func (e *Editor) clampScroll() {
	c := e.engine.Capacity()
	e.view.scrollCol = max(0, min(e.view.scrollCol, c.Columns-1))
	e.view.scrollRow = max(0, min(e.view.scrollRow, c.Rows-1))
}
