package ui

import (
	"fmt"

	"gridedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type StatusBar struct {
	Mode     string // engine state: "CELL", "RANGE", "EDIT", ...
	Filename string
	Sheet    string
	Cell     string // anchor name, e.g. "B3"
	Value    string // anchor cell text or the edit buffer
	SelCols  int
	SelRows  int
	Dirty    bool
	Message  string // temporary status message
	IsError  bool
	Theme    *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Mode: "IDLE"}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)
	msgStyle := style
	if s.IsError {
		msgStyle = style.Foreground(tcell.ColorRed).Bold(true)
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := DrawText(screen, x, y, x+width, " "+s.Mode+" ", modeStyle)
	col = DrawText(screen, col, y, x+width, " ", style)

	if s.Message != "" {
		DrawText(screen, col, y, x+width, s.Message, msgStyle)
		return
	}

	name := s.Filename
	if name == "" {
		name = "untitled"
	}
	if s.Sheet != "" {
		name += " [" + s.Sheet + "]"
	}
	if s.Dirty {
		name += " ●"
	}
	col = DrawText(screen, col, y, x+width, name, style)

	right := s.Cell
	if s.SelCols > 1 || s.SelRows > 1 {
		right = fmt.Sprintf("%s │ %d×%d", right, s.SelCols, s.SelRows)
	}
	if s.Value != "" {
		right = runewidth.Truncate(s.Value, width/3, "…") + " │ " + right
	}
	right += " "
	rightStart := x + width - runewidth.StringWidth(right)
	if rightStart > col+2 {
		DrawText(screen, rightStart, y, x+width, right, style)
	}
}

// DrawText draws s from x, clipped at maxX, and returns the column after the
// last cell written. Wide runes take two columns.
func DrawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}
