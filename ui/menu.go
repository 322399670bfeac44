package ui

import (
	"sort"
	"strings"
	"unicode"

	"gridedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Command struct {
	Name     string
	Shortcut string
	Action   func()
}

type scoredCommand struct {
	Command
	Score     int
	MatchIdxs []int
}

// Menu is the sheet action menu. Opened from a right click it pops up at the
// pointer; opened from the keyboard it is centered. Typing filters the list.
type Menu struct {
	Input    string
	Commands []Command
	Filtered []scoredCommand
	Selected int
	OnClose  func()
	Theme    *config.ColorScheme

	// Requested top-left corner; negative centers the menu.
	X, Y int

	// Box from the last Render, for mouse hit-testing.
	boxX, boxY, boxW, boxH int
	listY                  int
}

func NewMenu(commands []Command, theme *config.ColorScheme) *Menu {
	m := &Menu{Commands: commands, Theme: theme, X: -1, Y: -1}
	m.updateFilter()
	return m
}

// NewPopupMenu opens the menu at screen position x, y.
func NewPopupMenu(commands []Command, theme *config.ColorScheme, x, y int) *Menu {
	m := NewMenu(commands, theme)
	m.X, m.Y = x, y
	return m
}

func (m *Menu) updateFilter() {
	m.Filtered = m.Filtered[:0]
	m.Selected = 0
	if m.Input == "" {
		for _, c := range m.Commands {
			m.Filtered = append(m.Filtered, scoredCommand{Command: c})
		}
		return
	}
	query := strings.ToLower(m.Input)
	for _, c := range m.Commands {
		if score, idxs := fuzzyScore(c.Name, query); score > 0 {
			m.Filtered = append(m.Filtered, scoredCommand{Command: c, Score: score, MatchIdxs: idxs})
		}
	}
	sort.SliceStable(m.Filtered, func(i, j int) bool {
		return m.Filtered[i].Score > m.Filtered[j].Score
	})
}

// fuzzyScore matches query against name as an in-order subsequence. It
// returns 0 when there is no match, plus the matched rune indices.
func fuzzyScore(name, query string) (int, []int) {
	nameRunes := []rune(strings.ToLower(name))
	origRunes := []rune(name)
	queryRunes := []rune(query)
	if len(queryRunes) == 0 || len(queryRunes) > len(nameRunes) {
		return 0, nil
	}

	idxs := make([]int, 0, len(queryRunes))
	pi := 0
	for _, qr := range queryRunes {
		found := false
		for ; pi < len(nameRunes); pi++ {
			if nameRunes[pi] == qr {
				idxs = append(idxs, pi)
				pi++
				found = true
				break
			}
		}
		if !found {
			return 0, nil
		}
	}

	score := 10
	for i := 1; i < len(idxs); i++ {
		if idxs[i] == idxs[i-1]+1 {
			score += 5
		}
	}
	for _, idx := range idxs {
		if idx == 0 {
			score += 10
		} else if prev := origRunes[idx-1]; prev == ' ' || prev == '-' {
			score += 8
		} else if unicode.IsLower(prev) && unicode.IsUpper(origRunes[idx]) {
			score += 6
		}
	}
	if strings.HasPrefix(string(nameRunes), query) {
		score += 20
	}
	return score, idxs
}

func (m *Menu) run(idx int) {
	if idx < 0 || idx >= len(m.Filtered) {
		return
	}
	action := m.Filtered[idx].Action
	if m.OnClose != nil {
		m.OnClose()
	}
	if action != nil {
		action()
	}
}

func (m *Menu) close() {
	if m.OnClose != nil {
		m.OnClose()
	}
}

func (m *Menu) Render(screen tcell.Screen, x, y, width, height int) {
	theme := m.Theme
	if theme == nil {
		theme = config.Themes["dark"]
	}

	boxW := 16
	for _, c := range m.Commands {
		boxW = max(boxW, runewidth.StringWidth(c.Name)+runewidth.StringWidth(c.Shortcut)+6)
	}
	boxW = min(boxW, width)
	boxH := min(len(m.Filtered)+3, height)

	boxX, boxY := m.X, m.Y
	if boxX < 0 || boxY < 0 {
		boxX = x + (width-boxW)/2
		boxY = y + 2
	}
	boxX = max(x, min(boxX, x+width-boxW))
	boxY = max(y, min(boxY, y+height-boxH))
	m.boxX, m.boxY, m.boxW, m.boxH = boxX, boxY, boxW, boxH
	m.listY = boxY + 2

	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	selectedStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
	matchStyle := bgStyle.Foreground(tcell.ColorYellow).Bold(true)
	shortcutStyle := bgStyle.Foreground(theme.GridLine)

	for dy := 0; dy < boxH; dy++ {
		for dx := 0; dx < boxW; dx++ {
			screen.SetContent(boxX+dx, boxY+dy, ' ', nil, bgStyle)
		}
	}
	for dx := 0; dx < boxW; dx++ {
		screen.SetContent(boxX+dx, boxY+boxH-1, '─', nil, bgStyle)
	}
	for dy := 0; dy < boxH; dy++ {
		screen.SetContent(boxX, boxY+dy, '│', nil, bgStyle)
		screen.SetContent(boxX+boxW-1, boxY+dy, '│', nil, bgStyle)
	}
	screen.SetContent(boxX, boxY+boxH-1, '└', nil, bgStyle)
	screen.SetContent(boxX+boxW-1, boxY+boxH-1, '┘', nil, bgStyle)

	// Filter line
	for dx := 1; dx < boxW-1; dx++ {
		screen.SetContent(boxX+dx, boxY, ' ', nil, inputStyle)
	}
	col := DrawText(screen, boxX+1, boxY, boxX+boxW-1, "> "+m.Input, inputStyle)
	if col < boxX+boxW-1 {
		screen.SetContent(col, boxY, ' ', nil, inputStyle.Reverse(true))
	}
	for dx := 1; dx < boxW-1; dx++ {
		screen.SetContent(boxX+dx, boxY+1, '─', nil, bgStyle)
	}

	for i, entry := range m.Filtered {
		rowY := m.listY + i
		if rowY >= boxY+boxH-1 {
			break
		}
		base, hl, sc := bgStyle, matchStyle, shortcutStyle
		if i == m.Selected {
			base = selectedStyle
			hl = selectedStyle.Foreground(tcell.ColorYellow).Bold(true)
			sc = selectedStyle
		}
		for dx := 1; dx < boxW-1; dx++ {
			screen.SetContent(boxX+dx, rowY, ' ', nil, base)
		}
		matched := make(map[int]bool, len(entry.MatchIdxs))
		for _, mi := range entry.MatchIdxs {
			matched[mi] = true
		}
		cx := boxX + 2
		for ci, ch := range []rune(entry.Name) {
			st := base
			if matched[ci] {
				st = hl
			}
			cx = DrawText(screen, cx, rowY, boxX+boxW-2, string(ch), st)
		}
		if entry.Shortcut != "" {
			scX := boxX + boxW - 2 - runewidth.StringWidth(entry.Shortcut)
			if scX > cx {
				DrawText(screen, scX, rowY, boxX+boxW-1, entry.Shortcut, sc)
			}
		}
	}
}

func (m *Menu) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		m.close()
	case tcell.KeyEnter:
		m.run(m.Selected)
	case tcell.KeyUp:
		if m.Selected > 0 {
			m.Selected--
		}
	case tcell.KeyDown:
		if m.Selected < len(m.Filtered)-1 {
			m.Selected++
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if runes := []rune(m.Input); len(runes) > 0 {
			m.Input = string(runes[:len(runes)-1])
			m.updateFilter()
		}
	case tcell.KeyRune:
		m.Input += string(ev.Rune())
		m.updateFilter()
	}
	return true // absorb all keys while open
}

// HandleMouse runs the clicked entry, highlights the hovered one and closes
// the menu on a click outside it.
func (m *Menu) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	inside := mx >= m.boxX && mx < m.boxX+m.boxW && my >= m.boxY && my < m.boxY+m.boxH
	idx := my - m.listY
	onItem := inside && idx >= 0 && idx < len(m.Filtered) && my < m.boxY+m.boxH-1

	switch ev.Buttons() {
	case tcell.Button1:
		if onItem {
			m.run(idx)
		} else if !inside {
			m.close()
		}
	case tcell.Button2, tcell.Button3:
		if !inside {
			m.close()
		}
	case tcell.ButtonNone:
		if onItem {
			m.Selected = idx
		}
	}
	return true
}
