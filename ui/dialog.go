package ui

import (
	"gridedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogInput
	DialogConfirm
	DialogHelp
)

type Dialog struct {
	Type   DialogType
	Prompt string
	Input  string
	Cursor int // rune index into Input

	// Theme support
	Theme *config.ColorScheme

	OnSubmit  func(value string)
	OnCancel  func()
	OnConfirm func(answer rune) // 'y', 'n' or 'c'
}

func NewInputDialog(prompt string) *Dialog {
	return &Dialog{Type: DialogInput, Prompt: prompt}
}

// NewSaveAsDialog prompts for a file path, prefilled with current.
func NewSaveAsDialog(current string) *Dialog {
	d := NewInputDialog("Save as: ")
	d.Input = current
	d.Cursor = len([]rune(current))
	return d
}

func NewGotoCellDialog() *Dialog {
	return NewInputDialog("Go to cell: ")
}

// NewConfirmDialog asks a yes/no/cancel question.
func NewConfirmDialog(question string) *Dialog {
	return &Dialog{Type: DialogConfirm, Prompt: question}
}

func NewHelpDialog() *Dialog {
	return &Dialog{Type: DialogHelp}
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	switch d.Type {
	case DialogInput:
		d.renderInputBar(screen, x, y, width)
	case DialogConfirm:
		d.renderConfirm(screen, x, y, width)
	case DialogHelp:
		d.renderHelp(screen, x, y, width, height)
	}
}

func (d *Dialog) renderInputBar(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	promptStyle := style.Foreground(tcell.ColorYellow).Bold(true)
	if d.Theme != nil {
		style = tcell.StyleDefault.Background(d.Theme.DialogInputBg).Foreground(d.Theme.DialogFg)
		promptStyle = style.Bold(true)
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	col := DrawText(screen, x, y, x+width, d.Prompt, promptStyle)
	for i, ch := range []rune(d.Input) {
		st := style
		if i == d.Cursor {
			st = style.Reverse(true)
		}
		col = DrawText(screen, col, y, x+width, string(ch), st)
	}
	if d.Cursor >= len([]rune(d.Input)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}

func (d *Dialog) renderConfirm(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite)
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	DrawText(screen, x, y, x+width, " "+d.Prompt+" [Y]es [N]o [C]ancel ", style)
}

var helpBindings = []struct {
	key  string
	desc string
}{
	{"Arrows / Tab", "Move the active cell"},
	{"Enter", "Edit cell / commit and move down"},
	{"Typing", "Replace cell text"},
	{"Esc", "Discard the edit"},
	{"Backspace / Del", "Clear cell or range"},
	{"Drag", "Select a range"},
	{"Row / column header", "Select whole rows or columns"},
	{"Drag the ■ grip", "Fill cells"},
	{"Double click", "Edit cell"},
	{"Right click / Ctrl+P", "Sheet actions"},
	{"Ctrl+C / Ctrl+X / Ctrl+V", "Copy / Cut / Paste"},
	{"Ctrl+G", "Go to cell"},
	{"Ctrl+S", "Save"},
	{"Ctrl+Q", "Quit"},
	{"F1", "Toggle help"},
}

func (d *Dialog) renderHelp(screen tcell.Screen, x, y, width, height int) {
	bgStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack).Bold(true)
	keyStyle := bgStyle.Foreground(tcell.ColorYellow)
	descStyle := bgStyle.Foreground(tcell.ColorSilver)

	keyW := 0
	for _, b := range helpBindings {
		keyW = max(keyW, runewidth.StringWidth(b.key))
	}
	dialogW := min(keyW+40, width)
	dialogH := min(len(helpBindings)+3, height)
	dx := x + (width-dialogW)/2
	dy := y + (height-dialogH)/2

	for r := 0; r < dialogH; r++ {
		for c := 0; c < dialogW; c++ {
			screen.SetContent(dx+c, dy+r, ' ', nil, bgStyle)
		}
	}
	for c := 0; c < dialogW; c++ {
		screen.SetContent(dx+c, dy, ' ', nil, titleStyle)
	}
	title := " Keys "
	DrawText(screen, dx+(dialogW-len(title))/2, dy, dx+dialogW, title, titleStyle)

	for i, b := range helpBindings {
		row := dy + 2 + i
		if row >= dy+dialogH {
			break
		}
		DrawText(screen, dx+2, row, dx+dialogW, b.key, keyStyle)
		DrawText(screen, dx+4+keyW, row, dx+dialogW-1, b.desc, descStyle)
	}
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	switch d.Type {
	case DialogConfirm:
		return d.handleConfirmKey(ev)
	case DialogHelp:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyF1 || ev.Key() == tcell.KeyEnter {
			if d.OnCancel != nil {
				d.OnCancel()
			}
		}
		return true
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) handleConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		d.confirm('y')
	case ch == 'n' || ch == 'N':
		d.confirm('n')
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		d.confirm('c')
	}
	return true
}

func (d *Dialog) confirm(answer rune) {
	if d.OnConfirm != nil {
		d.OnConfirm(answer)
	}
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	runes := []rune(d.Input)
	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
		}
	case tcell.KeyDelete:
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
		}
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
	case tcell.KeyRight:
		if d.Cursor < len(runes) {
			d.Cursor++
		}
	case tcell.KeyHome:
		d.Cursor = 0
	case tcell.KeyEnd:
		d.Cursor = len(runes)
	case tcell.KeyRune:
		d.Input = string(runes[:d.Cursor]) + string(ev.Rune()) + string(runes[d.Cursor:])
		d.Cursor++
	default:
		return false
	}
	return true
}

func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool { return d.Type == DialogHelp }
