package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestInputDialogEditing(t *testing.T) {
	var got string
	d := NewGotoCellDialog()
	d.OnSubmit = func(v string) { got = v }

	for _, r := range "B12" {
		d.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	d.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	d.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	d.HandleKey(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))
	d.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'C', tcell.ModNone))
	if d.Input != "C1" || d.Cursor != 1 {
		t.Fatalf("expected C1 with cursor 1, got %q cursor %d", d.Input, d.Cursor)
	}
	d.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if got != "C1" {
		t.Fatalf("expected submit C1, got %q", got)
	}
}

func TestSaveAsDialogPrefilled(t *testing.T) {
	d := NewSaveAsDialog("cars.tsv")
	if d.Input != "cars.tsv" || d.Cursor != 8 {
		t.Fatalf("expected prefilled input, got %q cursor %d", d.Input, d.Cursor)
	}
	cancelled := false
	d.OnCancel = func() { cancelled = true }
	d.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !cancelled {
		t.Fatal("expected cancel")
	}
}

func TestConfirmDialogAnswers(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want rune
	}{
		{tcell.KeyRune, 'y', 'y'},
		{tcell.KeyRune, 'N', 'n'},
		{tcell.KeyRune, 'c', 'c'},
		{tcell.KeyEscape, 0, 'c'},
	}
	for _, tt := range tests {
		var got rune
		d := NewConfirmDialog("Save changes?")
		d.OnConfirm = func(a rune) { got = a }
		d.HandleKey(tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone))
		if got != tt.want {
			t.Fatalf("key %v %q: expected %q, got %q", tt.key, tt.ch, tt.want, got)
		}
	}
}

func TestDialogRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	d := NewInputDialog("Name: ")
	d.Input = "x"
	d.Render(screen, 0, 23, 80, 1)
	screen.Show()
	if r, _, _, _ := screen.GetContent(0, 23); r != 'N' {
		t.Fatalf("expected prompt at column 0, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(6, 23); r != 'x' {
		t.Fatalf("expected input after prompt, got %q", r)
	}

	NewHelpDialog().Render(screen, 0, 0, 80, 23)
}

func TestStatusBarRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(60, 2)

	sb := NewStatusBar()
	sb.Mode = "RANGE"
	sb.Filename = "cars.tsv"
	sb.Cell = "B2"
	sb.SelCols, sb.SelRows = 2, 3
	sb.Render(screen, 0, 1, 60, 1)
	screen.Show()

	if r, _, _, _ := screen.GetContent(1, 1); r != 'R' {
		t.Fatalf("expected mode label, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(58, 1); r != '3' {
		t.Fatalf("expected selection size at the right edge, got %q", r)
	}
}

func TestDrawTextClipsWideRunes(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	end := DrawText(screen, 0, 0, 3, "日本", tcell.StyleDefault)
	if end != 2 {
		t.Fatalf("expected one wide rune drawn ending at 2, got %d", end)
	}
}
