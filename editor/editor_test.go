package editor

import (
	"os"
	"path/filepath"
	"testing"

	"gridedit/config"
	"gridedit/engine"
	"gridedit/grid"
	"gridedit/sheetio"
	"gridedit/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// With the default config the row header is 4 wide and every short column is
// 10 wide, so column c starts at x = 4 + 10c and row r sits on y = 1 + r.
func cellPos(col, row int) (int, int) {
	return 4 + 10*col + 2, 1 + row
}

func newTestEditor(t *testing.T, data grid.Grid) *Editor {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := config.Default()
	cfg.AutoBackup = false
	cfg.WatchFile = false
	e := New(cfg)
	e.clip.Commands = false
	e.clip.OSC52 = false
	if data != nil {
		e.newEngine(data)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	e.init(screen)
	e.render()
	return e
}

func press(e *Editor, x, y int, btn tcell.ButtonMask) {
	e.handleEvent(tcell.NewEventMouse(x, y, btn, tcell.ModNone))
}

func release(e *Editor, x, y int) {
	e.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func clickCell(e *Editor, col, row int) {
	x, y := cellPos(col, row)
	press(e, x, y, tcell.Button1)
	release(e, x, y)
}

func sendKey(e *Editor, k tcell.Key, mod tcell.ModMask) {
	e.handleEvent(tcell.NewEventKey(k, 0, mod))
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestClickSelectsCell(t *testing.T) {
	e := newTestEditor(t, nil)
	clickCell(e, 1, 2)

	sel, ok := e.engine.Selection()
	if !ok || sel.Anchor != (grid.Address{Col: 1, Row: 2}) || sel.IsRange() {
		t.Fatalf("expected single cell 1,2, got %+v", sel)
	}
	e.render()
	if e.statusBar.Cell != "B3" || e.statusBar.Mode != "CELL" {
		t.Fatalf("expected status CELL B3, got %s %s", e.statusBar.Mode, e.statusBar.Cell)
	}
	if e.statusBar.Value != "22" {
		t.Fatalf("expected sample value 22, got %q", e.statusBar.Value)
	}
}

func TestDragSelectsRange(t *testing.T) {
	e := newTestEditor(t, nil)
	x0, y0 := cellPos(0, 0)
	x1, y1 := cellPos(2, 1)
	press(e, x0, y0, tcell.Button1)
	press(e, x1, y1, tcell.Button1)
	release(e, x1, y1)

	sel, _ := e.engine.Selection()
	r := sel.Rect()
	if r.Width() != 3 || r.Height() != 2 || e.engine.State() != engine.RangeSelected {
		t.Fatalf("expected 3x2 range, got %+v in %v", r, e.engine.State())
	}
}

func TestRowHeaderSelectsRow(t *testing.T) {
	e := newTestEditor(t, nil)
	press(e, 1, 3, tcell.Button1)
	release(e, 1, 3)

	sel, _ := e.engine.Selection()
	r := sel.Rect()
	if r.Min != (grid.Address{Col: 0, Row: 2}) || r.Max != (grid.Address{Col: 9, Row: 2}) {
		t.Fatalf("expected row 3 across all columns, got %+v", r)
	}
}

func TestTypingCommitsOnEnter(t *testing.T) {
	e := newTestEditor(t, grid.Grid{})
	clickCell(e, 0, 0)
	typeText(e, "hi")
	if e.engine.State() != engine.Typing {
		t.Fatalf("expected EDIT, got %v", e.engine.State())
	}
	sendKey(e, tcell.KeyEnter, tcell.ModNone)

	if e.engine.Cell(0, 0) != "hi" {
		t.Fatalf("expected hi committed, got %q", e.engine.Cell(0, 0))
	}
	if sel, _ := e.engine.Selection(); sel.Anchor != (grid.Address{Col: 0, Row: 1}) {
		t.Fatalf("expected anchor to move down, got %+v", sel.Anchor)
	}
	if !e.dirty {
		t.Fatal("expected grid to be dirty")
	}

	e.render()
	screen := e.screen.(tcell.SimulationScreen)
	if r, _, _, _ := screen.GetContent(4, 1); r != 'h' {
		t.Fatalf("expected h drawn in A1, got %q", r)
	}
}

func TestEscapeDiscardsTyping(t *testing.T) {
	e := newTestEditor(t, nil)
	clickCell(e, 0, 0)
	typeText(e, "zzz")
	sendKey(e, tcell.KeyEscape, tcell.ModNone)
	if e.engine.Cell(0, 0) != "Car" || e.dirty {
		t.Fatalf("expected Car kept and clean, got %q dirty=%v", e.engine.Cell(0, 0), e.dirty)
	}
}

func TestDeleteClearsRange(t *testing.T) {
	e := newTestEditor(t, nil)
	x0, y0 := cellPos(0, 1)
	x1, y1 := cellPos(1, 2)
	press(e, x0, y0, tcell.Button1)
	press(e, x1, y1, tcell.Button1)
	release(e, x1, y1)
	sendKey(e, tcell.KeyDelete, tcell.ModNone)

	for _, a := range []grid.Address{{Col: 0, Row: 1}, {Col: 1, Row: 1}, {Col: 0, Row: 2}, {Col: 1, Row: 2}} {
		if v := e.engine.Cell(a.Col, a.Row); v != "" {
			t.Fatalf("expected %v cleared, got %q", a, v)
		}
	}
	if e.engine.Cell(0, 3) != "Audi" {
		t.Fatalf("expected cells outside the range kept")
	}
}

func TestDoubleClickOpensAppendEdit(t *testing.T) {
	e := newTestEditor(t, nil)
	clickCell(e, 0, 1)
	clickCell(e, 0, 1)

	ed := e.engine.Edit()
	if !ed.Active || ed.Value != "Mercedes" {
		t.Fatalf("expected append edit of Mercedes, got %+v", ed)
	}
}

func TestGripDragFills(t *testing.T) {
	e := newTestEditor(t, grid.Grid{{"1"}})
	clickCell(e, 0, 0)
	e.render()
	if e.gripX != 13 || e.gripY != 1 {
		t.Fatalf("expected grip at 13,1, got %d,%d", e.gripX, e.gripY)
	}

	press(e, e.gripX, e.gripY, tcell.Button1)
	if e.engine.State() != engine.Dragging {
		t.Fatalf("expected FILL, got %v", e.engine.State())
	}
	x, y := cellPos(0, 3)
	press(e, x, y, tcell.Button1)
	release(e, x, y)

	for row := 0; row <= 3; row++ {
		if v := e.engine.Cell(0, row); v != "1" {
			t.Fatalf("expected row %d filled with 1, got %q", row, v)
		}
	}
	sel, _ := e.engine.Selection()
	if r := sel.Rect(); r.Height() != 4 {
		t.Fatalf("expected union selection of 4 rows, got %+v", r)
	}
}

func TestBracketedPaste(t *testing.T) {
	e := newTestEditor(t, grid.Grid{})
	clickCell(e, 1, 1)

	e.handleEvent(tcell.NewEventPaste(true))
	typeText(e, "a")
	sendKey(e, tcell.KeyTab, tcell.ModNone)
	typeText(e, "b")
	sendKey(e, tcell.KeyEnter, tcell.ModNone)
	typeText(e, "c")
	e.handleEvent(tcell.NewEventPaste(false))

	if e.engine.Cell(1, 1) != "a" || e.engine.Cell(2, 1) != "b" || e.engine.Cell(1, 2) != "c" {
		t.Fatalf("unexpected grid after paste %v", e.engine.Grid().Rows())
	}
	sel, _ := e.engine.Selection()
	if r := sel.Rect(); r.Width() != 2 || r.Height() != 2 {
		t.Fatalf("expected pasted region selected, got %+v", r)
	}
}

func TestCopyThenMenuPaste(t *testing.T) {
	e := newTestEditor(t, grid.Grid{{"x", "y"}})
	x0, y0 := cellPos(0, 0)
	x1, y1 := cellPos(0, 1)
	press(e, x0, y0, tcell.Button1)
	press(e, x1, y1, tcell.Button1)
	release(e, x1, y1)
	sendKey(e, tcell.KeyCtrlC, tcell.ModCtrl)

	clickCell(e, 2, 0)
	e.pasteInternal()

	if e.engine.Cell(2, 0) != "x" || e.engine.Cell(2, 1) != "y" {
		t.Fatalf("expected copied column pasted at C1, got %v", e.engine.Grid().Rows())
	}
}

func TestRightClickOpensMenu(t *testing.T) {
	e := newTestEditor(t, nil)
	x, y := cellPos(1, 1)
	press(e, x, y, tcell.Button2)
	release(e, x, y)

	if e.menu == nil {
		t.Fatal("expected action menu to open")
	}
	if sel, _ := e.engine.Selection(); sel.Anchor != (grid.Address{Col: 1, Row: 1}) {
		t.Fatalf("expected right click to select B2, got %+v", sel.Anchor)
	}
	sendKey(e, tcell.KeyEscape, tcell.ModNone)
	if e.menu != nil {
		t.Fatal("expected Escape to close the menu")
	}
}

func TestMenuSortsDescending(t *testing.T) {
	e := newTestEditor(t, grid.FromRows([][]string{{"n"}, {"b"}, {"a"}, {"c"}}))
	clickCell(e, 0, 1)
	sendKey(e, tcell.KeyCtrlP, tcell.ModCtrl)
	if e.menu == nil {
		t.Fatal("expected Ctrl+P to open the menu")
	}
	typeText(e, "sort desc")
	sendKey(e, tcell.KeyEnter, tcell.ModNone)

	want := []string{"n", "c", "b", "a"}
	for row, v := range want {
		if got := e.engine.Cell(0, row); got != v {
			t.Fatalf("row %d: expected %q, got %q", row, v, got)
		}
	}
	if e.menu != nil {
		t.Fatal("expected menu closed after running")
	}
}

func TestSaveWritesFile(t *testing.T) {
	e := newTestEditor(t, nil)
	path := filepath.Join(t.TempDir(), "out.tsv")
	if err := e.Open(path, ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	clickCell(e, 0, 0)
	typeText(e, "v")
	sendKey(e, tcell.KeyCtrlS, tcell.ModCtrl)

	if e.dirty {
		t.Fatal("expected clean grid after save")
	}
	g, err := sheetio.Load(path, sheetio.Options{Quoted: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Cell(0, 0) != "v" {
		t.Fatalf("expected saved v, got %v", g.Rows())
	}
}

func TestSaveUntitledOpensSaveAs(t *testing.T) {
	e := newTestEditor(t, nil)
	sendKey(e, tcell.KeyCtrlS, tcell.ModCtrl)
	if e.dialog == nil || e.dialog.Type != ui.DialogInput {
		t.Fatal("expected save-as prompt")
	}
	path := filepath.Join(t.TempDir(), "cars.csv")
	typeText(e, path)
	sendKey(e, tcell.KeyEnter, tcell.ModNone)

	if e.path != path {
		t.Fatalf("expected path %s, got %s", path, e.path)
	}
	g, err := sheetio.Load(path, sheetio.Options{})
	if err != nil || g.Cell(0, 1) != "Mercedes" {
		t.Fatalf("expected sample table saved, got %v (%v)", g, err)
	}
}

func TestGotoCell(t *testing.T) {
	e := newTestEditor(t, nil)
	e.screen.(tcell.SimulationScreen).SetSize(80, 10)
	sendKey(e, tcell.KeyCtrlG, tcell.ModCtrl)
	typeText(e, "c40")
	sendKey(e, tcell.KeyEnter, tcell.ModNone)

	sel, _ := e.engine.Selection()
	if sel.Anchor != (grid.Address{Col: 2, Row: 20}) {
		t.Fatalf("expected anchor clamped to C21, got %+v", sel.Anchor)
	}
	if e.view.scrollRow == 0 {
		t.Fatal("expected view to scroll to the anchor")
	}
}

func TestQuitConfirmsWhenDirty(t *testing.T) {
	e := newTestEditor(t, nil)
	clickCell(e, 0, 0)
	typeText(e, "x")
	sendKey(e, tcell.KeyEnter, tcell.ModNone)

	sendKey(e, tcell.KeyCtrlQ, tcell.ModCtrl)
	if e.quit || e.dialog == nil || e.dialog.Type != ui.DialogConfirm {
		t.Fatal("expected confirm prompt instead of quitting")
	}
	typeText(e, "n")
	if !e.quit {
		t.Fatal("expected quit after answering no")
	}
}

func TestQuitWhenClean(t *testing.T) {
	e := newTestEditor(t, nil)
	sendKey(e, tcell.KeyCtrlQ, tcell.ModCtrl)
	if !e.quit {
		t.Fatal("expected immediate quit")
	}
}

func TestFileWatchReloadsCleanGrid(t *testing.T) {
	e := newTestEditor(t, nil)
	path := filepath.Join(t.TempDir(), "w.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.Open(path, ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(path, []byte("c\td\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e.handleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})
	if e.engine.Cell(0, 0) != "c" || e.dirty {
		t.Fatalf("expected reload to c, got %q dirty=%v", e.engine.Cell(0, 0), e.dirty)
	}
}

func TestFileWatchKeepsDirtyGrid(t *testing.T) {
	e := newTestEditor(t, nil)
	path := filepath.Join(t.TempDir(), "w.tsv")
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.Open(path, ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	clickCell(e, 1, 0)
	typeText(e, "mine")
	sendKey(e, tcell.KeyEnter, tcell.ModNone)
	if err := os.WriteFile(path, []byte("theirs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e.handleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})
	if e.engine.Cell(0, 0) != "a" || e.engine.Cell(1, 0) != "mine" {
		t.Fatalf("expected local edits kept, got %v", e.engine.Grid().Rows())
	}
	if !e.statusBar.IsError {
		t.Fatal("expected a conflict warning")
	}
}

func TestBackupRecovery(t *testing.T) {
	e := newTestEditor(t, nil)
	path := filepath.Join(t.TempDir(), "b.tsv")
	if err := e.Open(path, ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	clickCell(e, 0, 0)
	typeText(e, "unsaved")
	sendKey(e, tcell.KeyEnter, tcell.ModNone)
	e.handleEvent(&BackupEvent{})

	if _, err := os.Stat(backupPathForFile(path)); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}

	next := New(e.cfg)
	if err := next.Open(path, ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !next.recoverBackup() {
		t.Fatal("expected backup to be recovered")
	}
	if next.engine.Cell(0, 0) != "unsaved" || !next.dirty {
		t.Fatalf("expected recovered dirty grid, got %v dirty=%v", next.engine.Grid().Rows(), next.dirty)
	}

	next.saveTo(path)
	if _, err := os.Stat(backupPathForFile(path)); !os.IsNotExist(err) {
		t.Fatalf("expected backup removed after save, stat err=%v", err)
	}
}
