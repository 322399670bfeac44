// Package editor is the terminal host for a grid sheet. It owns the screen,
// maps tcell input onto the engine, and handles files, clipboard, backups and
// the external-change watcher.
package editor

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gridedit/clipboardx"
	"gridedit/config"
	"gridedit/engine"
	"gridedit/grid"
	"gridedit/sheetio"
	"gridedit/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config

	engine *engine.Engine
	clip   *clipboardx.System

	path  string // absolute; empty for an untitled grid
	sheet string
	saved grid.Grid // grid as last loaded or saved
	dirty bool

	statusBar *ui.StatusBar
	dialog    *ui.Dialog
	menu      *ui.Menu

	view viewState

	quit bool

	// Mouse tracking
	mouseDown     bool
	secondaryDown bool
	lastClick     time.Time
	lastClickCell grid.Address

	// Bracketed paste accumulates here between the start and end markers.
	pasting  bool
	pasteBuf []rune

	// Grip handle position from the last render, -1 when off screen.
	gripX, gripY int

	fileWatcher  *fsnotify.Watcher
	lastSaveTime time.Time
	stopBackup   chan struct{}

	// Temporary status messages
	statusMessageTime time.Time
}

type viewState struct {
	scrollCol int
	scrollRow int
}

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

// BackupEvent asks the event loop to write a backup of unsaved changes.
type BackupEvent struct {
	tcell.EventTime
}

const doubleClickInterval = 400 * time.Millisecond

func New(cfg *config.Config) *Editor {
	e := &Editor{
		cfg:       cfg,
		clip:      clipboardx.NewSystem(),
		statusBar: ui.NewStatusBar(),
		gripX:     -1,
		gripY:     -1,
	}
	e.newEngine(nil)
	return e
}

func (e *Editor) newEngine(data grid.Grid) {
	e.engine = engine.New(engine.Options{
		InitialData:  data,
		MinColumns:   e.cfg.MinColumns,
		MinRows:      e.cfg.MinRows,
		MinCellWidth: e.cfg.MinCellWidth,
		CellHeight:   e.cfg.CellHeight,
		Width:        e.cfg.Width,
		Height:       e.cfg.Height,
		OnDataChange: e.onDataChange,
	})
	e.saved = e.engine.Grid()
	e.dirty = false
}

func (e *Editor) onDataChange(g grid.Grid) {
	e.dirty = !grid.Equal(g, e.saved)
	log.Printf("grid changed: %dx%d dirty=%v", g.Columns(), g.RowCount(), e.dirty)
}

// Open loads path into a fresh engine. A missing file starts an empty grid
// that is created on the first save.
func (e *Editor) Open(path, sheet string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	g, err := sheetio.Load(abs, sheetio.Options{Sheet: sheet, Quoted: e.cfg.ClipboardEscape})
	switch {
	case errors.Is(err, sheetio.ErrFileNotFound):
		g = grid.Grid{}
		e.setTemporaryMessage("New file " + filepath.Base(abs))
	case err != nil:
		return err
	}
	log.Printf("opened %s (%dx%d)", abs, g.Columns(), g.RowCount())

	e.path = abs
	e.sheet = sheet
	e.newEngine(g)
	e.engine.SelectCell(0, 0)
	e.view = viewState{}
	return nil
}

func (e *Editor) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	e.init(screen)

	if e.path != "" {
		if e.recoverBackup() {
			e.setTemporaryMessage("Recovered unsaved changes from backup")
		}
		e.RestoreSession()
		if e.cfg.WatchFile {
			e.setupFileWatcher(screen)
		}
	}
	if e.cfg.AutoBackup {
		e.startBackupTimer(screen)
	}

	for !e.quit {
		e.clearExpiredMessages()
		e.render()
		e.handleEvent(screen.PollEvent())
	}

	e.SaveSession()
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}
	if e.stopBackup != nil {
		close(e.stopBackup)
	}
	if !e.dirty {
		e.cleanBackup()
	}

	screen.Clear()
	screen.Fini()
	return nil
}

// init attaches the editor to an initialized screen.
func (e *Editor) init(screen tcell.Screen) {
	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	e.screen = screen
	if _, ok := e.engine.Selection(); !ok {
		e.engine.SelectCell(0, 0)
	}
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *tcell.EventPaste:
		e.handlePaste(ev)
	case *FileWatchEvent:
		e.handleFileWatchEvent(ev)
	case *BackupEvent:
		e.saveBackup()
	}
}

func (e *Editor) saveCurrentFile() {
	if e.path == "" {
		e.openSaveAsDialog()
		return
	}
	e.saveTo(e.path)
}

func (e *Editor) saveTo(path string) bool {
	e.engine.Commit()
	g := e.engine.Grid()
	if err := sheetio.Save(path, g, sheetio.Options{Sheet: e.sheet, Quoted: e.cfg.ClipboardEscape}); err != nil {
		log.Printf("save failed: %v", err)
		e.setTemporaryError("Error saving: " + err.Error())
		return false
	}
	if path != e.path {
		e.cleanBackup()
		e.path = path
	}
	e.saved = g
	e.dirty = false
	e.lastSaveTime = time.Now()
	e.cleanBackup()
	log.Printf("saved %s", path)
	e.setTemporaryMessage("Saved " + filepath.Base(path))
	return true
}

func (e *Editor) openSaveAsDialog() {
	d := ui.NewSaveAsDialog(e.path)
	d.OnSubmit = func(value string) {
		e.dialog = nil
		if value == "" {
			return
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			e.setTemporaryError("Error: " + err.Error())
			return
		}
		if _, err := sheetio.DetectFormat(abs); err != nil {
			e.setTemporaryError("Use a .xlsx, .csv or .tsv name")
			return
		}
		e.saveTo(abs)
	}
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) openGotoCellDialog() {
	d := ui.NewGotoCellDialog()
	d.OnSubmit = func(value string) {
		e.dialog = nil
		col, row, err := sheetio.ParseCellName(value)
		if err != nil {
			e.setTemporaryError("Not a cell name: " + value)
			return
		}
		e.engine.SelectCell(col, row)
		e.ensureAnchorVisible()
	}
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) toggleHelpDialog() {
	if e.dialog != nil && e.dialog.Type == ui.DialogHelp {
		e.dialog = nil
		return
	}
	d := ui.NewHelpDialog()
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) handleQuit() {
	if !e.dirty && e.engine.State() != engine.Typing {
		e.quit = true
		return
	}
	name := "untitled"
	if e.path != "" {
		name = filepath.Base(e.path)
	}
	d := ui.NewConfirmDialog("Save changes to " + name + "?")
	d.OnConfirm = func(answer rune) {
		e.dialog = nil
		switch answer {
		case 'y':
			if e.path == "" {
				e.openSaveAsDialog()
				return
			}
			if e.saveTo(e.path) {
				e.quit = true
			}
		case 'n':
			e.quit = true
		}
	}
	e.dialog = d
}

// menuCommands are the sheet actions offered by the action menu.
func (e *Editor) menuCommands() []ui.Command {
	return []ui.Command{
		{Name: "Insert column left", Action: func() { e.engine.InsertColumn(false) }},
		{Name: "Insert column right", Action: func() { e.engine.InsertColumn(true) }},
		{Name: "Insert row above", Action: func() { e.engine.InsertRow(false) }},
		{Name: "Insert row below", Action: func() { e.engine.InsertRow(true) }},
		{Name: "Delete column", Action: func() { e.engine.DeleteColumn() }},
		{Name: "Delete row", Action: func() { e.engine.DeleteRow() }},
		{Name: "Sort ascending", Action: func() { e.engine.Sort(false) }},
		{Name: "Sort descending", Action: func() { e.engine.Sort(true) }},
		{Name: "Copy", Shortcut: "Ctrl+C", Action: e.copySelection},
		{Name: "Cut", Shortcut: "Ctrl+X", Action: e.cutSelection},
		{Name: "Paste", Action: e.pasteInternal},
		{Name: "Save", Shortcut: "Ctrl+S", Action: e.saveCurrentFile},
		{Name: "Save as", Action: e.openSaveAsDialog},
		{Name: "Go to cell", Shortcut: "Ctrl+G", Action: e.openGotoCellDialog},
		{Name: "Help", Shortcut: "F1", Action: e.toggleHelpDialog},
		{Name: "Quit", Shortcut: "Ctrl+Q", Action: e.handleQuit},
	}
}

func (e *Editor) openMenu() {
	e.menu = ui.NewMenu(e.menuCommands(), e.cfg.GetTheme())
	e.menu.OnClose = func() { e.menu = nil }
}

func (e *Editor) openPopupMenu(x, y int) {
	e.menu = ui.NewPopupMenu(e.menuCommands(), e.cfg.GetTheme(), x, y)
	e.menu.OnClose = func() { e.menu = nil }
}

func (e *Editor) updateStatus() {
	sb := e.statusBar
	sb.Mode = e.engine.State().String()
	sb.Filename = ""
	if e.path != "" {
		sb.Filename = filepath.Base(e.path)
	}
	sb.Sheet = e.sheet
	sb.Dirty = e.dirty

	sel, ok := e.engine.Selection()
	if !ok {
		sb.Cell, sb.Value = "", ""
		sb.SelCols, sb.SelRows = 0, 0
		return
	}
	sb.Cell = sheetio.CellName(sel.Anchor.Col, sel.Anchor.Row)
	r := sel.Rect()
	sb.SelCols, sb.SelRows = r.Width(), r.Height()
	if ed := e.engine.Edit(); ed.Active {
		sb.Value = ed.Value
	} else {
		sb.Value = e.engine.Cell(sel.Anchor.Col, sel.Anchor.Row)
	}
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
}

// setTemporaryError sets an error message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
		e.statusMessageTime = time.Time{}
	}
}

// File watching

func (e *Editor) setupFileWatcher(screen tcell.Screen) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("file watcher unavailable: %v", err)
		return
	}
	// Editors and spreadsheet apps save by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(e.path)); err != nil {
		log.Printf("watch %s: %v", filepath.Dir(e.path), err)
		watcher.Close()
		return
	}
	e.fileWatcher = watcher
	target := e.path

	go func() {
		// Debounce: collect events and send after quiet period
		debounceTimer := time.NewTimer(100 * time.Millisecond)
		debounceTimer.Stop()
		var pending fsnotify.Op

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				pending |= event.Op
				debounceTimer.Reset(100 * time.Millisecond)

			case <-debounceTimer.C:
				ev := &FileWatchEvent{Path: target, Op: pending}
				ev.SetEventNow()
				screen.PostEvent(ev)
				pending = 0

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watcher: %v", err)
			}
		}
	}()
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	if ev.Path != e.path {
		return
	}
	log.Printf("watch event %s %v", ev.Path, ev.Op)
	name := filepath.Base(ev.Path)

	info, err := os.Stat(ev.Path)
	if err != nil {
		if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			e.setTemporaryError("Warning: " + name + " was deleted externally")
		}
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	// Allow 1 second grace period after our last save
	if !e.lastSaveTime.IsZero() && info.ModTime().Sub(e.lastSaveTime) <= time.Second {
		return
	}
	if e.dirty || e.engine.State() == engine.Typing {
		e.setTemporaryError("⚠ " + name + " was modified externally! (unsaved changes)")
		return
	}
	g, err := sheetio.Load(ev.Path, sheetio.Options{Sheet: e.sheet, Quoted: e.cfg.ClipboardEscape})
	if err != nil {
		log.Printf("reload failed: %v", err)
		e.setTemporaryError("Error reloading: " + err.Error())
		return
	}
	e.engine.SetData(g)
	e.saved = e.engine.Grid()
	e.dirty = false
	e.setTemporaryMessage("↻ " + name + " (reloaded)")
}
