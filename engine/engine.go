// Package engine holds the selection and editing state of a grid sheet. It is
// driven by already hit-tested input (targets, keys, runes) and has no
// knowledge of how the sheet is drawn.
//
// An Engine is not safe for concurrent use.
package engine

import "gridedit/grid"

const (
	DefaultMinColumns   = 10
	DefaultMinRows      = 21
	DefaultMinCellWidth = 10
	DefaultCellHeight   = 1
)

type Options struct {
	// InitialData is the starting grid. Nil selects the sample table; use an
	// empty non-nil grid to start blank.
	InitialData grid.Grid
	MinColumns  int
	MinRows     int

	// Presentation values, passed through to the host unchanged.
	MinCellWidth int
	CellHeight   int
	Width        int
	Height       int

	// OnDataChange receives a private copy of the trimmed grid after each
	// operation that changes stored data.
	OnDataChange func(grid.Grid)
}

// SampleData is the table shown when no initial data is given.
func SampleData() grid.Grid {
	return grid.Grid{
		{"Car", "Mercedes", "BMW", "Audi"},
		{"Price", "5", "22", "29"},
		{"Color", "Pearl Black", "Flame Red", "Biscay Blue"},
	}
}

type Engine struct {
	opts    Options
	data    grid.Grid
	cap     Capacity
	sel     *Selection
	drag    *grid.Address
	gesture gesture
	edit    EditBuffer
	clip    grid.Payload
}

func New(opts Options) *Engine {
	if opts.MinColumns <= 0 {
		opts.MinColumns = DefaultMinColumns
	}
	if opts.MinRows <= 0 {
		opts.MinRows = DefaultMinRows
	}
	if opts.MinCellWidth <= 0 {
		opts.MinCellWidth = DefaultMinCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	data := opts.InitialData
	if data == nil {
		data = SampleData()
	}
	e := &Engine{opts: opts}
	e.data = grid.Trim(grid.Normalize(data))
	e.fitCapacity()
	return e
}

func (e *Engine) Options() Options { return e.opts }

// Grid returns a copy of the stored data.
func (e *Engine) Grid() grid.Grid { return e.data.Clone() }

func (e *Engine) Cell(col, row int) string { return e.data.Cell(col, row) }

func (e *Engine) Capacity() Capacity { return e.cap }

// Selection returns the live selection; ok is false before anything has been
// selected.
func (e *Engine) Selection() (Selection, bool) {
	if e.sel == nil {
		return Selection{}, false
	}
	s := *e.sel
	if s.Extent != nil {
		ext := *s.Extent
		s.Extent = &ext
	}
	return s, true
}

func (e *Engine) DragTarget() (grid.Address, bool) {
	if e.drag == nil {
		return grid.Address{}, false
	}
	return *e.drag, true
}

func (e *Engine) Edit() EditBuffer { return e.edit }

// Clipboard returns the payload of the last copy or paste.
func (e *Engine) Clipboard() grid.Payload { return e.clip }

func (e *Engine) State() State {
	switch {
	case e.sel == nil:
		return Idle
	case e.gesture == (filling{}):
		return Dragging
	case e.edit.Active:
		return Typing
	case e.sel.IsRange():
		return RangeSelected
	}
	return CellSelected
}

// SetData replaces the stored grid without notifying the host, for example
// after the host reloaded its file. Any edit in progress is dropped.
func (e *Engine) SetData(g grid.Grid) {
	e.edit = EditBuffer{}
	e.gesture = nil
	e.drag = nil
	e.data = grid.Trim(grid.Normalize(g))
	e.fitCapacity()
	e.clampSelection()
}

// apply stores g and notifies the host once.
func (e *Engine) apply(g grid.Grid) {
	e.data = g
	e.fitCapacity()
	e.notify()
}

func (e *Engine) notify() {
	if e.opts.OnDataChange != nil {
		e.opts.OnDataChange(e.data.Clone())
	}
}

func (e *Engine) fitCapacity() {
	e.cap.Columns = max(e.cap.Columns, e.opts.MinColumns, e.data.Columns())
	e.cap.Rows = max(e.cap.Rows, e.opts.MinRows, e.data.RowCount())
}

// cover grows capacity so every cell of r is addressable.
func (e *Engine) cover(r grid.Rect) {
	e.cap.Columns = max(e.cap.Columns, r.Max.Col+1)
	e.cap.Rows = max(e.cap.Rows, r.Max.Row+1)
}

func (e *Engine) clamp(col, row int) grid.Address {
	return grid.Address{Col: col, Row: row}.Clamp(e.cap.Columns, e.cap.Rows)
}

func (e *Engine) clampSelection() {
	if e.sel == nil {
		return
	}
	e.sel.Anchor = e.sel.Anchor.Clamp(e.cap.Columns, e.cap.Rows)
	if e.sel.Extent != nil {
		ext := e.sel.Extent.Clamp(e.cap.Columns, e.cap.Rows)
		e.sel.Extent = &ext
	}
	if e.edit.Active && !e.edit.At.Equal(e.sel.Anchor) {
		e.edit = EditBuffer{}
	}
}

func (e *Engine) selectCell(a grid.Address) {
	e.sel = &Selection{Anchor: a}
	e.drag = nil
}

func (e *Engine) selectRect(r grid.Rect) {
	e.cover(r)
	if r.Single() {
		e.selectCell(r.Min)
		return
	}
	ext := r.Max
	e.sel = &Selection{Anchor: r.Min, Extent: &ext}
	e.drag = nil
}

// rangeRect returns the active rectangle when more than one cell is selected.
func (e *Engine) rangeRect() *grid.Rect {
	if e.sel == nil || !e.sel.IsRange() {
		return nil
	}
	r := e.sel.Rect()
	return &r
}
