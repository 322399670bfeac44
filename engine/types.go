package engine

import "gridedit/grid"

// TargetKind says what part of the sheet a pointer event landed on.
type TargetKind int

const (
	Cell TargetKind = iota
	RowHeader
	ColumnHeader
	Corner
)

func (k TargetKind) String() string {
	switch k {
	case Cell:
		return "cell"
	case RowHeader:
		return "row header"
	case ColumnHeader:
		return "column header"
	case Corner:
		return "corner"
	}
	return "unknown"
}

// Target is a hit-tested pointer position. Col is ignored for row headers and
// Row for column headers.
type Target struct {
	Kind TargetKind
	Col  int
	Row  int
}

func CellTarget(col, row int) Target {
	return Target{Kind: Cell, Col: col, Row: row}
}

func RowHeaderTarget(row int) Target {
	return Target{Kind: RowHeader, Col: grid.Header, Row: row}
}

func ColumnHeaderTarget(col int) Target {
	return Target{Kind: ColumnHeader, Col: col, Row: grid.Header}
}

type Button int

const (
	Primary Button = iota
	Secondary
)

// Key is a navigation or editing key. Printable input goes through TypeRune.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyEnter
	KeyBackspace
	KeyEscape
)

type State int

const (
	Idle State = iota
	CellSelected
	RangeSelected
	Typing
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case CellSelected:
		return "CELL"
	case RangeSelected:
		return "RANGE"
	case Typing:
		return "EDIT"
	case Dragging:
		return "FILL"
	}
	return "?"
}

// Capacity is the displayed sheet size. It never drops below the configured
// minimums or the stored data.
type Capacity struct {
	Columns int
	Rows    int
}

// Selection is the anchor cell plus an optional opposite corner.
type Selection struct {
	Anchor grid.Address
	Extent *grid.Address
}

func (s Selection) IsRange() bool {
	return s.Extent != nil && !s.Extent.Equal(s.Anchor)
}

// Rect returns the normalized rectangle covered by the selection.
func (s Selection) Rect() grid.Rect {
	if s.Extent == nil {
		return grid.NewRect(s.Anchor, s.Anchor)
	}
	return grid.NewRect(s.Anchor, *s.Extent)
}

// gesture is the pointer interaction in progress; nil means none.
type gesture interface {
	gesture()
}

type pressMode int

const (
	pressCell pressMode = iota
	pressRow
	pressColumn
)

type pressing struct {
	mode pressMode
}

type filling struct{}

func (pressing) gesture() {}
func (filling) gesture()  {}
