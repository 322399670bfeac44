package engine

import (
	"testing"

	"gridedit/grid"
)

func TestDragSelectsRangeAndCollapses(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.PointerDown(CellTarget(1, 1), Primary)
	if e.State() != CellSelected {
		t.Fatalf("expected CELL, got %s", e.State())
	}
	e.PointerMove(CellTarget(3, 2))
	if e.State() != RangeSelected {
		t.Fatalf("expected RANGE, got %s", e.State())
	}
	sel, _ := e.Selection()
	if r := sel.Rect(); r != grid.NewRect(grid.Address{Col: 1, Row: 1}, grid.Address{Col: 3, Row: 2}) {
		t.Fatalf("unexpected rect %+v", r)
	}

	e.PointerMove(CellTarget(1, 1))
	if e.State() != CellSelected {
		t.Fatalf("expected CELL after returning to anchor, got %s", e.State())
	}
	e.PointerUp()
	e.PointerMove(CellTarget(4, 4))
	if e.State() != CellSelected {
		t.Fatalf("expected move after release to be ignored, got %s", e.State())
	}
}

func TestReleaseKeepsSelection(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.PointerDown(CellTarget(0, 0), Primary)
	e.PointerMove(CellTarget(2, 2))
	before, _ := e.Selection()
	e.PointerUp()
	after, _ := e.Selection()
	if before.Rect() != after.Rect() {
		t.Fatalf("expected release to keep %+v, got %+v", before.Rect(), after.Rect())
	}
}

func TestRowHeaderSelectsFullRow(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.PointerDown(RowHeaderTarget(2), Primary)
	sel, _ := e.Selection()
	want := grid.NewRect(grid.Address{Col: 0, Row: 2}, grid.Address{Col: 9, Row: 2})
	if sel.Rect() != want {
		t.Fatalf("expected %+v, got %+v", want, sel.Rect())
	}
	e.PointerMove(CellTarget(3, 4))
	sel, _ = e.Selection()
	want = grid.NewRect(grid.Address{Col: 0, Row: 2}, grid.Address{Col: 9, Row: 4})
	if sel.Rect() != want {
		t.Fatalf("expected row drag to keep full width %+v, got %+v", want, sel.Rect())
	}
}

func TestColumnHeaderSelectsFullColumn(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.PointerDown(ColumnHeaderTarget(1), Primary)
	e.PointerMove(ColumnHeaderTarget(2))
	sel, _ := e.Selection()
	want := grid.NewRect(grid.Address{Col: 1, Row: 0}, grid.Address{Col: 2, Row: 20})
	if sel.Rect() != want {
		t.Fatalf("expected %+v, got %+v", want, sel.Rect())
	}
}

func TestCornerPressIsIgnored(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.PointerDown(Target{Kind: Corner, Col: grid.Header, Row: grid.Header}, Primary)
	if e.State() != Idle {
		t.Fatalf("expected IDLE, got %s", e.State())
	}
}

func TestFillDragReplicatesSelection(t *testing.T) {
	e, rec := newTestEngine(nil, 0, 0)
	e.PointerDown(CellTarget(1, 1), Primary)
	e.PointerUp()

	e.GripDown()
	if e.State() != Dragging {
		t.Fatalf("expected FILL, got %s", e.State())
	}
	e.PointerMove(CellTarget(1, 1))
	if _, ok := e.DragTarget(); ok {
		t.Fatalf("expected no drag target inside the selection")
	}
	e.PointerMove(CellTarget(1, 5))
	if a, ok := e.DragTarget(); !ok || a != (grid.Address{Col: 1, Row: 5}) {
		t.Fatalf("expected drag target (1,5), got %+v ok=%v", a, ok)
	}
	e.PointerMove(CellTarget(1, 1))
	if _, ok := e.DragTarget(); ok {
		t.Fatalf("expected re-entering the selection to clear the target")
	}
	e.PointerMove(CellTarget(1, 5))
	e.PointerUp()

	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 data change, got %d", len(rec.calls))
	}
	for r := 1; r <= 5; r++ {
		if e.Cell(1, r) != "5" {
			t.Fatalf("row %d: expected 5, got %q", r, e.Cell(1, r))
		}
	}
	sel, _ := e.Selection()
	want := grid.NewRect(grid.Address{Col: 1, Row: 1}, grid.Address{Col: 1, Row: 5})
	if sel.Rect() != want {
		t.Fatalf("expected union selection %+v, got %+v", want, sel.Rect())
	}
	if e.State() != RangeSelected {
		t.Fatalf("expected RANGE after fill, got %s", e.State())
	}
}

func TestFillReleaseWithoutTargetChangesNothing(t *testing.T) {
	e, rec := newTestEngine(nil, 0, 0)
	e.PointerDown(CellTarget(0, 0), Primary)
	e.PointerUp()
	e.GripDown()
	e.PointerMove(CellTarget(0, 0))
	e.PointerUp()
	if len(rec.calls) != 0 {
		t.Fatalf("expected no data change, got %d", len(rec.calls))
	}
	if e.State() != CellSelected {
		t.Fatalf("expected CELL, got %s", e.State())
	}
}

func TestPressingAnotherCellCommitsEdit(t *testing.T) {
	e, rec := newTestEngine(nil, 0, 0)
	e.PointerDown(CellTarget(4, 4), Primary)
	e.PointerUp()
	e.TypeRune('q')

	e.PointerDown(CellTarget(4, 4), Primary)
	if e.State() != Typing {
		t.Fatalf("expected pressing the edited cell to keep typing, got %s", e.State())
	}
	e.PointerDown(CellTarget(0, 0), Primary)
	if len(rec.calls) != 1 || e.Cell(4, 4) != "q" {
		t.Fatalf("expected commit of q, got %q after %d changes", e.Cell(4, 4), len(rec.calls))
	}
	if a := anchorOf(t, e); a != (grid.Address{}) {
		t.Fatalf("expected anchor at origin, got %+v", a)
	}
}

func TestContextPressKeepsRange(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.PointerDown(CellTarget(0, 0), Primary)
	e.PointerMove(CellTarget(2, 2))
	e.PointerUp()

	e.PointerDown(CellTarget(1, 1), Secondary)
	if e.State() != RangeSelected {
		t.Fatalf("expected range kept, got %s", e.State())
	}
	e.PointerDown(CellTarget(5, 5), Secondary)
	if e.State() != CellSelected || anchorOf(t, e) != (grid.Address{Col: 5, Row: 5}) {
		t.Fatalf("expected single cell (5,5), got %s at %+v", e.State(), anchorOf(t, e))
	}
}

func TestDoubleClickOpensAppendEdit(t *testing.T) {
	e, _ := newTestEngine(nil, 0, 0)
	e.DoubleClick(CellTarget(2, 1))
	ed := e.Edit()
	if !ed.Active || ed.Value != "Pearl Black" {
		t.Fatalf("expected append edit seeded with cell text, got %+v", ed)
	}
}
