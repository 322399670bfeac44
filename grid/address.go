package grid

// Header marks the header position on an axis (row header or column header).
const Header = -1

type Address struct {
	Col, Row int
}

func (a Address) Equal(other Address) bool {
	return a.Col == other.Col && a.Row == other.Row
}

// Clamp limits the address to [0, cols) x [0, rows). A zero-sized axis clamps to 0.
func (a Address) Clamp(cols, rows int) Address {
	return Address{Col: clampIndex(a.Col, cols), Row: clampIndex(a.Row, rows)}
}

func clampIndex(v, n int) int {
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Rect is an inclusive, normalized cell rectangle.
type Rect struct {
	Min, Max Address
}

func NewRect(a, b Address) Rect {
	r := Rect{Min: a, Max: b}
	if b.Col < a.Col {
		r.Min.Col, r.Max.Col = b.Col, a.Col
	}
	if b.Row < a.Row {
		r.Min.Row, r.Max.Row = b.Row, a.Row
	}
	return r
}

// RectAt returns the rectangle of the given size whose top-left corner is origin.
func RectAt(origin Address, width, height int) Rect {
	return Rect{
		Min: origin,
		Max: Address{Col: origin.Col + width - 1, Row: origin.Row + height - 1},
	}
}

func (r Rect) Width() int  { return r.Max.Col - r.Min.Col + 1 }
func (r Rect) Height() int { return r.Max.Row - r.Min.Row + 1 }

func (r Rect) Contains(a Address) bool {
	return a.Col >= r.Min.Col && a.Col <= r.Max.Col &&
		a.Row >= r.Min.Row && a.Row <= r.Max.Row
}

func (r Rect) Single() bool {
	return r.Min.Equal(r.Max)
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	u := r
	u.Min.Col = min(u.Min.Col, o.Min.Col)
	u.Min.Row = min(u.Min.Row, o.Min.Row)
	u.Max.Col = max(u.Max.Col, o.Max.Col)
	u.Max.Row = max(u.Max.Row, o.Max.Row)
	return u
}
