// internal/grid/grid.go
//
// Cell coordinates, footprints, and rectangle math shared by the block and
// pattern canvases. Everything here is a plain value type; occupancy and
// placement policy live in internal/design and internal/placement.

package grid

import "fmt"

// Position identifies a single cell by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key returns an opaque string key for occupancy maps.
func (p Position) Key() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Add offsets the position by the given deltas.
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Neighbors returns the four orthogonal neighbors in row-major order.
// Bounds are not checked here; callers filter against their Bounds.
func (p Position) Neighbors() []Position {
	return []Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
		{Row: p.Row + 1, Col: p.Col},
	}
}

// Adjacent reports whether q is an orthogonal neighbor of p.
func (p Position) Adjacent(q Position) bool {
	dr := p.Row - q.Row
	dc := p.Col - q.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Span describes the footprint extent of a placed shape. Most shapes are
// 1x1; flying geese span 1x2 or 2x1.
type Span struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Unit is the 1x1 span.
var Unit = Span{Rows: 1, Cols: 1}

// Footprint enumerates the cells covered by a shape at pos with the given
// span, in row-major order.
func Footprint(pos Position, span Span) []Position {
	cells := make([]Position, 0, span.Rows*span.Cols)
	for r := 0; r < span.Rows; r++ {
		for c := 0; c < span.Cols; c++ {
			cells = append(cells, Position{Row: pos.Row + r, Col: pos.Col + c})
		}
	}
	return cells
}

// Bounds is a rows x cols grid extent with origin at (0,0).
type Bounds struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Square returns an n x n bounds.
func Square(n int) Bounds {
	return Bounds{Rows: n, Cols: n}
}

// Contains reports whether the cell lies inside the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// ContainsFootprint reports whether every cell of the footprint is inside.
func (b Bounds) ContainsFootprint(pos Position, span Span) bool {
	return b.Contains(pos) && b.Contains(Position{Row: pos.Row + span.Rows - 1, Col: pos.Col + span.Cols - 1})
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// RectBetween returns the rectangle spanned by two corner cells, in any
// order. This is the shared rule for drag-to-fill and anchored range fill.
func RectBetween(a, b Position) Rect {
	r := Rect{MinRow: a.Row, MaxRow: b.Row, MinCol: a.Col, MaxCol: b.Col}
	if r.MinRow > r.MaxRow {
		r.MinRow, r.MaxRow = r.MaxRow, r.MinRow
	}
	if r.MinCol > r.MaxCol {
		r.MinCol, r.MaxCol = r.MaxCol, r.MinCol
	}
	return r
}

// Cells enumerates every cell in the rectangle in row-major order.
func (r Rect) Cells() []Position {
	cells := make([]Position, 0, (r.MaxRow-r.MinRow+1)*(r.MaxCol-r.MinCol+1))
	for row := r.MinRow; row <= r.MaxRow; row++ {
		for col := r.MinCol; col <= r.MaxCol; col++ {
			cells = append(cells, Position{Row: row, Col: col})
		}
	}
	return cells
}

// Contains reports whether the cell lies inside the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.Row >= r.MinRow && p.Row <= r.MaxRow && p.Col >= r.MinCol && p.Col <= r.MaxCol
}
