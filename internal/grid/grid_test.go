package grid

import "testing"

func TestRectBetweenNormalizesCorners(t *testing.T) {
	r := RectBetween(Position{Row: 2, Col: 2}, Position{Row: 0, Col: 1})
	if r.MinRow != 0 || r.MaxRow != 2 || r.MinCol != 1 || r.MaxCol != 2 {
		t.Fatalf("unexpected rect: %+v", r)
	}
	same := RectBetween(Position{Row: 0, Col: 1}, Position{Row: 2, Col: 2})
	if r != same {
		t.Fatalf("rect should not depend on corner order: %+v vs %+v", r, same)
	}
}

func TestRectCellsRowMajor(t *testing.T) {
	r := RectBetween(Position{Row: 1, Col: 0}, Position{Row: 2, Col: 1})
	cells := r.Cells()
	want := []Position{{1, 0}, {1, 1}, {2, 0}, {2, 1}}
	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(cells))
	}
	for i, cell := range cells {
		if cell != want[i] {
			t.Fatalf("cell %d: expected %+v, got %+v", i, want[i], cell)
		}
	}
}

func TestFootprintSpansCells(t *testing.T) {
	cells := Footprint(Position{Row: 1, Col: 2}, Span{Rows: 1, Cols: 2})
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0] != (Position{Row: 1, Col: 2}) || cells[1] != (Position{Row: 1, Col: 3}) {
		t.Fatalf("unexpected footprint: %+v", cells)
	}
}

func TestBoundsContainsFootprint(t *testing.T) {
	b := Square(3)
	if !b.ContainsFootprint(Position{Row: 2, Col: 1}, Span{Rows: 1, Cols: 2}) {
		t.Fatal("footprint ending at (2,2) should fit a 3x3 grid")
	}
	if b.ContainsFootprint(Position{Row: 2, Col: 2}, Span{Rows: 1, Cols: 2}) {
		t.Fatal("footprint overflowing the right edge should be rejected")
	}
	if b.ContainsFootprint(Position{Row: -1, Col: 0}, Unit) {
		t.Fatal("negative rows are out of bounds")
	}
}

func TestAdjacent(t *testing.T) {
	center := Position{Row: 1, Col: 1}
	for _, n := range center.Neighbors() {
		if !center.Adjacent(n) {
			t.Fatalf("%+v should be adjacent to %+v", n, center)
		}
	}
	if center.Adjacent(Position{Row: 0, Col: 0}) {
		t.Fatal("diagonal cells are not adjacent")
	}
	if center.Adjacent(center) {
		t.Fatal("a cell is not adjacent to itself")
	}
}
