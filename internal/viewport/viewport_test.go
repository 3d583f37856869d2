package viewport

import (
	"math"
	"testing"

	"patchwork/internal/grid"
)

func newTestCamera() *Camera {
	// 800x600 surface, 3x3 grid of 100-unit cells.
	return New(800, 600, 100, grid.Square(3))
}

func TestScreenToCellThroughTransform(t *testing.T) {
	c := newTestCamera()
	c.Scale = 2
	c.OffsetX = 50
	c.OffsetY = 10

	cell, ok := c.ScreenToCell(251, 211) // local (100.5, 100.5) -> cell (1,1)
	if !ok || cell != (grid.Position{Row: 1, Col: 1}) {
		t.Fatalf("expected (1,1), got %+v ok=%v", cell, ok)
	}
	if _, ok := c.ScreenToCell(49, 100); ok {
		t.Fatal("point left of the grid should be rejected")
	}
	if _, ok := c.ScreenToCell(50+600, 211); ok {
		t.Fatal("point past the right edge should be rejected")
	}
}

func TestZoomClampedToBounds(t *testing.T) {
	c := newTestCamera()
	c.ZoomAt(100, 400, 300)
	if c.Scale != MaxScale {
		t.Fatalf("expected scale clamped to %v, got %v", MaxScale, c.Scale)
	}
	c.ZoomAt(0.0001, 400, 300)
	if got, want := c.Scale, c.MinScale(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected scale clamped to min %v, got %v", want, got)
	}
	// min scale keeps the grid at half the viewport height: 300/300 = 1.
	if math.Abs(c.MinScale()-1.0) > 1e-9 {
		t.Fatalf("expected min scale 1.0 for this layout, got %v", c.MinScale())
	}
}

func TestZoomAtKeepsPointStable(t *testing.T) {
	c := newTestCamera()
	px, py := 400.0, 250.0
	before, ok := c.ScreenToCell(px, py)
	if !ok {
		t.Fatal("probe point should be on the grid")
	}
	c.ZoomAt(1.5, px, py)
	after, ok := c.ScreenToCell(px, py)
	if !ok || after != before {
		t.Fatalf("zoom about a point moved it: %+v -> %+v", before, after)
	}
}

func TestPanClampedToMargin(t *testing.T) {
	c := newTestCamera()
	c.Pan(1e6, 1e6)
	scaledW := 300 * c.Scale
	marginX := math.Min(0.2*scaledW, 100)
	if got, want := c.OffsetX, 800-marginX; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected offsetX clamped to %v, got %v", want, got)
	}
	c.Pan(-1e6, -1e6)
	if got, want := c.OffsetX, marginX-scaledW; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected offsetX clamped to %v, got %v", want, got)
	}
}

func TestScaleAlwaysInBoundsAfterAnyOperation(t *testing.T) {
	c := newTestCamera()
	ops := []func(){
		func() { c.ZoomAt(10, 0, 0) },
		func() { c.ZoomStep(true) },
		func() { c.ZoomStep(false) },
		func() { c.Pan(-5000, 4000) },
		func() { c.ZoomAt(0.001, 799, 599) },
		func() { c.SetViewport(400, 300) },
		func() { c.SetBounds(grid.Square(9)) },
	}
	for i, op := range ops {
		op()
		if c.Scale < c.MinScale()-1e-9 || c.Scale > MaxScale+1e-9 {
			t.Fatalf("op %d left scale %v outside [%v, %v]", i, c.Scale, c.MinScale(), MaxScale)
		}
	}
}

func TestCellOriginInvertsScreenToCell(t *testing.T) {
	c := newTestCamera()
	c.ZoomAt(1.5, 200, 200)
	c.Pan(-40, 25)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			p := grid.Position{Row: row, Col: col}
			x, y := c.CellOrigin(p)
			half := c.CellExtent() / 2
			got, ok := c.ScreenToCell(x+half, y+half)
			if !ok || got != p {
				t.Fatalf("center of %+v mapped to %+v ok=%v", p, got, ok)
			}
		}
	}
}
