// internal/viewport/viewport.go
//
// Camera maps pointer coordinates on the rendering surface to grid cells
// through the current pan offset and zoom scale, and keeps both inside
// their bounds. The same clamp runs after wheel zoom, step zoom, and pan,
// so the grid can never be zoomed away or panned fully off-screen.

package viewport

import (
	"math"

	"patchwork/internal/grid"
)

const (
	// MaxScale is the fixed zoom ceiling.
	MaxScale = 3.0

	// minVisibleFraction keeps the grid at least this fraction of the
	// viewport height when zooming out.
	minVisibleFraction = 0.5

	// Pan margin: this fraction of the scaled grid stays visible on each
	// side, capped at marginCap surface units.
	marginFraction = 0.2
	marginCap      = 100.0
)

// Camera is the pan/zoom state over a rows x cols grid of cellSize units
// rendered into a viewport of width x height surface units.
type Camera struct {
	ViewportW float64
	ViewportH float64
	CellSize  float64
	Bounds    grid.Bounds

	Scale   float64
	OffsetX float64
	OffsetY float64
}

// New creates a camera at 1x zoom with the grid centered in the viewport.
func New(viewportW, viewportH, cellSize float64, bounds grid.Bounds) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		CellSize:  cellSize,
		Bounds:    bounds,
		Scale:     1,
	}
	c.Center()
	return c
}

func (c *Camera) gridW() float64 { return c.CellSize * float64(c.Bounds.Cols) }
func (c *Camera) gridH() float64 { return c.CellSize * float64(c.Bounds.Rows) }

// MinScale derives the zoom floor from the viewport height: the scaled
// grid never drops below half the viewport height.
func (c *Camera) MinScale() float64 {
	h := c.gridH()
	if h <= 0 {
		return MaxScale
	}
	min := minVisibleFraction * c.ViewportH / h
	if min > MaxScale {
		return MaxScale
	}
	return min
}

// Center positions the grid in the middle of the viewport at the current
// scale.
func (c *Camera) Center() {
	c.OffsetX = (c.ViewportW - c.gridW()*c.Scale) / 2
	c.OffsetY = (c.ViewportH - c.gridH()*c.Scale) / 2
	c.clamp()
}

// SetViewport updates the surface dimensions (resize observation) and
// re-clamps.
func (c *Camera) SetViewport(w, h float64) {
	c.ViewportW = w
	c.ViewportH = h
	c.clamp()
}

// SetBounds updates the grid extent (block resize) and re-clamps.
func (c *Camera) SetBounds(b grid.Bounds) {
	c.Bounds = b
	c.clamp()
}

// ZoomAt scales by factor keeping the surface point (px, py) over the
// same grid point. Wheel zoom.
func (c *Camera) ZoomAt(factor, px, py float64) {
	old := c.Scale
	c.Scale = clampf(c.Scale*factor, c.MinScale(), MaxScale)
	if c.Scale != old {
		ratio := c.Scale / old
		c.OffsetX = px - (px-c.OffsetX)*ratio
		c.OffsetY = py - (py-c.OffsetY)*ratio
	}
	c.clamp()
}

// ZoomStep scales by a fixed step about the viewport center. Button zoom.
func (c *Camera) ZoomStep(in bool) {
	factor := 1.25
	if !in {
		factor = 1 / factor
	}
	c.ZoomAt(factor, c.ViewportW/2, c.ViewportH/2)
}

// Pan shifts the offset by a pointer delta and clamps. Used both during
// the drag and at drag-end.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
	c.clamp()
}

// ScreenToCell maps a surface point to the cell under it. The second
// return is false outside the grid.
func (c *Camera) ScreenToCell(px, py float64) (grid.Position, bool) {
	localX := (px - c.OffsetX) / c.Scale
	localY := (py - c.OffsetY) / c.Scale
	col := int(math.Floor(localX / c.CellSize))
	row := int(math.Floor(localY / c.CellSize))
	p := grid.Position{Row: row, Col: col}
	if !c.Bounds.Contains(p) {
		return grid.Position{}, false
	}
	return p, true
}

// CellOrigin returns the surface coordinates of the cell's top-left
// corner at the current transform.
func (c *Camera) CellOrigin(p grid.Position) (float64, float64) {
	return c.OffsetX + float64(p.Col)*c.CellSize*c.Scale,
		c.OffsetY + float64(p.Row)*c.CellSize*c.Scale
}

// CellExtent returns the rendered size of one cell.
func (c *Camera) CellExtent() float64 {
	return c.CellSize * c.Scale
}

// clamp enforces the scale bounds and the pan margin: at least
// min(20% of the scaled grid, 100 units) of the grid stays on-screen in
// each direction.
func (c *Camera) clamp() {
	c.Scale = clampf(c.Scale, c.MinScale(), MaxScale)

	scaledW := c.gridW() * c.Scale
	scaledH := c.gridH() * c.Scale
	marginX := math.Min(marginFraction*scaledW, marginCap)
	marginY := math.Min(marginFraction*scaledH, marginCap)

	// Left/top limit: the grid's trailing edge keeps marginX on-screen.
	// Right/bottom limit: the leading edge stays marginX from the far side.
	c.OffsetX = clampf(c.OffsetX, marginX-scaledW, c.ViewportW-marginX)
	c.OffsetY = clampf(c.OffsetY, marginY-scaledH, c.ViewportH-marginY)
}

func clampf(v, lo, hi float64) float64 {
	if lo > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
