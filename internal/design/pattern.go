// internal/design/pattern.go
//
// A pattern arranges block instances on a rows x cols layout. Each layout
// cell holds at most one block reference with a quarter-turn rotation.
// Placement follows the same best-effort occupancy rule as Block.

package design

import (
	"strings"

	"github.com/google/uuid"

	"patchwork/internal/grid"
)

const (
	// MinLayout and MaxLayout bound the pattern layout in each dimension.
	MinLayout = 1
	MaxLayout = 30
)

// BlockRef places one block instance in a pattern layout cell.
type BlockRef struct {
	Position grid.Position `json:"position"`
	BlockID  string        `json:"block_id"`
	Turns    int           `json:"turns,omitempty"` // quarter turns clockwise, 0-3
}

// Pattern is an arrangement of blocks on a layout grid.
type Pattern struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Placements []BlockRef `json:"placements"`
}

// NewPattern creates an empty pattern layout, clamping dimensions.
func NewPattern(name string, rows, cols int) *Pattern {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled Pattern"
	}
	return &Pattern{
		ID:   uuid.NewString(),
		Name: name,
		Rows: clampLayout(rows),
		Cols: clampLayout(cols),
	}
}

// Bounds returns the layout extent.
func (p *Pattern) Bounds() grid.Bounds {
	return grid.Bounds{Rows: p.Rows, Cols: p.Cols}
}

func (p *Pattern) indexAt(pos grid.Position) int {
	for i, ref := range p.Placements {
		if ref.Position == pos {
			return i
		}
	}
	return -1
}

// Occupied reports whether the layout cell holds a block.
func (p *Pattern) Occupied(pos grid.Position) bool {
	return p.indexAt(pos) >= 0
}

// RefAt returns the block reference at the layout cell, if any.
func (p *Pattern) RefAt(pos grid.Position) (BlockRef, bool) {
	if i := p.indexAt(pos); i >= 0 {
		return p.Placements[i], true
	}
	return BlockRef{}, false
}

// Place puts a block instance into an unoccupied in-bounds cell.
func (p *Pattern) Place(pos grid.Position, blockID string) bool {
	if blockID == "" || !p.Bounds().Contains(pos) || p.Occupied(pos) {
		return false
	}
	p.Placements = append(p.Placements, BlockRef{Position: pos, BlockID: blockID})
	return true
}

// PlaceAll batch-places the block into every usable candidate cell,
// skipping occupied and out-of-bounds cells. Returns how many were placed.
func (p *Pattern) PlaceAll(cells []grid.Position, blockID string) int {
	if blockID == "" {
		return 0
	}
	placed := 0
	for _, cell := range cells {
		if p.Place(cell, blockID) {
			placed++
		}
	}
	return placed
}

// Remove clears the layout cell.
func (p *Pattern) Remove(pos grid.Position) bool {
	i := p.indexAt(pos)
	if i < 0 {
		return false
	}
	p.Placements = append(p.Placements[:i], p.Placements[i+1:]...)
	return true
}

// Rotate advances the quarter-turn count of the block at the cell.
func (p *Pattern) Rotate(pos grid.Position) bool {
	i := p.indexAt(pos)
	if i < 0 {
		return false
	}
	p.Placements[i].Turns = (p.Placements[i].Turns + 1) % 4
	return true
}

// LayoutPlan is the confirmation payload for shrinking the layout.
type LayoutPlan struct {
	Rows, Cols int
	Orphans    []BlockRef
}

// PlanResize computes which placements a resize would drop.
func (p *Pattern) PlanResize(rows, cols int) LayoutPlan {
	rows = clampLayout(rows)
	cols = clampLayout(cols)
	bounds := grid.Bounds{Rows: rows, Cols: cols}
	var orphans []BlockRef
	for _, ref := range p.Placements {
		if !bounds.Contains(ref.Position) {
			orphans = append(orphans, ref)
		}
	}
	return LayoutPlan{Rows: rows, Cols: cols, Orphans: orphans}
}

// ApplyResize resizes the layout and drops exactly the planned orphans.
func (p *Pattern) ApplyResize(plan LayoutPlan) {
	p.Rows = plan.Rows
	p.Cols = plan.Cols
	if len(plan.Orphans) == 0 {
		return
	}
	bounds := p.Bounds()
	kept := p.Placements[:0]
	for _, ref := range p.Placements {
		if bounds.Contains(ref.Position) {
			kept = append(kept, ref)
		}
	}
	p.Placements = kept
}

func clampLayout(n int) int {
	if n < MinLayout {
		return MinLayout
	}
	if n > MaxLayout {
		return MaxLayout
	}
	return n
}
