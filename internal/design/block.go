// internal/design/block.go
//
// Block is the design store for a single quilt square: an N x N grid, a
// flat ordered shape list, and the palette those shapes reference.
// Occupancy is derived by scanning footprints, never stored. Every
// mutation snapshots the shape list first so edits are undoable.
//
// Placement follows the best-effort rule from the canvas: candidate cells
// that are out of bounds or already covered are dropped silently. Callers
// get back what was actually placed, never an error.

package design

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"patchwork/internal/grid"
)

const (
	// MinSize and MaxSize bound the block grid (2x2 up to 9x9).
	MinSize = 2
	MaxSize = 9

	historyLimit = 100
)

// Block is a single quilt square design.
type Block struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Size    int     `json:"size"`
	Shapes  []Shape `json:"shapes"`
	Palette Palette `json:"palette"`

	undo []revision
	redo []revision
}

// revision is one undo step. It carries the palette and grid size along
// with the shape list: role removal and resize edit those together with
// the shapes, and undoing only part would leave dangling role refs or
// out-of-bounds footprints.
type revision struct {
	shapes []Shape
	roles  []Role
	size   int
}

// NewBlock creates an empty block. Sizes outside [MinSize, MaxSize] are
// clamped.
func NewBlock(name string, size int) *Block {
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled Block"
	}
	return &Block{
		ID:      uuid.NewString(),
		Name:    name,
		Size:    size,
		Palette: DefaultPalette(),
	}
}

// Bounds returns the block's grid extent.
func (b *Block) Bounds() grid.Bounds {
	return grid.Square(b.Size)
}

// occupancy builds the cell -> shape index map by scanning footprints.
func (b *Block) occupancy() map[string]int {
	occ := make(map[string]int, len(b.Shapes))
	for i, s := range b.Shapes {
		for _, cell := range s.Footprint() {
			occ[cell.Key()] = i
		}
	}
	return occ
}

// Occupied reports whether any shape covers the cell.
func (b *Block) Occupied(p grid.Position) bool {
	_, ok := b.occupancy()[p.Key()]
	return ok
}

// ShapeAt returns the shape covering the cell, if any.
func (b *Block) ShapeAt(p grid.Position) (Shape, bool) {
	if idx, ok := b.occupancy()[p.Key()]; ok {
		return b.Shapes[idx], true
	}
	return Shape{}, false
}

// fits reports whether the footprint is in bounds and free, ignoring the
// shape at skipIdx (-1 for none).
func (b *Block) fits(pos grid.Position, span grid.Span, skipIdx int) bool {
	if !b.Bounds().ContainsFootprint(pos, span) {
		return false
	}
	occ := b.occupancy()
	for _, cell := range grid.Footprint(pos, span) {
		if idx, ok := occ[cell.Key()]; ok && idx != skipIdx {
			return false
		}
	}
	return true
}

// Place adds the shape if its footprint is in bounds and unoccupied.
// Returns false (and leaves the block untouched) otherwise.
func (b *Block) Place(s Shape) bool {
	if !s.Kind.Valid() || !b.fits(s.Position, s.Span, -1) {
		return false
	}
	b.snapshot()
	b.Shapes = append(b.Shapes, s)
	return true
}

// PlaceAll batch-places 1x1 shapes of the given kind into every usable
// candidate cell, skipping occupied or out-of-bounds cells. All placements
// land in one undo step. Returns the shapes actually placed.
func (b *Block) PlaceAll(kind Kind, cells []grid.Position, role string) []Shape {
	if !kind.Valid() || kind == KindFlyingGeese {
		return nil
	}
	bounds := b.Bounds()
	occ := b.occupancy()
	placed := make([]Shape, 0, len(cells))
	for _, cell := range cells {
		if !bounds.Contains(cell) {
			continue
		}
		if _, taken := occ[cell.Key()]; taken {
			continue
		}
		s := NewShape(kind, cell, role)
		placed = append(placed, s)
		occ[cell.Key()] = -1
	}
	if len(placed) == 0 {
		return nil
	}
	b.snapshot()
	b.Shapes = append(b.Shapes, placed...)
	return placed
}

// Remove deletes the shape covering the cell. Returns false when the cell
// is empty.
func (b *Block) Remove(p grid.Position) bool {
	idx, ok := b.occupancy()[p.Key()]
	if !ok {
		return false
	}
	b.snapshot()
	b.Shapes = append(b.Shapes[:idx], b.Shapes[idx+1:]...)
	return true
}

// Rotate replaces the shape covering the cell with its quarter-turned
// copy. A flying geese rotation that would overflow the grid or collide
// with another shape is a no-op.
func (b *Block) Rotate(p grid.Position) bool {
	idx, ok := b.occupancy()[p.Key()]
	if !ok {
		return false
	}
	rotated := b.Shapes[idx].Rotated()
	if !b.fits(rotated.Position, rotated.Span, idx) {
		return false
	}
	b.snapshot()
	b.Shapes[idx] = rotated
	return true
}

// Flip replaces the shape covering the cell with its mirrored copy.
func (b *Block) Flip(p grid.Position) bool {
	idx, ok := b.occupancy()[p.Key()]
	if !ok {
		return false
	}
	b.snapshot()
	b.Shapes[idx] = b.Shapes[idx].Flipped()
	return true
}

// Recolor assigns a palette role to one sub-part of the shape covering the
// cell.
func (b *Block) Recolor(p grid.Position, part int, roleID string) error {
	if _, ok := b.Palette.Role(roleID); !ok {
		return fmt.Errorf("design: unknown role %s", roleID)
	}
	idx, ok := b.occupancy()[p.Key()]
	if !ok {
		return fmt.Errorf("design: no shape at %s", p.Key())
	}
	b.snapshot()
	b.Shapes[idx] = b.Shapes[idx].Recolored(part, roleID)
	return nil
}

// PlanRoleRemoval builds the role-deletion confirmation payload.
func (b *Block) PlanRoleRemoval(roleID, fallbackID string) (RoleRemoval, error) {
	return b.Palette.PlanRoleRemoval(roleID, fallbackID, b.Shapes)
}

// ApplyRoleRemoval drops the role and reassigns affected shape sub-parts
// to the plan's fallback role in one undoable step.
func (b *Block) ApplyRoleRemoval(plan RoleRemoval) {
	b.snapshot()
	for i, s := range b.Shapes {
		if replaced, changed := s.ReplaceRole(plan.Remove.ID, plan.Fallback.ID); changed {
			b.Shapes[i] = replaced
		}
	}
	b.Palette.removeRole(plan.Remove.ID)
}

// ResizePlan is the confirmation payload for shrinking (or growing) the
// grid: the target size and the shapes whose footprint would fall outside
// it. Growing never orphans shapes.
type ResizePlan struct {
	Size    int
	Orphans []Shape
}

// PlanResize computes which shapes a resize to n would drop. Sizes are
// clamped to [MinSize, MaxSize].
func (b *Block) PlanResize(n int) ResizePlan {
	if n < MinSize {
		n = MinSize
	}
	if n > MaxSize {
		n = MaxSize
	}
	bounds := grid.Square(n)
	var orphans []Shape
	for _, s := range b.Shapes {
		if !bounds.ContainsFootprint(s.Position, s.Span) {
			orphans = append(orphans, s)
		}
	}
	return ResizePlan{Size: n, Orphans: orphans}
}

// ApplyResize resizes the grid and removes exactly the planned orphans.
// Callers confirm plans with orphans before applying (spec'd destructive
// guard); orphan-free plans can be applied directly.
func (b *Block) ApplyResize(plan ResizePlan) {
	b.snapshot()
	b.Size = plan.Size
	if len(plan.Orphans) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(plan.Orphans))
	for _, s := range plan.Orphans {
		drop[s.ID] = struct{}{}
	}
	kept := b.Shapes[:0]
	for _, s := range b.Shapes {
		if _, gone := drop[s.ID]; !gone {
			kept = append(kept, s)
		}
	}
	b.Shapes = kept
}

// Clear removes every shape in one undoable step.
func (b *Block) Clear() {
	if len(b.Shapes) == 0 {
		return
	}
	b.snapshot()
	b.Shapes = nil
}

// snapshot pushes the current shape list and palette onto the undo stack
// and clears the redo stack. Called before every mutation.
func (b *Block) snapshot() {
	b.undo = append(b.undo, b.revision())
	if len(b.undo) > historyLimit {
		b.undo = b.undo[len(b.undo)-historyLimit:]
	}
	b.redo = nil
}

func (b *Block) revision() revision {
	return revision{shapes: cloneShapes(b.Shapes), roles: cloneRoles(b.Palette.Roles), size: b.Size}
}

func (b *Block) restore(rev revision) {
	b.Shapes = rev.shapes
	b.Palette.Roles = rev.roles
	b.Size = rev.size
}

// CanUndo reports whether an edit can be rolled back.
func (b *Block) CanUndo() bool { return len(b.undo) > 0 }

// CanRedo reports whether a rolled-back edit can be reapplied.
func (b *Block) CanRedo() bool { return len(b.redo) > 0 }

// Undo restores the state from before the most recent mutation.
func (b *Block) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	b.redo = append(b.redo, b.revision())
	b.restore(b.undo[len(b.undo)-1])
	b.undo = b.undo[:len(b.undo)-1]
	return true
}

// Redo reapplies the most recently undone mutation.
func (b *Block) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	b.undo = append(b.undo, b.revision())
	b.restore(b.redo[len(b.redo)-1])
	b.redo = b.redo[:len(b.redo)-1]
	return true
}

func cloneShapes(shapes []Shape) []Shape {
	if len(shapes) == 0 {
		return nil
	}
	out := make([]Shape, len(shapes))
	copy(out, shapes)
	return out
}

func cloneRoles(roles []Role) []Role {
	if len(roles) == 0 {
		return nil
	}
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
