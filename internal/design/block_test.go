package design

import (
	"testing"

	"patchwork/internal/grid"
)

func at(r, c int) grid.Position { return grid.Position{Row: r, Col: c} }

func mustPlace(t *testing.T, b *Block, kind Kind, pos grid.Position) Shape {
	t.Helper()
	s := NewShape(kind, pos, b.Palette.Roles[0].ID)
	if !b.Place(s) {
		t.Fatalf("place %s at %s failed", kind, pos.Key())
	}
	return s
}

func TestPlaceRejectsOccupiedAndOutOfBounds(t *testing.T) {
	b := NewBlock("test", 3)
	mustPlace(t, b, KindSquare, at(1, 1))
	if b.Place(NewShape(KindHST, at(1, 1), b.Palette.Roles[0].ID)) {
		t.Fatal("occupied cell accepted a second shape")
	}
	if b.Place(NewShape(KindSquare, at(3, 0), b.Palette.Roles[0].ID)) {
		t.Fatal("out-of-bounds cell accepted a shape")
	}
	if len(b.Shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(b.Shapes))
	}
}

// The worked example from the canvas behavior notes: a 3x3 grid with
// shapes at (0,0) and (1,1); filling the rectangle (0,1)-(2,2) places six
// shapes and skips the two occupied cells.
func TestPlaceAllSkipsOccupiedCells(t *testing.T) {
	b := NewBlock("test", 3)
	mustPlace(t, b, KindSquare, at(0, 0))
	mustPlace(t, b, KindSquare, at(1, 1))

	rect := grid.RectBetween(at(0, 1), at(2, 2))
	cells := append(rect.Cells(), at(2, 0)) // drag sweep also crossed (2,0)
	placed := b.PlaceAll(KindSquare, cells, b.Palette.Roles[1].ID)

	want := []grid.Position{at(0, 1), at(0, 2), at(1, 2), at(2, 1), at(2, 2), at(2, 0)}
	if len(placed) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(placed))
	}
	for i, s := range placed {
		if s.Position != want[i] {
			t.Fatalf("placement %d: expected %s, got %s", i, want[i].Key(), s.Position.Key())
		}
	}
	// Pre-existing shapes untouched.
	if s, ok := b.ShapeAt(at(0, 0)); !ok || s.Roles[0] != b.Palette.Roles[0].ID {
		t.Fatal("shape at (0,0) was disturbed by the batch fill")
	}
}

func TestPlaceAllIsOneUndoStep(t *testing.T) {
	b := NewBlock("test", 4)
	b.PlaceAll(KindSquare, grid.RectBetween(at(0, 0), at(1, 1)).Cells(), b.Palette.Roles[0].ID)
	if len(b.Shapes) != 4 {
		t.Fatalf("expected 4 shapes, got %d", len(b.Shapes))
	}
	if !b.Undo() {
		t.Fatal("undo failed")
	}
	if len(b.Shapes) != 0 {
		t.Fatalf("undo should remove the whole batch, %d shapes left", len(b.Shapes))
	}
	if !b.Redo() {
		t.Fatal("redo failed")
	}
	if len(b.Shapes) != 4 {
		t.Fatalf("redo should restore the batch, got %d shapes", len(b.Shapes))
	}
}

func TestFlyingGeeseOccupiesBothCells(t *testing.T) {
	b := NewBlock("test", 3)
	s, err := NewFlyingGeese(at(1, 1), at(1, 2), b.Palette.Roles[1].ID, b.Palette.Roles[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Place(s) {
		t.Fatal("flying geese placement failed")
	}
	if !b.Occupied(at(1, 1)) || !b.Occupied(at(1, 2)) {
		t.Fatal("both footprint cells should be occupied")
	}
	if b.Place(NewShape(KindSquare, at(1, 2), b.Palette.Roles[0].ID)) {
		t.Fatal("second footprint cell accepted another shape")
	}
}

func TestRotateFlyingGeeseChecksNewFootprint(t *testing.T) {
	b := NewBlock("test", 3)
	s, err := NewFlyingGeese(at(0, 1), at(0, 2), b.Palette.Roles[1].ID, b.Palette.Roles[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Place(s) {
		t.Fatal("placement failed")
	}
	// Rotating right->down turns the 1x2 footprint into 2x1 at (0,1).
	if !b.Rotate(at(0, 1)) {
		t.Fatal("rotation into free space should succeed")
	}
	got, ok := b.ShapeAt(at(1, 1))
	if !ok || got.Span != (grid.Span{Rows: 2, Cols: 1}) {
		t.Fatalf("expected vertical span after rotation, got %+v ok=%v", got.Span, ok)
	}
	// down -> left needs (0,1)+(0,2) again; blocking (0,2) makes it a no-op.
	mustPlace(t, b, KindSquare, at(0, 2))
	b.Rotate(at(0, 1))
	if s2, ok := b.ShapeAt(at(0, 1)); ok && s2.Kind == KindFlyingGeese && s2.Span.Cols == 2 {
		t.Fatal("rotation into an occupied cell should be a no-op")
	}
}

func TestResizePlanListsExactOrphans(t *testing.T) {
	b := NewBlock("test", 4)
	inside := mustPlace(t, b, KindSquare, at(0, 0))
	edge := mustPlace(t, b, KindSquare, at(2, 2))
	outside := mustPlace(t, b, KindSquare, at(3, 1))
	geese, err := NewFlyingGeese(at(1, 2), at(1, 3), b.Palette.Roles[1].ID, b.Palette.Roles[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Place(geese) {
		t.Fatal("geese placement failed")
	}

	plan := b.PlanResize(3)
	if len(plan.Orphans) != 2 {
		t.Fatalf("expected 2 orphans, got %d", len(plan.Orphans))
	}
	ids := map[string]bool{plan.Orphans[0].ID: true, plan.Orphans[1].ID: true}
	if !ids[outside.ID] || !ids[geese.ID] {
		t.Fatalf("wrong orphans: %v", ids)
	}

	b.ApplyResize(plan)
	if b.Size != 3 || len(b.Shapes) != 2 {
		t.Fatalf("expected 3x3 with 2 shapes, got %dx%d with %d", b.Size, b.Size, len(b.Shapes))
	}
	if _, ok := b.ShapeAt(inside.Position); !ok {
		t.Fatal("inside shape dropped")
	}
	if _, ok := b.ShapeAt(edge.Position); !ok {
		t.Fatal("edge shape dropped")
	}

	if !b.Undo() {
		t.Fatal("undo failed")
	}
	if b.Size != 4 || len(b.Shapes) != 4 {
		t.Fatalf("undo should restore size and shapes, got %dx%d with %d", b.Size, b.Size, len(b.Shapes))
	}
}

func TestRoleRemovalReassignsShapes(t *testing.T) {
	b := NewBlock("test", 3)
	keep := b.Palette.Roles[0]
	doomed := b.Palette.Roles[1]
	s := NewShape(KindHST, at(0, 0), keep.ID)
	s.Roles[1] = doomed.ID
	if !b.Place(s) {
		t.Fatal("placement failed")
	}
	mustPlace(t, b, KindSquare, at(1, 1)) // uses keep only

	plan, err := b.PlanRoleRemoval(doomed.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if plan.AffectedShapes != 1 {
		t.Fatalf("expected 1 affected shape, got %d", plan.AffectedShapes)
	}
	if plan.Fallback.ID != keep.ID {
		t.Fatalf("expected fallback %s, got %s", keep.ID, plan.Fallback.ID)
	}

	b.ApplyRoleRemoval(plan)
	if len(b.Palette.Roles) != 1 {
		t.Fatalf("expected 1 role left, got %d", len(b.Palette.Roles))
	}
	got, _ := b.ShapeAt(at(0, 0))
	if got.Roles[1] != keep.ID {
		t.Fatal("shape sub-part was not reassigned to the fallback role")
	}

	if !b.Undo() {
		t.Fatal("undo failed")
	}
	if len(b.Palette.Roles) != 2 {
		t.Fatal("undo should restore the palette")
	}
	got, _ = b.ShapeAt(at(0, 0))
	if got.Roles[1] != doomed.ID {
		t.Fatal("undo should restore the original role reference")
	}
}

func TestRemovingLastRoleRefused(t *testing.T) {
	b := NewBlock("test", 3)
	plan, err := b.PlanRoleRemoval(b.Palette.Roles[0].ID, "")
	if err != nil {
		t.Fatal(err)
	}
	b.ApplyRoleRemoval(plan)
	if _, err := b.PlanRoleRemoval(b.Palette.Roles[0].ID, ""); err == nil {
		t.Fatal("removing the last role should be refused")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewBlock("test", 3)
	if b.Undo() {
		t.Fatal("undo on a fresh block should report false")
	}
	mustPlace(t, b, KindSquare, at(0, 0))
	mustPlace(t, b, KindSquare, at(0, 1))
	b.Remove(at(0, 0))
	if len(b.Shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(b.Shapes))
	}
	b.Undo()
	if len(b.Shapes) != 2 {
		t.Fatalf("undo of remove: expected 2 shapes, got %d", len(b.Shapes))
	}
	b.Undo()
	b.Undo()
	if len(b.Shapes) != 0 {
		t.Fatalf("expected empty block, got %d shapes", len(b.Shapes))
	}
	b.Redo()
	if len(b.Shapes) != 1 {
		t.Fatalf("redo: expected 1 shape, got %d", len(b.Shapes))
	}
	// A new edit clears the redo stack.
	mustPlace(t, b, KindSquare, at(2, 2))
	if b.Redo() {
		t.Fatal("redo after a new edit should report false")
	}
}
