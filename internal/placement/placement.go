// internal/placement/placement.go
//
// The placement engine turns pointer gestures into design mutations. It
// owns the interaction state of the canvas: the selected shape tool, the
// hovered cell, an in-flight drag-fill session, the two-step flying geese
// protocol, and the range-fill anchor.
//
// The engine never mutates a design directly. Each gesture resolves to an
// Action the caller applies to its Block or Pattern; occupancy is read
// live through the Surface view, and the design re-checks candidates on
// application, so a stale preview can only shrink, never overlap.
//
// Everything is synchronous and single-threaded: one gesture, one state
// transition, in event arrival order. Unusable cells are dropped silently;
// no gesture produces an error.

package placement

import (
	"patchwork/internal/design"
	"patchwork/internal/grid"
)

// Surface is the occupancy view the engine works against. Both Block and
// Pattern satisfy it.
type Surface interface {
	Bounds() grid.Bounds
	Occupied(grid.Position) bool
}

// State is the flying geese protocol state.
type State int

const (
	// StateIdle: no pending two-step placement.
	StateIdle State = iota
	// StateAwaitingSecond: first geese cell chosen, waiting for an
	// adjacent second cell (or a cancel).
	StateAwaitingSecond
)

// Op tags what an Action asks the caller to do.
type Op int

const (
	// OpNone: the gesture changed engine state only (or was unusable).
	OpNone Op = iota
	// OpPlace: place one 1x1 shape at Cell.
	OpPlace
	// OpFill: batch-place 1x1 shapes into Cells (already filtered to
	// unoccupied, in-bounds cells).
	OpFill
	// OpGeese: commit a flying geese unit across First and Second.
	OpGeese
)

// Action is the engine's answer to a gesture.
type Action struct {
	Op     Op
	Kind   design.Kind
	Cell   grid.Position   // OpPlace
	Cells  []grid.Position // OpFill
	First  grid.Position   // OpGeese
	Second grid.Position   // OpGeese
}

type dragSession struct {
	start   grid.Position
	current grid.Position
}

// Engine is the canvas interaction state machine.
type Engine struct {
	surface Surface

	kind     design.Kind
	hovered  grid.Position
	hasHover bool

	drag *dragSession

	state    State
	first    grid.Position
	adjacent []grid.Position

	anchor    grid.Position
	hasAnchor bool
}

// NewEngine creates an engine over the given occupancy surface with no
// tool selected.
func NewEngine(surface Surface) *Engine {
	return &Engine{surface: surface}
}

// SelectKind switches the active shape tool. Switching discards any
// pending two-step placement, drag session, and range-fill anchor.
func (e *Engine) SelectKind(kind design.Kind) {
	if !kind.Valid() {
		kind = ""
	}
	e.kind = kind
	e.reset()
}

// Kind returns the active shape tool ("" when none).
func (e *Engine) Kind() design.Kind { return e.kind }

// State returns the flying geese protocol state.
func (e *Engine) State() State { return e.state }

// PendingFirst returns the stored first cell while awaiting the second.
func (e *Engine) PendingFirst() (grid.Position, bool) {
	return e.first, e.state == StateAwaitingSecond
}

// ValidSeconds returns the precomputed valid second cells: orthogonal
// neighbors of the first cell that are in bounds and unoccupied.
func (e *Engine) ValidSeconds() []grid.Position {
	if e.state != StateAwaitingSecond {
		return nil
	}
	return append([]grid.Position(nil), e.adjacent...)
}

// Anchor returns the range-fill anchor cell.
func (e *Engine) Anchor() (grid.Position, bool) {
	return e.anchor, e.hasAnchor
}

// Hover records the cell under the pointer; out-of-bounds clears it.
func (e *Engine) Hover(p grid.Position) {
	if !e.surface.Bounds().Contains(p) {
		e.hasHover = false
		return
	}
	e.hovered = p
	e.hasHover = true
}

// Hovered returns the cell under the pointer, if any.
func (e *Engine) Hovered() (grid.Position, bool) {
	return e.hovered, e.hasHover
}

// Cancel discards any pending two-step placement and drag session. The
// only non-tap path out of StateAwaitingSecond; there are no timeouts.
func (e *Engine) Cancel() {
	e.reset()
}

// Tap resolves a click on a cell. With the flying geese tool this drives
// the two-step protocol; with a 1x1 tool it places a single shape, or
// range-fills from the anchor when the modifier is held.
func (e *Engine) Tap(p grid.Position, rangeModifier bool) Action {
	if e.kind == "" {
		return Action{}
	}
	if e.kind == design.KindFlyingGeese {
		return e.tapGeese(p)
	}
	usable := e.usable(p)
	if rangeModifier && e.hasAnchor {
		cells := e.unoccupiedIn(grid.RectBetween(e.anchor, p))
		if len(cells) == 0 {
			return Action{}
		}
		// Advance the anchor so fills can be chained.
		e.anchor = p
		return Action{Op: OpFill, Kind: e.kind, Cells: cells}
	}
	if !usable {
		return Action{}
	}
	e.anchor = p
	e.hasAnchor = true
	return Action{Op: OpPlace, Kind: e.kind, Cell: p}
}

// tapGeese runs the two-step protocol from the canvas behavior notes:
// idle -> (tap unoccupied cell) -> awaiting-second-cell -> (tap valid
// adjacent) -> commit, or (tap anything else) -> cancel.
func (e *Engine) tapGeese(p grid.Position) Action {
	switch e.state {
	case StateIdle:
		if !e.usable(p) {
			return Action{}
		}
		e.first = p
		e.adjacent = e.validAdjacent(p)
		e.state = StateAwaitingSecond
		return Action{}
	default:
		first := e.first
		valid := false
		for _, cell := range e.adjacent {
			if cell == p {
				valid = true
				break
			}
		}
		e.state = StateIdle
		e.adjacent = nil
		if !valid {
			return Action{}
		}
		return Action{Op: OpGeese, Kind: design.KindFlyingGeese, First: first, Second: p}
	}
}

// BeginDrag starts a drag-fill session at an unoccupied cell. Returns
// false (and starts nothing) when no 1x1 tool is selected or the cell is
// unusable.
func (e *Engine) BeginDrag(p grid.Position) bool {
	if e.kind == "" || e.kind == design.KindFlyingGeese || !e.usable(p) {
		return false
	}
	e.drag = &dragSession{start: p, current: p}
	return true
}

// DragActive reports whether a drag-fill session is in flight.
func (e *Engine) DragActive() bool { return e.drag != nil }

// DragTo extends the session to the cell under the pointer and returns
// the fill preview: every unoccupied cell in the rectangle between the
// start and current cell. Out-of-bounds moves keep the previous corner.
func (e *Engine) DragTo(p grid.Position) []grid.Position {
	if e.drag == nil {
		return nil
	}
	if e.surface.Bounds().Contains(p) {
		e.drag.current = p
	}
	return e.unoccupiedIn(grid.RectBetween(e.drag.start, e.drag.current))
}

// EndDrag closes the session and emits one batch placement over the final
// rectangle. Occupied cells inside it are skipped, not failed.
func (e *Engine) EndDrag() Action {
	if e.drag == nil {
		return Action{}
	}
	rect := grid.RectBetween(e.drag.start, e.drag.current)
	e.drag = nil
	cells := e.unoccupiedIn(rect)
	if len(cells) == 0 {
		return Action{}
	}
	return Action{Op: OpFill, Kind: e.kind, Cells: cells}
}

func (e *Engine) reset() {
	e.drag = nil
	e.state = StateIdle
	e.adjacent = nil
	e.hasAnchor = false
}

// usable reports whether a cell can take a new placement.
func (e *Engine) usable(p grid.Position) bool {
	return e.surface.Bounds().Contains(p) && !e.surface.Occupied(p)
}

func (e *Engine) validAdjacent(p grid.Position) []grid.Position {
	var cells []grid.Position
	for _, n := range p.Neighbors() {
		if e.usable(n) {
			cells = append(cells, n)
		}
	}
	return cells
}

func (e *Engine) unoccupiedIn(rect grid.Rect) []grid.Position {
	var cells []grid.Position
	for _, cell := range rect.Cells() {
		if e.usable(cell) {
			cells = append(cells, cell)
		}
	}
	return cells
}
