// internal/design/shape.go
//
// Shape is the unit of a block design: a pieced patch occupying one or two
// grid cells. Shapes are immutable value records; edits produce replacement
// records that the owning Block swaps into its list.

package design

import (
	"fmt"

	"github.com/google/uuid"

	"patchwork/internal/grid"
)

// Kind enumerates the supported patch shapes.
type Kind string

const (
	KindSquare      Kind = "square"
	KindHST         Kind = "hst"
	KindFlyingGeese Kind = "flying_geese"
	KindQST         Kind = "qst"
)

// Valid reports whether the kind is one of the supported shapes.
func (k Kind) Valid() bool {
	switch k {
	case KindSquare, KindHST, KindFlyingGeese, KindQST:
		return true
	}
	return false
}

// RoleCount returns how many fabric-role slots the kind carries, one per
// sub-part: squares are a single patch, HSTs split into two triangles,
// flying geese have a goose and a sky part, QSTs four quarter triangles.
func (k Kind) RoleCount() int {
	switch k {
	case KindHST, KindFlyingGeese:
		return 2
	case KindQST:
		return 4
	default:
		return 1
	}
}

// Direction orients a flying geese unit; the goose points this way.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// SpanFor returns the footprint a flying geese unit needs when pointing in
// the given direction. Horizontal geese lie in a 1x2 footprint, vertical
// geese in 2x1. Every other kind is 1x1.
func SpanFor(kind Kind, dir Direction) grid.Span {
	if kind != KindFlyingGeese {
		return grid.Unit
	}
	switch dir {
	case DirLeft, DirRight:
		return grid.Span{Rows: 1, Cols: 2}
	default:
		return grid.Span{Rows: 2, Cols: 1}
	}
}

// DirectionBetween derives the goose direction from the first and second
// tapped cells of the two-step placement. The goose points from the first
// cell toward the second. Returns false for non-adjacent pairs.
func DirectionBetween(first, second grid.Position) (Direction, bool) {
	switch {
	case second.Row == first.Row && second.Col == first.Col+1:
		return DirRight, true
	case second.Row == first.Row && second.Col == first.Col-1:
		return DirLeft, true
	case second.Col == first.Col && second.Row == first.Row+1:
		return DirDown, true
	case second.Col == first.Col && second.Row == first.Row-1:
		return DirUp, true
	}
	return "", false
}

// Shape is a placed design unit. Position is the top-left cell of its
// footprint. Roles holds one palette role ID per sub-part (see
// Kind.RoleCount). Orientation is the quarter-turn count for HST/QST
// triangles; Direction is set for flying geese only.
type Shape struct {
	ID          string        `json:"id"`
	Kind        Kind          `json:"kind"`
	Position    grid.Position `json:"position"`
	Span        grid.Span     `json:"span"`
	Orientation int           `json:"orientation,omitempty"`
	Direction   Direction     `json:"direction,omitempty"`
	Roles       []string      `json:"roles"`
}

// NewShape constructs a 1x1 shape of the given kind with every sub-part
// assigned the fallback role.
func NewShape(kind Kind, pos grid.Position, role string) Shape {
	roles := make([]string, kind.RoleCount())
	for i := range roles {
		roles[i] = role
	}
	return Shape{
		ID:       uuid.NewString(),
		Kind:     kind,
		Position: pos,
		Span:     grid.Unit,
		Roles:    roles,
	}
}

// NewFlyingGeese constructs the two-cell unit committed by the second tap
// of the placement protocol. The position is normalized to the top-left of
// the pair.
func NewFlyingGeese(first, second grid.Position, gooseRole, skyRole string) (Shape, error) {
	dir, ok := DirectionBetween(first, second)
	if !ok {
		return Shape{}, fmt.Errorf("design: cells %s and %s are not adjacent", first.Key(), second.Key())
	}
	pos := first
	if second.Row < pos.Row {
		pos.Row = second.Row
	}
	if second.Col < pos.Col {
		pos.Col = second.Col
	}
	return Shape{
		ID:        uuid.NewString(),
		Kind:      KindFlyingGeese,
		Position:  pos,
		Span:      SpanFor(KindFlyingGeese, dir),
		Direction: dir,
		Roles:     []string{gooseRole, skyRole},
	}, nil
}

// Footprint returns the cells this shape covers.
func (s Shape) Footprint() []grid.Position {
	return grid.Footprint(s.Position, s.Span)
}

// Rotated returns a copy turned a quarter turn clockwise. For triangles
// this bumps the orientation; for flying geese it advances the direction
// and swaps the span (the caller re-checks occupancy for the new
// footprint). Squares rotate to themselves.
func (s Shape) Rotated() Shape {
	out := s
	switch s.Kind {
	case KindHST, KindQST:
		out.Orientation = (s.Orientation + 1) % 4
	case KindFlyingGeese:
		out.Direction = rotateDirection(s.Direction)
		out.Span = SpanFor(KindFlyingGeese, out.Direction)
	}
	return out
}

// Flipped returns a copy mirrored horizontally.
func (s Shape) Flipped() Shape {
	out := s
	switch s.Kind {
	case KindHST:
		out.Orientation = map[int]int{0: 1, 1: 0, 2: 3, 3: 2}[s.Orientation%4]
	case KindQST:
		out.Orientation = (4 - s.Orientation%4) % 4
	case KindFlyingGeese:
		switch s.Direction {
		case DirLeft:
			out.Direction = DirRight
		case DirRight:
			out.Direction = DirLeft
		}
	}
	return out
}

// Recolored returns a copy with the sub-part at index set to the role.
// An out-of-range index leaves the shape unchanged.
func (s Shape) Recolored(part int, role string) Shape {
	if part < 0 || part >= len(s.Roles) {
		return s
	}
	out := s
	out.Roles = append([]string(nil), s.Roles...)
	out.Roles[part] = role
	return out
}

// ReplaceRole returns a copy with every sub-part referencing oldRole
// reassigned to newRole, and reports whether anything changed.
func (s Shape) ReplaceRole(oldRole, newRole string) (Shape, bool) {
	changed := false
	roles := append([]string(nil), s.Roles...)
	for i, role := range roles {
		if role == oldRole {
			roles[i] = newRole
			changed = true
		}
	}
	if !changed {
		return s, false
	}
	out := s
	out.Roles = roles
	return out, true
}

// UsesRole reports whether any sub-part references the role.
func (s Shape) UsesRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func rotateDirection(d Direction) Direction {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	default:
		return DirUp
	}
}
