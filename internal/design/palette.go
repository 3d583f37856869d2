// internal/design/palette.go
//
// A palette is the ordered list of fabric roles a design references. Shapes
// point at roles by ID, so deleting a role is a two-step operation: build a
// reassignment plan (how many shapes are affected, which role absorbs
// them), show it to the user, then apply.

package design

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MinRoles and MaxRoles bound the palette size.
	MinRoles = 1
	MaxRoles = 12
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Role is a named color slot referenced by shape sub-parts.
type Role struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Palette is an ordered role list.
type Palette struct {
	Roles []Role `json:"roles"`
}

// DefaultPalette returns the starting two-role palette for new designs.
func DefaultPalette() Palette {
	return Palette{Roles: []Role{
		{ID: uuid.NewString(), Name: "Background", Color: "#F5F0E8"},
		{ID: uuid.NewString(), Name: "Feature", Color: "#B03A48"},
	}}
}

// Validate checks size bounds and role fields.
func (p Palette) Validate() error {
	if len(p.Roles) < MinRoles || len(p.Roles) > MaxRoles {
		return fmt.Errorf("design: palette must have between %d and %d roles, got %d", MinRoles, MaxRoles, len(p.Roles))
	}
	seen := map[string]struct{}{}
	for i, role := range p.Roles {
		if strings.TrimSpace(role.ID) == "" {
			return fmt.Errorf("design: role %d has no id", i)
		}
		if _, dup := seen[role.ID]; dup {
			return fmt.Errorf("design: duplicate role id %s", role.ID)
		}
		seen[role.ID] = struct{}{}
		if !hexColor.MatchString(role.Color) {
			return fmt.Errorf("design: role %q has invalid color %q", role.Name, role.Color)
		}
	}
	return nil
}

// Role returns the role with the given ID.
func (p Palette) Role(id string) (Role, bool) {
	for _, role := range p.Roles {
		if role.ID == id {
			return role, true
		}
	}
	return Role{}, false
}

// IndexOf returns the position of the role in the palette, or -1.
func (p Palette) IndexOf(id string) int {
	for i, role := range p.Roles {
		if role.ID == id {
			return i
		}
	}
	return -1
}

// AddRole appends a new role and returns it.
func (p *Palette) AddRole(name, color string) (Role, error) {
	if len(p.Roles) >= MaxRoles {
		return Role{}, fmt.Errorf("design: palette is full (%d roles)", MaxRoles)
	}
	if !hexColor.MatchString(color) {
		return Role{}, fmt.Errorf("design: invalid color %q", color)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Fabric %d", len(p.Roles)+1)
	}
	role := Role{ID: uuid.NewString(), Name: name, Color: color}
	p.Roles = append(p.Roles, role)
	return role, nil
}

// Rename updates a role's display name.
func (p *Palette) Rename(id, name string) error {
	idx := p.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("design: unknown role %s", id)
	}
	p.Roles[idx].Name = strings.TrimSpace(name)
	return nil
}

// SetColor updates a role's color.
func (p *Palette) SetColor(id, color string) error {
	idx := p.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("design: unknown role %s", id)
	}
	if !hexColor.MatchString(color) {
		return fmt.Errorf("design: invalid color %q", color)
	}
	p.Roles[idx].Color = color
	return nil
}

// RoleRemoval is the confirmation payload for deleting a role: the role to
// remove, the role that absorbs its shapes, and how many shapes that
// touches. Built by PlanRoleRemoval, applied by Block.ApplyRoleRemoval.
type RoleRemoval struct {
	Remove         Role
	Fallback       Role
	AffectedShapes int
}

// PlanRoleRemoval computes the removal plan against a shape list without
// mutating anything. The fallback is the first remaining role unless a
// specific fallback ID is given. Removing the last role is refused.
func (p Palette) PlanRoleRemoval(id, fallbackID string, shapes []Shape) (RoleRemoval, error) {
	if len(p.Roles) <= MinRoles {
		return RoleRemoval{}, fmt.Errorf("design: cannot remove the last role")
	}
	target, ok := p.Role(id)
	if !ok {
		return RoleRemoval{}, fmt.Errorf("design: unknown role %s", id)
	}
	var fallback Role
	if fallbackID != "" && fallbackID != id {
		fallback, ok = p.Role(fallbackID)
		if !ok {
			return RoleRemoval{}, fmt.Errorf("design: unknown fallback role %s", fallbackID)
		}
	} else {
		for _, role := range p.Roles {
			if role.ID != id {
				fallback = role
				break
			}
		}
	}
	affected := 0
	for _, s := range shapes {
		if s.UsesRole(id) {
			affected++
		}
	}
	return RoleRemoval{Remove: target, Fallback: fallback, AffectedShapes: affected}, nil
}

// removeRole drops the role from the palette. Callers go through
// Block.ApplyRoleRemoval so shapes are reassigned in the same step.
func (p *Palette) removeRole(id string) {
	out := p.Roles[:0]
	for _, role := range p.Roles {
		if role.ID != id {
			out = append(out, role)
		}
	}
	p.Roles = out
}
