package design

import (
	"strings"
	"testing"
)

func TestPaletteAddRoleBounds(t *testing.T) {
	p := DefaultPalette()
	for len(p.Roles) < MaxRoles {
		if _, err := p.AddRole("", "#112233"); err != nil {
			t.Fatalf("add role %d: %v", len(p.Roles)+1, err)
		}
	}
	if _, err := p.AddRole("overflow", "#112233"); err == nil {
		t.Fatal("adding a 13th role should fail")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("full palette should validate: %v", err)
	}
}

func TestPaletteRejectsBadColors(t *testing.T) {
	p := DefaultPalette()
	if _, err := p.AddRole("bad", "red"); err == nil {
		t.Fatal("named colors are not accepted")
	}
	if _, err := p.AddRole("bad", "#12345"); err == nil {
		t.Fatal("short hex should be rejected")
	}
	if err := p.SetColor(p.Roles[0].ID, "#ABCDEF"); err != nil {
		t.Fatalf("uppercase hex should be accepted: %v", err)
	}
}

func TestPaletteAutoNames(t *testing.T) {
	p := DefaultPalette()
	role, err := p.AddRole("  ", "#334455")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(role.Name, "Fabric ") {
		t.Fatalf("expected generated name, got %q", role.Name)
	}
}

func TestPlanRoleRemovalFallbackSelection(t *testing.T) {
	p := DefaultPalette()
	third, err := p.AddRole("Accent", "#223344")
	if err != nil {
		t.Fatal(err)
	}
	shapes := []Shape{NewShape(KindSquare, at(0, 0), p.Roles[0].ID)}

	plan, err := p.PlanRoleRemoval(p.Roles[0].ID, third.ID, shapes)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Fallback.ID != third.ID {
		t.Fatalf("explicit fallback ignored, got %s", plan.Fallback.Name)
	}
	if plan.AffectedShapes != 1 {
		t.Fatalf("expected 1 affected shape, got %d", plan.AffectedShapes)
	}

	plan, err = p.PlanRoleRemoval(p.Roles[0].ID, "", shapes)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Fallback.ID != p.Roles[1].ID {
		t.Fatal("default fallback should be the first remaining role")
	}

	if _, err := p.PlanRoleRemoval("nope", "", shapes); err == nil {
		t.Fatal("unknown role should be an error")
	}
}
