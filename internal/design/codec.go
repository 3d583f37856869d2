// internal/design/codec.go
//
// JSON document envelope for persisting designs. The same payload is used
// by the draft autosave, the SQLite library, and the REST API.

package design

import (
	"encoding/json"
	"fmt"
)

// DocKind tags the payload variant of a Document.
type DocKind string

const (
	DocBlock   DocKind = "block"
	DocPattern DocKind = "pattern"
)

// Document wraps a block or pattern for serialization. Exactly one of
// Block/Pattern is set, matching Kind.
type Document struct {
	Kind    DocKind  `json:"kind"`
	Block   *Block   `json:"block,omitempty"`
	Pattern *Pattern `json:"pattern,omitempty"`
}

// BlockDocument wraps a block.
func BlockDocument(b *Block) Document {
	return Document{Kind: DocBlock, Block: b}
}

// PatternDocument wraps a pattern.
func PatternDocument(p *Pattern) Document {
	return Document{Kind: DocPattern, Pattern: p}
}

// ID returns the wrapped design's ID.
func (d Document) ID() string {
	switch d.Kind {
	case DocBlock:
		if d.Block != nil {
			return d.Block.ID
		}
	case DocPattern:
		if d.Pattern != nil {
			return d.Pattern.ID
		}
	}
	return ""
}

// Name returns the wrapped design's display name.
func (d Document) Name() string {
	switch d.Kind {
	case DocBlock:
		if d.Block != nil {
			return d.Block.Name
		}
	case DocPattern:
		if d.Pattern != nil {
			return d.Pattern.Name
		}
	}
	return ""
}

// Validate checks structural integrity: kind/payload agreement, grid
// bounds, palette validity, role references, and the no-overlap invariant.
func (d Document) Validate() error {
	switch d.Kind {
	case DocBlock:
		if d.Block == nil {
			return fmt.Errorf("design: block document without block payload")
		}
		return validateBlock(d.Block)
	case DocPattern:
		if d.Pattern == nil {
			return fmt.Errorf("design: pattern document without pattern payload")
		}
		return validatePattern(d.Pattern)
	}
	return fmt.Errorf("design: unknown document kind %q", d.Kind)
}

// Encode serializes the document to JSON.
func (d Document) Encode() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("design: encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses and validates a JSON document payload.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("design: decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func validateBlock(b *Block) error {
	if b.ID == "" {
		return fmt.Errorf("design: block has no id")
	}
	if b.Size < MinSize || b.Size > MaxSize {
		return fmt.Errorf("design: block size %d outside [%d, %d]", b.Size, MinSize, MaxSize)
	}
	if err := b.Palette.Validate(); err != nil {
		return err
	}
	bounds := b.Bounds()
	covered := map[string]string{}
	for _, s := range b.Shapes {
		if !s.Kind.Valid() {
			return fmt.Errorf("design: shape %s has unknown kind %q", s.ID, s.Kind)
		}
		if len(s.Roles) != s.Kind.RoleCount() {
			return fmt.Errorf("design: shape %s has %d roles, want %d", s.ID, len(s.Roles), s.Kind.RoleCount())
		}
		for _, role := range s.Roles {
			if _, ok := b.Palette.Role(role); !ok {
				return fmt.Errorf("design: shape %s references unknown role %s", s.ID, role)
			}
		}
		if !bounds.ContainsFootprint(s.Position, s.Span) {
			return fmt.Errorf("design: shape %s at %s overflows the %dx%d grid", s.ID, s.Position.Key(), b.Size, b.Size)
		}
		for _, cell := range s.Footprint() {
			if other, taken := covered[cell.Key()]; taken {
				return fmt.Errorf("design: shapes %s and %s overlap at %s", other, s.ID, cell.Key())
			}
			covered[cell.Key()] = s.ID
		}
	}
	return nil
}

func validatePattern(p *Pattern) error {
	if p.ID == "" {
		return fmt.Errorf("design: pattern has no id")
	}
	if p.Rows < MinLayout || p.Rows > MaxLayout || p.Cols < MinLayout || p.Cols > MaxLayout {
		return fmt.Errorf("design: pattern layout %dx%d outside [%d, %d]", p.Rows, p.Cols, MinLayout, MaxLayout)
	}
	bounds := p.Bounds()
	seen := map[string]struct{}{}
	for _, ref := range p.Placements {
		if ref.BlockID == "" {
			return fmt.Errorf("design: placement at %s has no block id", ref.Position.Key())
		}
		if !bounds.Contains(ref.Position) {
			return fmt.Errorf("design: placement at %s outside the %dx%d layout", ref.Position.Key(), p.Rows, p.Cols)
		}
		if _, dup := seen[ref.Position.Key()]; dup {
			return fmt.Errorf("design: duplicate placement at %s", ref.Position.Key())
		}
		seen[ref.Position.Key()] = struct{}{}
	}
	return nil
}
