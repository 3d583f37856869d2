// internal/store/drafts.go
//
// Draft autosave: one JSON snapshot per in-progress design under
// .patchwork/drafts/. The editor writes through on every committed edit
// and reloads on start, so a crashed session loses nothing.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"patchwork/internal/design"
)

// ErrDraftNotFound is returned when no draft exists for the ID.
var ErrDraftNotFound = errors.New("store: draft not found")

// Drafts persists working copies in a directory of JSON files.
type Drafts struct {
	dir string
}

// NewDrafts creates a draft repository rooted at dir.
func NewDrafts(dir string) *Drafts {
	return &Drafts{dir: dir}
}

func (d *Drafts) path(id string) string {
	return filepath.Join(d.dir, id+".json")
}

// Save writes the draft snapshot with best-effort atomicity.
func (d *Drafts) Save(doc design.Document) error {
	id := doc.ID()
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("store: draft document has no id")
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("store: ensure drafts dir: %w", err)
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	var pretty json.RawMessage = data
	encoded, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode draft %s: %w", id, err)
	}
	return os.WriteFile(d.path(id), append(encoded, '\n'), 0o644)
}

// Load reads the draft for the ID if present.
func (d *Drafts) Load(id string) (design.Document, error) {
	data, err := os.ReadFile(d.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return design.Document{}, ErrDraftNotFound
		}
		return design.Document{}, fmt.Errorf("store: read draft %s: %w", id, err)
	}
	return design.DecodeDocument(data)
}

// List returns the IDs of every saved draft.
func (d *Drafts) List() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read drafts dir: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Discard removes the draft, typically after a successful library save.
func (d *Drafts) Discard(id string) error {
	if err := os.Remove(d.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: discard draft %s: %w", id, err)
	}
	return nil
}
