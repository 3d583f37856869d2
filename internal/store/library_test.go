package store

import (
	"errors"
	"path/filepath"
	"testing"

	"patchwork/internal/design"
	"patchwork/internal/grid"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func sampleBlock(t *testing.T, name string) *design.Block {
	t.Helper()
	b := design.NewBlock(name, 3)
	if !b.Place(design.NewShape(design.KindSquare, grid.Position{Row: 1, Col: 1}, b.Palette.Roles[0].ID)) {
		t.Fatal("sample placement failed")
	}
	return b
}

func TestLibrarySaveAndGetRoundTrip(t *testing.T) {
	lib := openTestLibrary(t)
	b := sampleBlock(t, "Ohio Star")
	if err := lib.Save(design.BlockDocument(b)); err != nil {
		t.Fatal(err)
	}
	entry, err := lib.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name != "Ohio Star" || entry.Kind != design.DocBlock || entry.Published {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if len(entry.Document.Block.Shapes) != 1 {
		t.Fatalf("payload lost shapes: %d", len(entry.Document.Block.Shapes))
	}
}

func TestLibraryUpdateKeepsPublishState(t *testing.T) {
	lib := openTestLibrary(t)
	b := sampleBlock(t, "Ohio Star")
	if err := lib.Save(design.BlockDocument(b)); err != nil {
		t.Fatal(err)
	}
	if err := lib.Publish(b.ID); err != nil {
		t.Fatal(err)
	}
	b.Name = "Ohio Star v2"
	if err := lib.Save(design.BlockDocument(b)); err != nil {
		t.Fatal(err)
	}
	entry, err := lib.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name != "Ohio Star v2" {
		t.Fatalf("update lost the new name: %s", entry.Name)
	}
	if !entry.Published {
		t.Fatal("update should not clear the published flag")
	}
}

func TestLibraryListFilters(t *testing.T) {
	lib := openTestLibrary(t)
	b1 := sampleBlock(t, "First")
	b2 := sampleBlock(t, "Second")
	p := design.NewPattern("Throw", 3, 3)
	p.Place(grid.Position{}, b1.ID)
	for _, doc := range []design.Document{
		design.BlockDocument(b1),
		design.BlockDocument(b2),
		design.PatternDocument(p),
	} {
		if err := lib.Save(doc); err != nil {
			t.Fatal(err)
		}
	}
	if err := lib.Publish(b2.ID); err != nil {
		t.Fatal(err)
	}

	all, err := lib.List(ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	blocks, err := lib.List(ListFilter{Kind: design.DocBlock})
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	published, err := lib.List(ListFilter{PublishedOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 || published[0].ID != b2.ID {
		t.Fatalf("unexpected published list: %+v", published)
	}
}

func TestLibraryMissingDesign(t *testing.T) {
	lib := openTestLibrary(t)
	if _, err := lib.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := lib.Publish("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := lib.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLibraryDelete(t *testing.T) {
	lib := openTestLibrary(t)
	b := sampleBlock(t, "Gone Soon")
	if err := lib.Save(design.BlockDocument(b)); err != nil {
		t.Fatal(err)
	}
	if err := lib.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Get(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	drafts := NewDrafts(filepath.Join(t.TempDir(), "drafts"))
	b := sampleBlock(t, "Work in Progress")
	if err := drafts.Save(design.BlockDocument(b)); err != nil {
		t.Fatal(err)
	}
	doc, err := drafts.Load(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name() != "Work in Progress" {
		t.Fatalf("draft lost its name: %s", doc.Name())
	}
	ids, err := drafts.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != b.ID {
		t.Fatalf("unexpected draft list: %v", ids)
	}
	if err := drafts.Discard(b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := drafts.Load(b.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
	// Discard is idempotent.
	if err := drafts.Discard(b.ID); err != nil {
		t.Fatal(err)
	}
}

func TestDraftListOnMissingDirIsEmpty(t *testing.T) {
	drafts := NewDrafts(filepath.Join(t.TempDir(), "nope"))
	ids, err := drafts.List()
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", ids, err)
	}
}
