package board

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/draftboard/pkg/errors"
	"github.com/matzehuels/draftboard/pkg/scene"
)

func sampleElements() []scene.Element {
	return []scene.Element{
		scene.NewShape("el-1", scene.TypeRectangle, 100, 100, 160, 64),
		scene.NewText("el-2", "API", 20, 140, 120, 80, 30),
	}
}

func TestNewBoard(t *testing.T) {
	b := New("session:abc", "My Diagram", sampleElements())

	if b.ID == "" {
		t.Error("ID should be generated")
	}
	if b.Version != 1 {
		t.Errorf("Version = %d, want 1", b.Version)
	}
	if b.CreatedAt.IsZero() || !b.CreatedAt.Equal(b.UpdatedAt) {
		t.Error("timestamps should be set and equal on creation")
	}
	if other := New("session:abc", "My Diagram", nil); other.ID == b.ID {
		t.Error("IDs should be unique")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		board *Board
		ok    bool
	}{
		{"valid", New("o", "diagram", nil), true},
		{"nil", nil, false},
		{"empty name", New("o", "", nil), false},
		{"blank name", New("o", "   ", nil), false},
		{"long name", New("o", strings.Repeat("x", MaxNameLength+1), nil), false},
		{"zero version", &Board{ID: "x", Name: "n", Version: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.board)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidBoard) {
				t.Errorf("want INVALID_BOARD, got %v", err)
			}
		})
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	b := New("owner-1", "First", sampleElements())
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, b); !errors.Is(err, errors.ErrCodeInvalidBoard) {
		t.Errorf("duplicate create should fail with INVALID_BOARD, got %v", err)
	}

	got, err := store.Get(ctx, "owner-1", b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "First" || len(got.Elements) != 2 {
		t.Errorf("Get returned %+v", got)
	}

	// Mutating the returned board must not touch the stored copy
	got.Name = "mutated"
	again, _ := store.Get(ctx, "owner-1", b.ID)
	if again.Name != "First" {
		t.Error("store returned a shared reference")
	}

	if _, err := store.Get(ctx, "someone-else", b.ID); !errors.Is(err, errors.ErrCodeBoardNotFound) {
		t.Errorf("cross-owner get should be BOARD_NOT_FOUND, got %v", err)
	}

	if err := store.Delete(ctx, "owner-1", b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "owner-1", b.ID); !errors.Is(err, errors.ErrCodeBoardNotFound) {
		t.Errorf("double delete should be BOARD_NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreOptimisticConcurrency(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	b := New("o", "Doc", sampleElements())
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, _ := store.Get(ctx, "o", b.ID)
	second, _ := store.Get(ctx, "o", b.ID)

	first.Name = "First Writer"
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if first.Version != 2 {
		t.Errorf("version after update = %d, want 2", first.Version)
	}

	second.Name = "Second Writer"
	err := store.Update(ctx, second)
	if !errors.Is(err, errors.ErrCodeVersionConflict) {
		t.Errorf("stale update should be VERSION_CONFLICT, got %v", err)
	}

	// Re-read and retry succeeds
	fresh, _ := store.Get(ctx, "o", b.ID)
	fresh.Name = "Second Writer"
	if err := store.Update(ctx, fresh); err != nil {
		t.Errorf("retry after re-read should succeed: %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	mine := New("me", "Mine", nil)
	theirs := New("them", "Theirs", nil)
	_ = store.Create(ctx, mine)
	_ = store.Create(ctx, theirs)

	list, err := store.List(ctx, "me")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("List = %+v", list)
	}

	empty, err := store.List(ctx, "nobody")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty owner should list nothing, got %+v", empty)
	}
}
