package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/draftboard/pkg/board"
	"github.com/matzehuels/draftboard/pkg/errors"
)

// writeMemoryConfig writes a config file selecting the in-memory board backend.
func writeMemoryConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[board]\nbackend = \"memory\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBoardsListEmpty(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg := writeMemoryConfig(t)

	if err := c.runBoardsList(context.Background(), cfg, "session:local"); err != nil {
		t.Fatalf("boards list: %v", err)
	}
}

func TestBoardsDeleteMissing(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg := writeMemoryConfig(t)

	err := c.runBoardsDelete(context.Background(), cfg, "session:local", "nope")
	if err == nil {
		t.Fatal("deleting an unknown board should fail")
	}
	if errors.GetCode(err) != errors.ErrCodeBoardNotFound {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeBoardNotFound)
	}
}

func TestBoardListModelNavigation(t *testing.T) {
	summaries := []board.Summary{
		{ID: "1", Name: "first", Version: 1, UpdatedAt: time.Now()},
		{ID: "2", Name: "second", Version: 3, UpdatedAt: time.Now()},
		{ID: "3", Name: "third", Version: 2, UpdatedAt: time.Now()},
	}

	m := NewBoardListModel(summaries)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	next, _ := m.Update(down)
	m = next.(BoardListModel)
	next, _ = m.Update(down)
	m = next.(BoardListModel)

	if m.Cursor != 2 {
		t.Errorf("cursor = %d after two downs, want 2", m.Cursor)
	}

	// Cursor stops at the last entry.
	next, _ = m.Update(down)
	m = next.(BoardListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, should not move past the end", m.Cursor)
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	next, _ = m.Update(enter)
	m = next.(BoardListModel)

	if m.Selected == nil || m.Selected.ID != "3" {
		t.Fatalf("selected = %+v, want board 3", m.Selected)
	}
}

func TestBoardListModelView(t *testing.T) {
	summaries := []board.Summary{
		{ID: "abc", Name: "pipeline sketch", Version: 2, UpdatedAt: time.Now()},
	}

	view := NewBoardListModel(summaries).View()
	if view == "" {
		t.Fatal("view should not be empty")
	}
	for _, want := range []string{"pipeline sketch", "v2", "abc"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
