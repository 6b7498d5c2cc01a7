package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skygate/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func updateReplays(t *testing.T, m ReplaysModel, msg tea.Msg) (ReplaysModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(ReplaysModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return rm, cmd
}

func seedReplays(t *testing.T, store *storage.Store, n int) {
	t.Helper()
	for i := range n {
		_, err := store.SaveReplay(storage.ReplayEntry{
			GameID:   "flappy",
			Seed:     int64(i + 1),
			TickRate: 60,
			Ticks:    600,
			Data:     []byte("inputs: []"),
		})
		if err != nil {
			t.Fatalf("SaveReplay: %v", err)
		}
	}
}

func TestReplaysModelEmpty(t *testing.T) {
	m := NewReplaysModel(openStore(t), "", 80, 24)

	m, _ = updateReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != 0 {
		t.Errorf("Selected() = %d on empty list, want 0", m.Selected())
	}
}

func TestReplaysModelWatchSelection(t *testing.T) {
	store := openStore(t)
	seedReplays(t, store, 3)

	m := NewReplaysModel(store, "flappy", 80, 24)
	if len(m.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(m.entries))
	}

	// Newest first, then one row down
	m, _ = updateReplays(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("watching should quit the browser")
	}
	if m.Selected() != m.entries[1].ID {
		t.Errorf("Selected() = %d, want %d", m.Selected(), m.entries[1].ID)
	}
}

func TestReplaysModelDelete(t *testing.T) {
	store := openStore(t)
	seedReplays(t, store, 2)

	m := NewReplaysModel(store, "", 80, 24)
	doomed := m.entries[0].ID

	m, _ = updateReplays(t, m, runeKey("x"))
	if len(m.entries) != 1 {
		t.Fatalf("entries after delete = %d, want 1", len(m.entries))
	}
	if m.entries[0].ID == doomed {
		t.Error("deleted replay still listed")
	}
	if _, err := store.LoadReplay(doomed); err == nil {
		t.Error("deleted replay still in store")
	}
}

func TestReplaysModelQuit(t *testing.T) {
	m := NewReplaysModel(openStore(t), "", 80, 24)
	m, cmd := updateReplays(t, m, runeKey("q"))
	if cmd == nil || m.View() != "" || m.Selected() != 0 {
		t.Error("q should quit without a selection")
	}
}
