package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRecording(t *testing.T, store *storage.Store, gameID string) int64 {
	t.Helper()
	r := replay.NewRecorder(gameID, testRuntime)
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	r.Record(in)
	r.Record(core.NewInputFrame())

	id, err := store.SaveReplay(r.Recording())
	if err != nil {
		t.Fatalf("SaveReplay() error = %v", err)
	}
	return id
}

func stepReplays(t *testing.T, m ReplaysModel, msgs ...tea.Msg) ReplaysModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(ReplaysModel)
		if !ok {
			t.Fatalf("Update returned %T, want ReplaysModel", next)
		}
	}
	return m
}

func TestReplaysFilterByVariant(t *testing.T) {
	store := openTestStore(t)
	saveRecording(t, store, "flappy")
	saveRecording(t, store, "flappy")
	saveRecording(t, store, "flappy-lite")

	m := NewReplaysModel(store, 100, 30)
	if len(m.replays) != 3 {
		t.Fatalf("all replays = %d, want 3", len(m.replays))
	}

	m = stepReplays(t, m, tabKey)
	if m.filters[m.filter].ID != "flappy" || len(m.replays) != 2 {
		t.Errorf("filter %q shows %d replays, want flappy with 2", m.filters[m.filter].ID, len(m.replays))
	}

	m = stepReplays(t, m, tabKey)
	if len(m.replays) != 1 {
		t.Errorf("flappy-lite replays = %d, want 1", len(m.replays))
	}

	m = stepReplays(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.filter != 0 {
		t.Errorf("filter = %d, want 0 (all)", m.filter)
	}
}

func TestReplaysWatchSelected(t *testing.T) {
	store := openTestStore(t)
	saveRecording(t, store, "flappy")
	newest := saveRecording(t, store, "flappy")

	m := NewReplaysModel(store, 100, 30)
	m = stepReplays(t, m, enterKey)

	if m.Selected() != newest {
		t.Errorf("Selected() = %d, want newest %d", m.Selected(), newest)
	}
	if m.View() != "" {
		t.Error("View should be empty after selecting")
	}
}

func TestReplaysDelete(t *testing.T) {
	store := openTestStore(t)
	saveRecording(t, store, "flappy")
	saveRecording(t, store, "flappy")

	m := NewReplaysModel(store, 60, 30)
	m = stepReplays(t, m, runeKey('d'))

	if len(m.replays) != 1 {
		t.Errorf("replays after delete = %d, want 1", len(m.replays))
	}
	entries, err := store.ListReplays("", 0)
	if err != nil {
		t.Fatalf("ListReplays() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("stored replays = %d, want 1", len(entries))
	}
}

func TestReplaysEmptyAndNilStore(t *testing.T) {
	m := NewReplaysModel(nil, 60, 20)

	if len(m.replays) != 0 {
		t.Error("nil store should list nothing")
	}
	m = stepReplays(t, m, enterKey, runeKey('d'))
	if m.Selected() != 0 {
		t.Error("nothing to select")
	}
	if m.View() == "" {
		t.Error("View should show the empty message")
	}

	m = stepReplays(t, m, runeKey('b'))
	if !m.IsGoingBack() {
		t.Error("b should go back")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "0:00"},
		{9.9, "0:09"},
		{75, "1:15"},
		{600, "10:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.secs); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
