package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func stepMenu(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T, want MenuModel", next)
		}
	}
	return m
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(nil, testRuntime)

	if len(m.items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.items))
	}
	if m.items[0].GameID != "flappy" || m.items[1].GameID != "flappy-lite" {
		t.Errorf("items = %+v, want flappy then flappy-lite", m.items)
	}
	if m.View() == "" {
		t.Error("View should render the menu")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testRuntime)

	m = stepMenu(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, enterKey)

	if m.Selected() == nil || m.Selected().GameID != "flappy-lite" {
		t.Errorf("Selected() = %+v, want flappy-lite", m.Selected())
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, testRuntime)

	m = stepMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestMenuReplaysAndQuit(t *testing.T) {
	m := stepMenu(t, NewMenuModel(nil, testRuntime), tabKey)
	if !m.WantsReplays() {
		t.Error("tab should open replays")
	}

	m = stepMenu(t, NewMenuModel(nil, testRuntime), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestMenuShowsReplayCounts(t *testing.T) {
	store := openTestStore(t)
	saveRecording(t, store, "flappy-lite")
	saveRecording(t, store, "flappy-lite")

	m := NewMenuModel(store, testRuntime)

	if m.items[0].Replays != 0 || m.items[1].Replays != 2 {
		t.Errorf("replay counts = %d/%d, want 0/2", m.items[0].Replays, m.items[1].Replays)
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := stepMenu(t, NewMenuModel(nil, testRuntime), tea.WindowSizeMsg{Width: 120, Height: 40})

	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
