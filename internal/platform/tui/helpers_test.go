package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	tick     = TickMsg{}
)

// testRuntime is an 80x24 terminal with a fixed seed.
var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

// isolate points config lookups at empty directories so the embedded
// defaults are used.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func newGame(t *testing.T, id string) registry.Game {
	t.Helper()
	g, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", id, err)
	}
	return g
}

type fakeSaver struct {
	recs []replay.Recording
	err  error
}

func (s *fakeSaver) SaveReplay(rec replay.Recording) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.recs = append(s.recs, rec)
	return int64(len(s.recs)), nil
}

type fakeSink struct {
	signals []core.Signal
	toggles int
	closed  bool
}

func (s *fakeSink) Handle(sig core.Signal) {
	s.signals = append(s.signals, sig)
}

func (s *fakeSink) ToggleMute() bool {
	s.toggles++
	return s.toggles%2 == 1
}

func (s *fakeSink) Close() {
	s.closed = true
}

func (s *fakeSink) has(sig core.Signal) bool {
	for _, got := range s.signals {
		if got == sig {
			return true
		}
	}
	return false
}

// send feeds msgs to m in order and returns the resulting model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}
