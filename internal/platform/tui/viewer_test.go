package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// recordSession plays a short session through a Model and returns its recording
// together with the final game state.
func recordSession(t *testing.T, ticks int) (replay.Recording, core.GameState) {
	t.Helper()
	saver := &fakeSaver{}
	m := newTestModel(t, Options{Saver: saver, Record: true})
	for i := range ticks {
		if i%30 == 0 {
			m = send(t, m, spaceKey)
		}
		m = send(t, m, tick)
	}
	want := m.game.State()
	send(t, m, runeKey('q'))
	return saver.recs[0], want
}

func stepViewer(t *testing.T, m ViewerModel, msgs ...tea.Msg) ViewerModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(ViewerModel)
		if !ok {
			t.Fatalf("Update returned %T, want ViewerModel", next)
		}
	}
	return m
}

func TestViewerPlaysRecording(t *testing.T) {
	rec, want := recordSession(t, 120)
	sink := &fakeSink{}
	g := newGame(t, "flappy")

	m := NewViewerModel(g, rec, sink)
	m.Init()
	for !m.Done() {
		m = stepViewer(t, m, tick)
	}

	if got := g.State(); got != want {
		t.Errorf("replayed state = %+v, want %+v", got, want)
	}
	if !sink.has(core.SignalFlap) {
		t.Error("viewer should forward signals to the sink")
	}
	if m.View() == "" {
		t.Error("View should render the final frame")
	}
}

func TestViewerSpeedAndPause(t *testing.T) {
	rec, _ := recordSession(t, 60)
	m := NewViewerModel(newGame(t, "flappy"), rec, nil)
	m.Init()

	m = stepViewer(t, m, tea.KeyMsg{Type: tea.KeyRight}, tick)
	if m.speed != 2 || m.cursor.Tick() != 2 {
		t.Errorf("speed=%d tick=%d, want 2 and 2", m.speed, m.cursor.Tick())
	}

	for range 5 {
		m = stepViewer(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.speed != maxReplaySpeed {
		t.Errorf("speed = %d, want cap %d", m.speed, maxReplaySpeed)
	}

	m = stepViewer(t, m, runeKey('p'), tick)
	if m.cursor.Tick() != 2 {
		t.Errorf("paused viewer advanced to tick %d", m.cursor.Tick())
	}

	for range 10 {
		m = stepViewer(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.speed != 1 {
		t.Errorf("speed = %d, want floor 1", m.speed)
	}
}

func TestViewerBackAndQuit(t *testing.T) {
	rec, _ := recordSession(t, 10)

	m := NewViewerModel(newGame(t, "flappy"), rec, nil)
	m.Init()
	m = stepViewer(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}

	m = NewViewerModel(newGame(t, "flappy"), rec, nil)
	m.Init()
	m = stepViewer(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
