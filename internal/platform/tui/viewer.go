package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// maxReplaySpeed caps how many recorded ticks are played per real tick.
const maxReplaySpeed = 8

// ViewerKeyMap defines the key bindings for watching a replay.
type ViewerKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultViewerKeyMap returns default key bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("right", "+", "l"),
			key.WithHelp("right", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("left", "-", "h"),
			key.WithHelp("left", "slower"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ViewerModel re-simulates a recording on screen at its tick rate.
type ViewerModel struct {
	game      registry.Game
	rec       replay.Recording
	cursor    *replay.Cursor
	screen    *core.Screen
	sink      audio.Sink
	keys      ViewerKeyMap
	speed     int
	paused    bool
	quitting  bool
	goingBack bool
}

// NewViewerModel prepares playback of rec on g.
// A nil sink plays silently.
func NewViewerModel(g registry.Game, rec replay.Recording, sink audio.Sink) ViewerModel {
	if sink == nil {
		sink = &audio.Nop{}
	}
	return ViewerModel{
		game:   g,
		rec:    rec,
		cursor: replay.NewCursor(rec),
		screen: core.NewScreen(rec.ScreenW, rec.ScreenH),
		sink:   sink,
		keys:   DefaultViewerKeyMap(),
		speed:  1,
	}
}

// Init resets the game with the recorded runtime and starts playback.
func (m ViewerModel) Init() tea.Cmd {
	m.game.Reset(m.rec.Runtime())
	return tickCmd(m.rec.TickRate)
}

// Update handles messages for the viewer.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxReplaySpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			m.advance()
		}
		return m, tickCmd(m.rec.TickRate)
	}

	return m, nil
}

// advance plays up to speed recorded ticks.
func (m *ViewerModel) advance() {
	for i := 0; i < m.speed && !m.cursor.Done(); i++ {
		f := m.cursor.Next()
		if f.Resized() {
			m.screen.Resize(f.ScreenW, f.ScreenH)
		}
		res := replay.Apply(m.game, f)
		for _, s := range res.Events {
			m.sink.Handle(s)
		}
	}
}

// Done reports whether the whole recording has been played.
func (m ViewerModel) Done() bool {
	return m.cursor.Done()
}

// View renders the replayed frame with a status tag on the top row.
func (m ViewerModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.game.Render(m.screen)

	status := fmt.Sprintf(" REPLAY #%d  %dx ", m.rec.ID, m.speed)
	switch {
	case m.cursor.Done():
		status = fmt.Sprintf(" REPLAY #%d  END ", m.rec.ID)
	case m.paused:
		status = fmt.Sprintf(" REPLAY #%d  PAUSED ", m.rec.ID)
	}
	m.screen.DrawTextColored((m.screen.Width()-len(status))/2, 0, status, core.ColorCyan)

	return RenderScreen(m.screen)
}

// IsGoingBack returns true if user wants to go back to the browser.
func (m ViewerModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ViewerModel) IsQuitting() bool {
	return m.quitting
}

// RunViewer plays rec back in the terminal.
// Returns true if the user asked to go back rather than quit.
func RunViewer(rec replay.Recording, sink audio.Sink) (goBack bool, err error) {
	g, err := registry.Create(rec.GameID)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		NewViewerModel(g, rec, sink),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ViewerModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
