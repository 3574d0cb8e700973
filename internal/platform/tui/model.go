package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/metrics"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// Options wires a game session to its surroundings.
// Every field is optional.
type Options struct {
	Saver   replay.Saver       // Receives the session recording on exit
	Sink    audio.Sink         // Receives the signals of every step
	Metrics *metrics.Collector // Session and step counters
	Record  bool               // Record the input stream for a replay
}

// Model is the Bubble Tea model for playing one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	recorder   *replay.Recorder
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	finished   bool
	replayID   int64
	saveErr    error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Sink == nil {
		opts.Sink = &audio.Nop{}
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if opts.Record {
		m.recorder = replay.NewRecorder(game.ID(), cfg)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Metrics.SessionStarted(m.game.ID())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.finished {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
// Platform actions are handled here, game actions wait for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keyMapper.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		// Only leave a run that is not in motion
		if !m.gameState.Started || m.gameState.Paused {
			m.finish()
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionMute:
		m.opts.Sink.ToggleMute()
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize updates the play area. The run in progress continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	if m.recorder != nil {
		m.recorder.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick runs one simulation step and forwards its signals.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, s := range result.Events {
		m.opts.Sink.Handle(s)
	}
	m.opts.Metrics.ObserveStep(m.game.ID(), result)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// finish ends the session once: the recording is saved if it holds any
// play and the session gauge is released.
func (m *Model) finish() {
	if m.finished {
		return
	}
	m.finished = true
	m.opts.Metrics.SessionEnded()

	if m.recorder == nil || m.opts.Saver == nil || !m.recorder.Worth() {
		return
	}
	m.replayID, m.saveErr = m.opts.Saver.SaveReplay(m.recorder.Recording())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Result describes how a session ended.
func (m Model) Result() PlayResult {
	return PlayResult{
		Back:     m.backToMenu,
		Config:   m.config,
		ReplayID: m.replayID,
		SaveErr:  m.saveErr,
	}
}

// PlayResult holds the outcome of a finished session.
type PlayResult struct {
	Back     bool               // User asked for the menu rather than quitting
	Config   core.RuntimeConfig // Last known screen size
	ReplayID int64              // Stored replay, 0 if none was saved
	SaveErr  error              // Error from saving the replay
}

// Run starts the Bubble Tea program with the given game and blocks until
// the session ends.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (PlayResult, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return PlayResult{Config: cfg}, err
	}

	m, ok := final.(Model)
	if !ok {
		return PlayResult{Config: cfg}, nil
	}
	if !m.finished {
		// Interrupted without a quit key
		m.finish()
	}
	return m.Result(), nil
}
