package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/metrics"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// sessionScreen identifies the screen a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenReplays
	screenViewer
)

// SessionModel manages the full flow of one connection: menu -> game ->
// menu, and menu -> replays -> viewer -> replays.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	metrics  *metrics.Collector
	logger   *log.Logger
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	menu     MenuModel
	game     Model
	replays  ReplaysModel
	viewer   ViewerModel
	tracker  *sessionTracker
	quitting bool
}

// sessionTracker holds the game in progress so that it can be finished
// when the connection drops without a quit key.
type sessionTracker struct {
	mu   sync.Mutex
	game *Model
}

// set records the latest state of the game in progress, nil if none.
func (t *sessionTracker) set(g *Model) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.game = g
	t.mu.Unlock()
}

// close finishes the game left in progress, if any.
func (t *sessionTracker) close() (PlayResult, bool) {
	if t == nil {
		return PlayResult{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.game == nil || t.game.finished {
		return PlayResult{}, false
	}
	t.game.finish()
	res := t.game.Result()
	t.game = nil
	return res, true
}

// NewSessionModel creates a new session model.
// A nil logger uses the default logger.
func NewSessionModel(store *storage.Store, collector *metrics.Collector, logger *log.Logger, cfg core.RuntimeConfig, username string) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:    store,
		metrics:  collector,
		logger:   logger,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenReplays:
		return m.updateReplays(msg)
	case screenViewer:
		return m.updateViewer(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsReplays():
		m.replays = NewReplaysModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenReplays
		return m, m.replays.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}

		cfg := m.config
		cfg.Seed = 0 // Fresh seed per game
		opts := Options{
			Sink:    &audio.Nop{},
			Metrics: m.metrics,
			Record:  m.store != nil,
		}
		if m.store != nil {
			opts.Saver = m.store
		}
		m.game = NewModel(game, cfg, opts)
		m.screen = screenGame
		g := m.game
		m.tracker.set(&g)
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.finished {
		m.tracker.set(nil)
	} else {
		g := m.game
		m.tracker.set(&g)
	}

	if m.game.BackToMenu() || m.game.IsQuitting() {
		m.logResult(m.game.Result())
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.menu = NewMenuModel(m.store, m.config)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateReplays handles updates when in the replay browser.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if replaysModel, ok := newModel.(ReplaysModel); ok {
		m.replays = replaysModel
	}

	switch {
	case m.replays.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.replays.IsGoingBack():
		m.menu = NewMenuModel(m.store, m.config)
		m.screen = screenMenu
		return m, m.menu.Init()

	case m.replays.Selected() != 0:
		return m.openViewer(m.replays.Selected())
	}

	return m, cmd
}

// openViewer loads a replay and starts watching it.
// A replay that cannot be loaded leaves the browser open.
func (m SessionModel) openViewer(id int64) (tea.Model, tea.Cmd) {
	rec, err := m.store.LoadReplay(id)
	if err == nil && rec == nil {
		err = errReplayNotFound
	}
	var game registry.Game
	if err == nil {
		game, err = registry.Create(rec.GameID)
	}
	if err != nil {
		m.logger.Warn("could not open replay", "id", id, "user", m.username, "error", err)
		m.replays = NewReplaysModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	m.viewer = NewViewerModel(game, *rec, &audio.Nop{})
	m.screen = screenViewer
	return m, m.viewer.Init()
}

// updateViewer handles updates while a replay is playing.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewerModel, ok := newModel.(ViewerModel); ok {
		m.viewer = viewerModel
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.viewer.IsGoingBack() {
		m.replays = NewReplaysModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenReplays
		return m, m.replays.Init()
	}

	return m, cmd
}

// logResult reports the replay saved by a finished game.
func (m SessionModel) logResult(res PlayResult) {
	switch {
	case res.SaveErr != nil:
		m.logger.Warn("could not save replay", "user", m.username, "error", res.SaveErr)
	case res.ReplayID != 0:
		m.logger.Info("replay saved", "user", m.username, "id", res.ReplayID)
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenReplays:
		return m.replays.View()
	case screenViewer:
		return m.viewer.View()
	default:
		return m.menu.View()
	}
}
