// Package flappy implements a Flappy Bird-style game.
// The player flaps a bird through gaps between pipes that scroll in from
// the right; every pipe cleared scores a point.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts an Engine to the registry.Game interface.
type Game struct {
	variant  string
	title    string
	override *config.FlappyConfig

	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	engine  *Engine
}

// New creates the classic variant.
func New() *Game {
	return &Game{variant: config.VariantClassic, title: "Flappy Bird"}
}

// NewLite creates the lite variant: heavier physics, no pause.
func NewLite() *Game {
	return &Game{variant: config.VariantLite, title: "Flappy Lite"}
}

// UseConfig pins the configuration used by Reset instead of loading it.
func (g *Game) UseConfig(cfg config.FlappyConfig) {
	g.override = &cfg
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the variant configuration and starts a fresh session.
// An unreadable or invalid configuration falls back to the variant default.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.engine = NewEngine(g.cfg, NewRandom(runtime.Seed))
	g.engine.SetArea(g.area())
}

func (g *Game) loadConfig() config.FlappyConfig {
	if g.override != nil {
		return *g.override
	}
	cfg, err := config.Load(g.variant, configPath)
	if err != nil || config.Validate(cfg) != nil {
		return config.DefaultFor(g.variant)
	}
	return cfg
}

// Resize updates the play area from the terminal size. The run continues.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.engine != nil {
		g.engine.SetArea(g.area())
	}
}

// area converts the screen size to world units. The bottom row is ground.
func (g *Game) area() Area {
	return Area{
		Width:  g.cfg.AreaWidth(g.runtime.ScreenW),
		Height: g.cfg.AreaHeight(g.runtime.ScreenH),
	}
}

// Step advances the game by one tick.
// Inputs are applied before the frame is simulated.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.engine.OnTogglePause()
	}
	if in.Has(core.ActionRestart) {
		g.engine.OnRestart()
	}
	if in.Has(core.ActionJump) {
		g.engine.OnFlap()
	}

	g.engine.Tick()

	return core.StepResult{
		State:  g.State(),
		Events: g.engine.Drain(),
	}
}

// State returns the current game state.
// While the game-over indicator is showing the score is the ended run's.
func (g *Game) State() core.GameState {
	phase := g.engine.Phase()
	score := g.engine.Score()
	if g.engine.GameOverVisible() && phase != PhaseRunning && phase != PhasePaused {
		score = g.engine.LastScore()
	}
	return core.GameState{
		Score:    score,
		Started:  phase == PhaseRunning || phase == PhasePaused,
		GameOver: g.engine.GameOverVisible(),
		Paused:   phase == PhasePaused,
	}
}

// Config returns the configuration in effect since the last Reset.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Snapshot returns the current frame view.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Register both variants with the registry
func init() {
	registry.Register(config.VariantClassic, func() registry.Game {
		return New()
	})
	registry.Register(config.VariantLite, func() registry.Game {
		return NewLite()
	})
}
