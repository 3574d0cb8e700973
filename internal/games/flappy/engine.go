package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the state of the game state machine. Exactly one is active.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Engine owns all simulation state of one flappy session and drives the
// NotStarted -> Running <-> Paused -> Ended state machine.
//
// Input entry points (OnFlap, OnTogglePause, OnRestart) and Tick may be
// called in any order within a frame. Signals accumulate until Drain.
type Engine struct {
	cfg   config.FlappyConfig
	bird  *Bird
	field *ObstacleField
	score Score
	area  Area

	phase         Phase
	frame         int
	lastScore     int
	gameOverShown bool

	events []core.Signal
}

// NewEngine creates an engine in the NotStarted phase.
// The area must be set with SetArea before the first tick.
func NewEngine(cfg config.FlappyConfig, rng RandomSource) *Engine {
	return &Engine{
		cfg:    cfg,
		bird:   NewBird(cfg.Player, cfg.Physics),
		field:  NewObstacleField(cfg.Obstacles, cfg.Physics.Speed, rng),
		events: make([]core.Signal, 0, 8),
	}
}

// SetArea updates the live play-area geometry. It never resets the run.
func (e *Engine) SetArea(a Area) {
	e.area = a
}

// OnFlap handles a flap input.
// From NotStarted or Ended it resets, starts a run and applies the first
// lift. While running it applies lift. While paused it is ignored.
func (e *Engine) OnFlap() {
	switch e.phase {
	case PhaseRunning:
		e.bird.ApplyLift()
		e.emit(core.SignalFlap)
	case PhaseNotStarted, PhaseEnded:
		e.hideGameOver()
		e.reset()
		e.phase = PhaseRunning
		e.emit(core.SignalStarted)
		e.bird.ApplyLift()
		e.emit(core.SignalFlap)
	}
}

// OnTogglePause switches between Running and Paused when pause is enabled.
func (e *Engine) OnTogglePause() {
	if !e.cfg.Gameplay.PauseEnabled {
		return
	}
	switch e.phase {
	case PhaseRunning:
		e.phase = PhasePaused
		e.emit(core.SignalPaused)
	case PhasePaused:
		e.phase = PhaseRunning
		e.emit(core.SignalResumed)
	}
}

// OnRestart dismisses a finished run and returns to NotStarted.
func (e *Engine) OnRestart() {
	if e.phase != PhaseEnded && !e.gameOverShown {
		return
	}
	e.hideGameOver()
	e.reset()
}

// Tick simulates one frame. Only the Running phase mutates state.
func (e *Engine) Tick() {
	if e.phase != PhaseRunning {
		return
	}

	if e.bird.Step(e.area.Height) {
		e.end()
		return
	}

	e.field.MaybeSpawn(e.frame, e.area)
	e.field.Advance()

	contact := Evaluate(e.bird.Rect(), e.field, e.area.Height)
	for i := 0; i < contact.Cleared; i++ {
		e.emit(core.SignalPoint)
	}
	e.score.Add(contact.Cleared)
	if contact.Collided {
		e.end()
		return
	}

	e.frame++
}

// Reset performs a full reset and dismisses any game-over indicator.
func (e *Engine) Reset() {
	e.gameOverShown = false
	e.reset()
}

// Drain returns the signals emitted since the last call and clears them.
func (e *Engine) Drain() []core.Signal {
	if len(e.events) == 0 {
		return nil
	}
	out := make([]core.Signal, len(e.events))
	copy(out, e.events)
	e.events = e.events[:0]
	return out
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the score of the current run.
func (e *Engine) Score() int { return e.score.Value() }

// LastScore returns the score of the most recently ended run.
func (e *Engine) LastScore() int { return e.lastScore }

// Frame returns the number of simulated frames in the current run.
func (e *Engine) Frame() int { return e.frame }

// GameOverVisible reports whether the game-over indicator is showing.
func (e *Engine) GameOverVisible() bool { return e.gameOverShown }

func (e *Engine) end() {
	e.lastScore = e.score.Value()
	e.phase = PhaseEnded
	e.gameOverShown = true
	e.emit(core.SignalHit)
	e.emit(core.SignalGameOverShown)

	if e.cfg.Gameplay.AutoReset {
		e.reset()
	}
}

// reset restores the initial run state. The game-over indicator is left as is.
func (e *Engine) reset() {
	e.bird.Reset()
	e.field.Clear()
	e.score.Reset()
	e.frame = 0
	e.phase = PhaseNotStarted
}

func (e *Engine) hideGameOver() {
	if e.gameOverShown {
		e.gameOverShown = false
		e.emit(core.SignalGameOverHidden)
	}
}

func (e *Engine) emit(s core.Signal) {
	e.events = append(e.events, s)
}
