package core

// Signal is a discrete, fire-and-forget cue emitted by a game during a step.
// Signals carry no return value and never feed back into game state; the
// platform forwards them to audio and visual effect sinks.
type Signal int

const (
	SignalFlap           Signal = iota + 1 // Lift impulse applied
	SignalHit                              // Run ended by collision or ground contact
	SignalPoint                            // Obstacle cleared
	SignalGameOverShown                    // Game-over indicator became visible
	SignalGameOverHidden                   // Game-over indicator was dismissed
	SignalStarted                          // A new run started
	SignalPaused                           // Simulation suspended
	SignalResumed                          // Simulation resumed
)

// String returns the signal name used in logs and metrics labels.
func (s Signal) String() string {
	switch s {
	case SignalFlap:
		return "flap"
	case SignalHit:
		return "hit"
	case SignalPoint:
		return "point"
	case SignalGameOverShown:
		return "game_over_shown"
	case SignalGameOverHidden:
		return "game_over_hidden"
	case SignalStarted:
		return "started"
	case SignalPaused:
		return "paused"
	case SignalResumed:
		return "resumed"
	default:
		return "unknown"
	}
}
