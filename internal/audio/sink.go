// Package audio turns game signals into sound.
// Playback is fire-and-forget: a Sink never blocks the caller and never
// reports failures back to the simulation.
package audio

import "github.com/vovakirdan/tui-flappy/internal/core"

// Sink consumes game signals.
type Sink interface {
	// Handle queues the cue for a signal. It must not block.
	Handle(s core.Signal)
	// ToggleMute switches background music on or off and reports whether it is now muted.
	ToggleMute() bool
	// Close stops playback and releases the sink.
	Close()
}

// Nop discards every signal. Used for SSH sessions and headless replays.
type Nop struct {
	muted bool
}

func (n *Nop) Handle(core.Signal) {}

func (n *Nop) ToggleMute() bool {
	n.muted = !n.muted
	return n.muted
}

func (n *Nop) Close() {}
