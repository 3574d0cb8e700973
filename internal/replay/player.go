package replay

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Cursor walks a recording tick by tick.
type Cursor struct {
	rec  Recording
	tick int
	next int // Index of the next unplayed frame
}

// NewCursor positions a cursor before the first tick.
func NewCursor(rec Recording) *Cursor {
	return &Cursor{rec: rec}
}

// Done reports whether every tick has been played.
func (c *Cursor) Done() bool {
	return c.tick >= c.rec.Ticks
}

// Tick returns the index of the next tick.
func (c *Cursor) Tick() int {
	return c.tick
}

// Next returns the frame for the next tick and advances the cursor.
// Ticks without a stored frame yield an empty frame.
func (c *Cursor) Next() Frame {
	f := Frame{Tick: c.tick}
	if c.next < len(c.rec.Frames) && c.rec.Frames[c.next].Tick == c.tick {
		f = c.rec.Frames[c.next]
		c.next++
	}
	c.tick++
	return f
}

// Apply resizes the game if the frame carries a new size, then steps it.
func Apply(g registry.Game, f Frame) core.StepResult {
	if f.Resized() {
		g.Resize(f.ScreenW, f.ScreenH)
	}
	return g.Step(f.Input())
}

// Summary aggregates a headless re-simulation.
type Summary struct {
	Ticks  int
	Runs   int // Completed runs
	Best   int // Best score of a completed run
	Points int // Total points across the session
	Final  core.GameState
}

// Play resets g with the recorded runtime and re-simulates the whole
// session without rendering.
func Play(rec Recording, g registry.Game) Summary {
	g.Reset(rec.Runtime())

	var s Summary
	cur := NewCursor(rec)
	for !cur.Done() {
		res := Apply(g, cur.Next())
		s.Ticks++
		for _, e := range res.Events {
			switch e {
			case core.SignalPoint:
				s.Points++
			case core.SignalHit:
				s.Runs++
				if res.State.Score > s.Best {
					s.Best = res.State.Score
				}
			}
		}
		s.Final = res.State
	}
	return s
}
