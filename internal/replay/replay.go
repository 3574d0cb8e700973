// Package replay records the inputs of a game session and re-simulates them.
// A session is fully determined by its game id, seed, screen sizes and the
// input frames, so a recording replays bit-identically.
package replay

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Frame is the input of one tick that carried an action or a resize.
// Ticks with neither are not stored.
type Frame struct {
	Tick    int
	Actions []core.Action
	ScreenW int // Non-zero when the screen was resized before this tick
	ScreenH int
}

// Input converts the frame actions to an InputFrame.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.Actions {
		in.Set(a)
	}
	return in
}

// Resized reports whether the frame carries a new screen size.
func (f Frame) Resized() bool {
	return f.ScreenW > 0 && f.ScreenH > 0
}

// Recording is a complete recorded session.
type Recording struct {
	ID        int64 // Assigned by storage
	GameID    string
	Seed      int64
	ScreenW   int
	ScreenH   int
	TickRate  int
	Ticks     int
	Frames    []Frame
	CreatedAt time.Time
}

// Runtime returns the configuration the session was started with.
func (r Recording) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	}
}

// Flaps counts the recorded jump actions.
func (r Recording) Flaps() int {
	n := 0
	for _, f := range r.Frames {
		for _, a := range f.Actions {
			if a == core.ActionJump {
				n++
			}
		}
	}
	return n
}

// Duration returns the wall-clock length of the session at its tick rate.
func (r Recording) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate)
}

// EncodeActions joins action names with commas for storage.
func EncodeActions(actions []core.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

// DecodeActions is the inverse of EncodeActions. Unknown names are skipped.
func DecodeActions(s string) []core.Action {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	actions := make([]core.Action, 0, len(parts))
	for _, p := range parts {
		if a, ok := core.ParseAction(p); ok {
			actions = append(actions, a)
		}
	}
	return actions
}

// Saver persists recordings.
type Saver interface {
	SaveReplay(rec Recording) (int64, error)
}
