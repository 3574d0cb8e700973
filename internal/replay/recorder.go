package replay

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Actions that only affect the platform and never reach the simulation.
var platformOnly = map[core.Action]bool{
	core.ActionMute: true,
	core.ActionBack: true,
	core.ActionQuit: true,
}

// Recorder captures the input stream of one session.
type Recorder struct {
	rec      Recording
	pendingW int
	pendingH int
	flapped  bool
}

// NewRecorder starts a recording for a session reset with runtime.
func NewRecorder(gameID string, runtime core.RuntimeConfig) *Recorder {
	return &Recorder{
		rec: Recording{
			GameID:   gameID,
			Seed:     runtime.Seed,
			ScreenW:  runtime.ScreenW,
			ScreenH:  runtime.ScreenH,
			TickRate: runtime.TickRate,
			Frames:   make([]Frame, 0, 64),
		},
	}
}

// Resize notes a screen size change applied before the next recorded tick.
func (r *Recorder) Resize(w, h int) {
	r.pendingW, r.pendingH = w, h
}

// Record appends the input of the next tick.
func (r *Recorder) Record(in core.InputFrame) {
	tick := r.rec.Ticks
	r.rec.Ticks++

	var actions []core.Action
	for _, a := range in.List() {
		if platformOnly[a] {
			continue
		}
		if a == core.ActionJump {
			r.flapped = true
		}
		actions = append(actions, a)
	}

	if len(actions) == 0 && r.pendingW == 0 {
		return
	}
	r.rec.Frames = append(r.rec.Frames, Frame{
		Tick:    tick,
		Actions: actions,
		ScreenW: r.pendingW,
		ScreenH: r.pendingH,
	})
	r.pendingW, r.pendingH = 0, 0
}

// Worth reports whether the session contains any play worth saving.
func (r *Recorder) Worth() bool {
	return r.flapped
}

// Recording returns a copy of the recording so far.
func (r *Recorder) Recording() Recording {
	rec := r.rec
	rec.Frames = append([]Frame(nil), r.rec.Frames...)
	return rec
}
