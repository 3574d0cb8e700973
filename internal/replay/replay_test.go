package replay

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func frameOf(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestEncodeDecodeActions(t *testing.T) {
	actions := []core.Action{core.ActionJump, core.ActionPause, core.ActionRestart}
	s := EncodeActions(actions)
	if s != "Jump,Pause,Restart" {
		t.Errorf("EncodeActions = %q", s)
	}
	if got := DecodeActions(s); !reflect.DeepEqual(got, actions) {
		t.Errorf("DecodeActions = %v, want %v", got, actions)
	}
	if got := DecodeActions("Jump,Dance"); !reflect.DeepEqual(got, []core.Action{core.ActionJump}) {
		t.Errorf("unknown names not skipped: %v", got)
	}
	if got := DecodeActions(""); got != nil {
		t.Errorf("DecodeActions(\"\") = %v", got)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder("flappy", core.RuntimeConfig{ScreenW: 40, ScreenH: 32, TickRate: 60, Seed: 7})

	r.Record(frameOf())
	if r.Worth() {
		t.Error("empty session should not be worth saving")
	}
	r.Record(frameOf(core.ActionMute))
	r.Record(frameOf(core.ActionJump, core.ActionQuit))
	r.Resize(80, 24)
	r.Record(frameOf())
	r.Record(frameOf())

	rec := r.Recording()
	if rec.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5", rec.Ticks)
	}
	want := []Frame{
		{Tick: 2, Actions: []core.Action{core.ActionJump}},
		{Tick: 3, ScreenW: 80, ScreenH: 24},
	}
	if !reflect.DeepEqual(rec.Frames, want) {
		t.Errorf("Frames = %+v, want %+v", rec.Frames, want)
	}
	if !r.Worth() {
		t.Error("session with a flap should be worth saving")
	}
	if rec.Flaps() != 1 {
		t.Errorf("Flaps() = %d, want 1", rec.Flaps())
	}
	if rec.Seed != 7 || rec.GameID != "flappy" || rec.ScreenW != 40 {
		t.Errorf("header = %+v", rec)
	}
}

func TestRecordingIsACopy(t *testing.T) {
	r := NewRecorder("flappy", core.DefaultConfig())
	r.Record(frameOf(core.ActionJump))
	rec := r.Recording()
	r.Record(frameOf(core.ActionJump))
	if len(rec.Frames) != 1 {
		t.Errorf("earlier copy changed: %d frames", len(rec.Frames))
	}
}

func TestCursorFillsGaps(t *testing.T) {
	rec := Recording{
		Ticks: 4,
		Frames: []Frame{
			{Tick: 1, Actions: []core.Action{core.ActionJump}},
			{Tick: 3, ScreenW: 10, ScreenH: 10},
		},
	}
	cur := NewCursor(rec)

	var got []Frame
	for !cur.Done() {
		got = append(got, cur.Next())
	}
	if len(got) != 4 {
		t.Fatalf("played %d ticks, want 4", len(got))
	}
	if !got[1].Input().Has(core.ActionJump) || !got[0].Input().Empty() {
		t.Errorf("frames = %+v", got)
	}
	if !got[3].Resized() || got[2].Resized() {
		t.Errorf("resize misplaced: %+v", got)
	}
}

func TestDuration(t *testing.T) {
	rec := Recording{Ticks: 180, TickRate: 60}
	if rec.Duration().Seconds() != 3 {
		t.Errorf("Duration = %v", rec.Duration())
	}
	if (Recording{Ticks: 10}).Duration() != 0 {
		t.Error("zero tick rate should give zero duration")
	}
}

func TestPlayReproducesSession(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	runtime := core.RuntimeConfig{ScreenW: 40, ScreenH: 32, TickRate: 60, Seed: 99}
	live, err := registry.Create("flappy-lite")
	if err != nil {
		t.Fatal(err)
	}
	live.Reset(runtime)
	r := NewRecorder(live.ID(), runtime)

	var want Summary
	for tick := 0; tick < 900; tick++ {
		in := core.NewInputFrame()
		if tick%14 == 0 {
			in.Set(core.ActionJump)
		}
		if tick == 300 {
			live.Resize(50, 30)
			r.Resize(50, 30)
		}
		r.Record(in)
		res := live.Step(in)

		want.Ticks++
		for _, e := range res.Events {
			switch e {
			case core.SignalPoint:
				want.Points++
			case core.SignalHit:
				want.Runs++
				if res.State.Score > want.Best {
					want.Best = res.State.Score
				}
			}
		}
		want.Final = res.State
	}

	replayed, _ := registry.Create("flappy-lite")
	got := Play(r.Recording(), replayed)
	if got != want {
		t.Errorf("replay summary = %+v, want %+v", got, want)
	}

	liveSnap := live.(*flappy.Game).Snapshot()
	replaySnap := replayed.(*flappy.Game).Snapshot()
	if !reflect.DeepEqual(liveSnap, replaySnap) {
		t.Error("final snapshots differ")
	}
}
