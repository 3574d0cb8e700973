package audio

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func testAudioConfig() config.AudioConfig {
	return config.DefaultFlappyConfig().Audio
}

// newTestPlayer builds a player on a detached mixer, never touching the speaker.
func newTestPlayer(t *testing.T, cfg config.AudioConfig, muted bool) (*Player, *beep.Mixer) {
	t.Helper()
	var mu sync.Mutex
	mixer := &beep.Mixer{}
	p := newPlayer(cfg, muted, log.New(io.Discard), mixer, mu.Lock, mu.Unlock)
	return p, mixer
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (p *Player) musicPaused() bool {
	p.lock()
	defer p.unlock()
	return p.music.Paused
}

func (p *Player) mixerLen(m *beep.Mixer) int {
	p.lock()
	defer p.unlock()
	return m.Len()
}

func TestPlayerStartsMusic(t *testing.T) {
	p, mixer := newTestPlayer(t, testAudioConfig(), false)
	defer p.Close()

	if mixer.Len() != 1 {
		t.Fatalf("mixer has %d streamers, want music only", mixer.Len())
	}
	if p.music.Paused {
		t.Error("music should play when not muted")
	}
}

func TestPlayerStartsMuted(t *testing.T) {
	p, _ := newTestPlayer(t, testAudioConfig(), true)
	defer p.Close()
	if !p.music.Paused {
		t.Error("music should be paused when muted")
	}
}

func TestPlayerNoMusic(t *testing.T) {
	cfg := testAudioConfig()
	cfg.Music = false
	p, mixer := newTestPlayer(t, cfg, false)
	defer p.Close()
	if mixer.Len() != 0 || p.music != nil {
		t.Error("music disabled but a music streamer exists")
	}
	if p.ToggleMute() != true {
		t.Error("ToggleMute without music should still toggle")
	}
}

func TestPlayerPlaysEffects(t *testing.T) {
	p, mixer := newTestPlayer(t, testAudioConfig(), false)
	p.start()
	defer p.Close()

	p.Handle(core.SignalFlap)
	p.Handle(core.SignalPoint)
	p.Handle(core.SignalHit)
	p.Handle(core.SignalGameOverShown) // no sound

	waitFor(t, "three effects in the mixer", func() bool { return p.mixerLen(mixer) == 4 })
}

func TestPlayerPauseAndMute(t *testing.T) {
	p, _ := newTestPlayer(t, testAudioConfig(), false)
	p.start()
	defer p.Close()

	p.Handle(core.SignalPaused)
	waitFor(t, "music paused", p.musicPaused)

	if muted := p.ToggleMute(); !muted {
		t.Fatal("ToggleMute() = false, want true")
	}
	p.Handle(core.SignalResumed)
	p.Handle(core.SignalFlap)
	// Resume must not unmute.
	time.Sleep(20 * time.Millisecond)
	if !p.musicPaused() {
		t.Error("music playing while muted")
	}

	if muted := p.ToggleMute(); muted {
		t.Fatal("ToggleMute() = true, want false")
	}
	if p.musicPaused() {
		t.Error("music still paused after unmute")
	}
}

func TestPlayerDropsWhenQueueFull(t *testing.T) {
	p, _ := newTestPlayer(t, testAudioConfig(), false)
	// Loop not started: nothing drains the queue.
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize+5; i++ {
			p.Handle(core.SignalFlap)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Handle blocked on a full queue")
	}
	if p.Dropped() != 5 {
		t.Errorf("Dropped() = %d, want 5", p.Dropped())
	}
	p.Close()
}

func TestSilentPlayer(t *testing.T) {
	p := newSilentPlayer(testAudioConfig(), false, log.New(io.Discard))
	p.Handle(core.SignalFlap)
	if !p.ToggleMute() {
		t.Error("ToggleMute() = false, want true")
	}
	p.Close()
	p.Close()
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	cfg := testAudioConfig()
	cfg.Enabled = false
	p := NewPlayer(cfg, false, nil)
	defer p.Close()
	if !p.silent {
		t.Error("disabled audio should give a silent player")
	}
}

func TestNop(t *testing.T) {
	var s Sink = &Nop{}
	s.Handle(core.SignalHit)
	if !s.ToggleMute() || s.ToggleMute() {
		t.Error("Nop mute toggle broken")
	}
	s.Close()
}

func TestOscillatorLength(t *testing.T) {
	d := 50 * time.Millisecond
	osc := NewOscillator(440, 880, d, WaveSine, sampleRate)

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := osc.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if want := sampleRate.N(d); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestEffectsAreFinite(t *testing.T) {
	for name, s := range map[string]beep.Streamer{
		CueFlap:  flapSound(0.3),
		CueHit:   hitSound(0.5),
		CuePoint: pointSound(0.7),
	} {
		total := 0
		buf := make([][2]float64, 1024)
		for i := 0; i < 1000; i++ {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if total == 0 || total > sampleRate.N(time.Second) {
			t.Errorf("%s streamed %d samples", name, total)
		}
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	s := newVolume(NewOscillator(440, 440, 10*time.Millisecond, WaveSquare, sampleRate), 0)
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, buf[i])
		}
	}
}

func TestMusicLoops(t *testing.T) {
	s := musicLoop(0.1)
	buf := make([][2]float64, 4096)
	// Longer than one bar.
	for i := 0; i < 50; i++ {
		if n, ok := s.Stream(buf); !ok || n == 0 {
			t.Fatalf("music ended after %d chunks", i)
		}
	}
}
