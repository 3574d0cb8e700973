package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// queueSize bounds the cues waiting for the mixer. Cues beyond it are dropped.
const queueSize = 32

var (
	speakerOnce  sync.Once
	speakerMixer *beep.Mixer
	speakerErr   error
)

// initSpeaker opens the audio device once per process and starts an
// empty mixer on it.
func initSpeaker() (*beep.Mixer, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			speakerErr = err
			return
		}
		speakerMixer = &beep.Mixer{}
		speaker.Play(speakerMixer)
	})
	return speakerMixer, speakerErr
}

// Player plays cues on the local speaker through a beep mixer.
// Handle only enqueues; a background goroutine adds streamers to the mixer.
type Player struct {
	cfg    config.AudioConfig
	logger *log.Logger

	queue chan core.Signal
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once

	mixer  *beep.Mixer
	lock   func()
	unlock func()
	silent bool

	// Guarded by lock.
	music      *beep.Ctrl
	muted      bool
	gamePaused bool

	dropped atomic.Int64
}

// NewPlayer opens the speaker and starts the background music.
// If audio is disabled or the device cannot be opened the player is
// silent: every call succeeds and nothing is played.
func NewPlayer(cfg config.AudioConfig, muted bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	if !cfg.Enabled {
		return newSilentPlayer(cfg, muted, logger)
	}

	mixer, err := initSpeaker()
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return newSilentPlayer(cfg, muted, logger)
	}

	p := newPlayer(cfg, muted, logger, mixer, speaker.Lock, speaker.Unlock)
	p.start()
	return p
}

func newSilentPlayer(cfg config.AudioConfig, muted bool, logger *log.Logger) *Player {
	var mu sync.Mutex
	return &Player{
		cfg:    cfg,
		logger: logger,
		silent: true,
		muted:  muted,
		lock:   mu.Lock,
		unlock: mu.Unlock,
		done:   make(chan struct{}),
	}
}

func newPlayer(cfg config.AudioConfig, muted bool, logger *log.Logger, mixer *beep.Mixer, lock, unlock func()) *Player {
	p := &Player{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan core.Signal, queueSize),
		done:   make(chan struct{}),
		mixer:  mixer,
		lock:   lock,
		unlock: unlock,
		muted:  muted,
	}

	if cfg.Music {
		p.music = &beep.Ctrl{Streamer: musicLoop(cfg.Volume(CueMusic)), Paused: muted}
		p.lock()
		p.mixer.Add(p.music)
		p.unlock()
	}
	return p
}

func (p *Player) start() {
	p.wg.Add(1)
	go p.loop()
}

func (p *Player) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case s := <-p.queue:
			p.apply(s)
		}
	}
}

// Handle queues the cue for s. A full queue drops the cue.
func (p *Player) Handle(s core.Signal) {
	if p.silent {
		return
	}
	select {
	case p.queue <- s:
	default:
		p.dropped.Add(1)
	}
}

func (p *Player) apply(s core.Signal) {
	switch s {
	case core.SignalFlap:
		p.play(flapSound(p.cfg.Volume(CueFlap)))
	case core.SignalHit:
		p.play(hitSound(p.cfg.Volume(CueHit)))
	case core.SignalPoint:
		p.play(pointSound(p.cfg.Volume(CuePoint)))
	case core.SignalPaused:
		p.setGamePaused(true)
	case core.SignalResumed, core.SignalStarted:
		p.setGamePaused(false)
	}
}

func (p *Player) play(s beep.Streamer) {
	p.lock()
	p.mixer.Add(s)
	p.unlock()
}

func (p *Player) setGamePaused(paused bool) {
	p.lock()
	p.gamePaused = paused
	p.syncMusic()
	p.unlock()
}

// syncMusic must be called with the lock held.
func (p *Player) syncMusic() {
	if p.music != nil {
		p.music.Paused = p.muted || p.gamePaused
	}
}

// ToggleMute switches the background music. Effects keep playing.
func (p *Player) ToggleMute() bool {
	p.lock()
	defer p.unlock()
	p.muted = !p.muted
	p.syncMusic()
	return p.muted
}

// Dropped returns the number of cues discarded because the queue was full.
func (p *Player) Dropped() int64 {
	return p.dropped.Load()
}

// Close stops the background goroutine and silences the mixer.
func (p *Player) Close() {
	p.once.Do(func() {
		close(p.done)
		p.wg.Wait()
		if p.silent {
			return
		}
		p.lock()
		p.mixer.Clear()
		p.unlock()
		if n := p.dropped.Load(); n > 0 {
			p.logger.Debug("audio cues dropped", "count", n)
		}
	})
}

var _ Sink = (*Player)(nil)
var _ Sink = (*Nop)(nil)
