package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

// Cue names used as keys of the audio volume table.
const (
	CueFlap  = "flap"
	CueHit   = "hit"
	CuePoint = "point"
	CueMusic = "music"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length tone whose frequency glides
// linearly from freq to freqEnd.
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	seed     uint32
}

// NewOscillator creates a tone of the given length. freqEnd equal to freq
// gives a steady pitch.
func NewOscillator(freq, freqEnd float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		freqEnd:  freqEnd,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		seed:     0x9e3779b9,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 17
			o.seed ^= o.seed << 5
			val = float64(o.seed)/float64(math.MaxUint32)*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.freqEnd-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release to a stream of known length.
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.attack > 0 && f.position < f.attack {
			vol = float64(f.position) / float64(f.attack)
		}
		if left := f.total - f.position; f.release > 0 && left < f.release {
			vol = math.Max(0, float64(left)/float64(f.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// newVolume scales a stream linearly. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound effect generators

// flapSound is a short upward chirp.
func flapSound(vol float64) beep.Streamer {
	d := 90 * time.Millisecond
	osc := NewOscillator(420, 780, d, WaveTriangle, sampleRate)
	return newVolume(newFade(osc, d, 5*time.Millisecond, 40*time.Millisecond, sampleRate), vol)
}

// hitSound is a falling thud over noise.
func hitSound(vol float64) beep.Streamer {
	d := 260 * time.Millisecond
	thud := newFade(NewOscillator(180, 60, d, WaveSquare, sampleRate), d, 2*time.Millisecond, 200*time.Millisecond, sampleRate)
	crack := newFade(NewOscillator(0, 0, d, WaveNoise, sampleRate), d, 1*time.Millisecond, 240*time.Millisecond, sampleRate)
	return newVolume(beep.Mix(newVolume(thud, 0.6), newVolume(crack, 0.3)), vol)
}

// pointSound is a two-note chime.
func pointSound(vol float64) beep.Streamer {
	d1, d2 := 70*time.Millisecond, 140*time.Millisecond
	n1 := newFade(NewOscillator(987.77, 987.77, d1, WaveSquare, sampleRate), d1, 2*time.Millisecond, 20*time.Millisecond, sampleRate)
	n2 := newFade(NewOscillator(1318.51, 1318.51, d2, WaveSquare, sampleRate), d2, 2*time.Millisecond, 100*time.Millisecond, sampleRate)
	return newVolume(beep.Seq(n1, n2), vol*0.5)
}

// musicNotes is the background loop, one entry per eighth note (0 = rest).
var musicNotes = []float64{
	261.63, 0, 329.63, 392.00, 329.63, 0, 261.63, 293.66,
	220.00, 0, 261.63, 329.63, 293.66, 0, 246.94, 196.00,
}

// musicLoop returns an endless background melody. The bar is rendered
// into a buffer once and looped from there.
func musicLoop(vol float64) beep.Streamer {
	step := 180 * time.Millisecond
	bar := make([]beep.Streamer, 0, len(musicNotes))
	for _, f := range musicNotes {
		if f == 0 {
			bar = append(bar, beep.Silence(sampleRate.N(step)))
			continue
		}
		bar = append(bar, newFade(NewOscillator(f, f, step, WaveTriangle, sampleRate), step, 10*time.Millisecond, 60*time.Millisecond, sampleRate))
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Seq(bar...))
	return newVolume(beep.Loop(-1, buf.Streamer(0, buf.Len())), vol)
}
