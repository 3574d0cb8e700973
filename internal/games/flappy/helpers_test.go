package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// fixedRandom replays a fixed sequence of values, cycling when exhausted.
type fixedRandom struct {
	values []float64
	i      int
}

func (r *fixedRandom) Float64() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func newTestEngine(cfg config.FlappyConfig, area Area, values ...float64) *Engine {
	e := NewEngine(cfg, &fixedRandom{values: values})
	e.SetArea(area)
	return e
}

var testArea = Area{Width: 320, Height: 480}
