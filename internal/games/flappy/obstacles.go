package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Area is the live play-area geometry in world units.
type Area struct {
	Width  float64
	Height float64
}

// Obstacle is a pipe pair with a vertical gap between its segments.
// Only X and Scored change after spawn.
type Obstacle struct {
	X      float64 // Left edge
	Top    float64 // Height of the top segment
	Bottom float64 // Height of the bottom segment
	Scored bool    // Set once the bird clears the right edge
}

// TopRect returns the top segment in world units.
func (o Obstacle) TopRect(width float64) core.RectF {
	return core.NewRectF(o.X, 0, width, o.Top)
}

// BottomRect returns the bottom segment for a play area of height areaH.
func (o Obstacle) BottomRect(width, areaH float64) core.RectF {
	return core.NewRectF(o.X, areaH-o.Bottom, width, o.Bottom)
}

// ObstacleField owns the live obstacles in spawn order.
type ObstacleField struct {
	obstacles []Obstacle
	width     float64
	gap       float64
	speed     float64
	interval  int
	rng       RandomSource
}

// NewObstacleField creates an empty field.
func NewObstacleField(cfg config.FlappyObstacles, speed float64, rng RandomSource) *ObstacleField {
	return &ObstacleField{
		obstacles: make([]Obstacle, 0, 8),
		width:     cfg.Width,
		gap:       cfg.Gap,
		speed:     speed,
		interval:  cfg.SpawnInterval,
		rng:       rng,
	}
}

// MaybeSpawn appends one obstacle at the right edge of the area when frame
// is a multiple of the spawn interval. It reports whether it spawned.
//
// The top segment height is uniform in [0, H-gap). When the area is not
// taller than the gap the range collapses to a zero-height top segment.
func (f *ObstacleField) MaybeSpawn(frame int, area Area) bool {
	if f.interval <= 0 || frame%f.interval != 0 {
		return false
	}

	var top, bottom float64
	if span := area.Height - f.gap; span > 0 {
		top = f.rng.Float64() * span
		bottom = area.Height - top - f.gap
	} else {
		top = 0
		bottom = 0
	}

	f.obstacles = append(f.obstacles, Obstacle{
		X:      area.Width,
		Top:    top,
		Bottom: bottom,
	})
	return true
}

// Advance moves every obstacle left by the configured speed and drops
// those whose right edge has passed the left edge of the area.
func (f *ObstacleField) Advance() {
	for i := range f.obstacles {
		f.obstacles[i].X -= f.speed
	}

	live := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X+f.width >= 0 {
			live = append(live, o)
		}
	}
	f.obstacles = live
}

// Clear drops all obstacles.
func (f *ObstacleField) Clear() {
	f.obstacles = f.obstacles[:0]
}

// Obstacles returns the live obstacles. The slice is owned by the field.
func (f *ObstacleField) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Width returns the obstacle width in world units.
func (f *ObstacleField) Width() float64 {
	return f.width
}

// Gap returns the configured gap size in world units.
func (f *ObstacleField) Gap() float64 {
	return f.gap
}
