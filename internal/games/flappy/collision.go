package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Contact is the outcome of evaluating the bird against the field for one frame.
type Contact struct {
	Cleared  int  // Obstacles cleared this frame
	Collided bool // At least one obstacle was hit
}

// Collides reports whether the bird overlaps obstacle o horizontally while
// sitting outside its gap. Touching edges do not collide.
func Collides(bird core.RectF, o Obstacle, width, areaH float64) bool {
	if !bird.OverlapsX(core.NewRectF(o.X, 0, width, areaH)) {
		return false
	}
	return bird.Y < o.Top || bird.Bottom() > areaH-o.Bottom
}

// Evaluate runs the clearance and collision checks against every live
// obstacle, in order. Clearance marks the obstacle scored exactly once.
// Any number of overlapping obstacles yields a single collision.
func Evaluate(bird core.RectF, field *ObstacleField, areaH float64) Contact {
	var c Contact
	width := field.Width()
	for i := range field.obstacles {
		o := &field.obstacles[i]
		if !o.Scored && o.X+width < bird.X {
			o.Scored = true
			c.Cleared++
		}
		if Collides(bird, *o, width, areaH) {
			c.Collided = true
		}
	}
	return c
}
