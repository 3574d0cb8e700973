package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the falling body controlled by the player.
// X is fixed; Y and Velocity change every simulated frame.
type Bird struct {
	X        float64
	Y        float64
	Velocity float64
	Width    float64
	Height   float64

	startY  float64
	gravity float64
	lift    float64
}

// NewBird creates a bird at its spawn position with zero velocity.
func NewBird(player config.FlappyPlayer, physics config.FlappyPhysics) *Bird {
	return &Bird{
		X:       player.X,
		Y:       player.StartY,
		Width:   player.Width,
		Height:  player.Height,
		startY:  player.StartY,
		gravity: physics.Gravity,
		lift:    physics.Lift,
	}
}

// ApplyLift overrides the velocity with the lift constant.
func (b *Bird) ApplyLift() {
	b.Velocity = b.lift
}

// Step integrates one frame of gravity. It returns true on ground contact,
// in which case the bird rests on the floor with zero velocity.
// A bird whose bottom edge equals the floor is not in contact.
func (b *Bird) Step(floor float64) bool {
	b.Velocity += b.gravity
	b.Y += b.Velocity
	if b.Y+b.Height > floor {
		b.Y = floor - b.Height
		b.Velocity = 0
		return true
	}
	return false
}

// Reset puts the bird back at its spawn height, at rest.
func (b *Bird) Reset() {
	b.Y = b.startY
	b.Velocity = 0
}

// Rect returns the bird hitbox in world units.
func (b *Bird) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.Width, b.Height)
}
