package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig marks a configuration that cannot drive a game.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrGapTooLarge marks a gap that does not fit the play area.
	// The engine still runs: spawn math clamps the gap to the live height.
	ErrGapTooLarge = errors.New("obstacle gap does not fit play area")
)

// Validate checks static configuration values.
// All problems are reported together in one error wrapping ErrInvalidConfig.
func Validate(cfg FlappyConfig) error {
	var problems []string
	positive := func(name string, v float64) {
		if v <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %g", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			problems = append(problems, fmt.Sprintf("%s must not be negative, got %g", name, v))
		}
	}

	positive("player.width", cfg.Player.Width)
	positive("player.height", cfg.Player.Height)
	positive("obstacles.width", cfg.Obstacles.Width)
	positive("obstacles.gap", cfg.Obstacles.Gap)
	positive("render.cell_width", cfg.Render.CellWidth)
	positive("render.cell_height", cfg.Render.CellHeight)
	if cfg.Obstacles.SpawnInterval <= 0 {
		problems = append(problems, fmt.Sprintf("obstacles.spawn_interval must be positive, got %d", cfg.Obstacles.SpawnInterval))
	}
	nonNegative("physics.speed", cfg.Physics.Speed)
	nonNegative("audio.master_volume", cfg.Audio.MasterVolume)
	for cue, v := range cfg.Audio.Volumes {
		nonNegative("audio.volumes."+cue, v)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// CheckGeometry reports whether the obstacle gap fits a play area of the
// given height in world units.
func CheckGeometry(cfg FlappyConfig, areaHeight float64) error {
	if cfg.Obstacles.Gap >= areaHeight {
		return fmt.Errorf("%w: gap %g, play area height %g", ErrGapTooLarge, cfg.Obstacles.Gap, areaHeight)
	}
	return nil
}

// AreaHeight converts a terminal height in rows to play-area world units.
// The bottom row is reserved for the ground line.
func (c FlappyConfig) AreaHeight(rows int) float64 {
	if rows <= 1 {
		return 0
	}
	return float64(rows-1) * c.Render.CellHeight
}

// AreaWidth converts a terminal width in columns to play-area world units.
func (c FlappyConfig) AreaWidth(cols int) float64 {
	if cols <= 0 {
		return 0
	}
	return float64(cols) * c.Render.CellWidth
}
