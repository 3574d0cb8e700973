package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Variant identifiers. Each variant is registered as its own game.
const (
	VariantClassic = "flappy"
	VariantLite    = "flappy-lite"
)

// DefaultFlappyConfig returns the hard-coded configuration of the classic variant.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity: 0.1,
			Lift:    -3.5,
			Speed:   2,
		},
		Player: FlappyPlayer{
			X:      50,
			StartY: 150,
			Width:  20,
			Height: 20,
		},
		Obstacles: FlappyObstacles{
			Width:         20,
			Gap:           100,
			SpawnInterval: 120,
		},
		Gameplay: FlappyGameplay{
			PauseEnabled: true,
			AutoReset:    false,
		},
		Render: FlappyRender{
			CellWidth:  8,
			CellHeight: 16,
		},
		Audio: defaultAudio(),
	}
}

// DefaultLiteConfig returns the hard-coded configuration of the lite variant:
// heavier physics, a faster spawn cadence and no pause.
func DefaultLiteConfig() FlappyConfig {
	cfg := DefaultFlappyConfig()
	cfg.Physics.Gravity = 0.6
	cfg.Physics.Lift = -15
	cfg.Obstacles.Gap = 140
	cfg.Obstacles.SpawnInterval = 90
	cfg.Gameplay.PauseEnabled = false
	return cfg
}

// DefaultFor returns the hard-coded configuration for a variant.
func DefaultFor(variant string) FlappyConfig {
	if variant == VariantLite {
		return DefaultLiteConfig()
	}
	return DefaultFlappyConfig()
}

func defaultAudio() AudioConfig {
	return AudioConfig{
		Enabled:      true,
		Music:        true,
		MasterVolume: 1.0,
		Volumes: map[string]float64{
			"flap":  0.3,
			"hit":   0.5,
			"point": 0.7,
			"music": 0.1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + variant + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
