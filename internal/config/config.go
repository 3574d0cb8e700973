// Package config provides YAML-based game configuration loading and
// validation for the flappy variants.
package config

// FlappyConfig contains all configuration for one flappy variant.
// Geometry and physics are in world units; one terminal cell covers
// Render.CellWidth x Render.CellHeight world units.
type FlappyConfig struct {
	Physics   FlappyPhysics   `yaml:"physics"`
	Player    FlappyPlayer    `yaml:"player"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Gameplay  FlappyGameplay  `yaml:"gameplay"`
	Render    FlappyRender    `yaml:"render"`
	Audio     AudioConfig     `yaml:"audio"`
}

// FlappyPhysics defines the per-frame physics constants.
type FlappyPhysics struct {
	Gravity float64 `yaml:"gravity"` // Velocity added every frame
	Lift    float64 `yaml:"lift"`    // Velocity set by a flap (negative = up)
	Speed   float64 `yaml:"speed"`   // Obstacle movement per frame
}

// FlappyPlayer defines the bird hitbox and spawn position.
type FlappyPlayer struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyObstacles defines pipe geometry and spawn cadence.
type FlappyObstacles struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`
	SpawnInterval int     `yaml:"spawn_interval"` // Frames between spawns
}

// FlappyGameplay toggles state machine behavior.
type FlappyGameplay struct {
	PauseEnabled bool `yaml:"pause_enabled"`
	AutoReset    bool `yaml:"auto_reset"` // Reset in the same frame the run ends
}

// FlappyRender defines how world units map to terminal cells.
type FlappyRender struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// AudioConfig controls the audio sink.
type AudioConfig struct {
	Enabled      bool               `yaml:"enabled"`
	Music        bool               `yaml:"music"`
	MasterVolume float64            `yaml:"master_volume"`
	Volumes      map[string]float64 `yaml:"volumes"` // Keyed by cue name: flap, hit, point, music
}

// Volume returns the effective volume for a cue, master volume applied.
// Cues without an explicit entry play at master volume.
func (a AudioConfig) Volume(cue string) float64 {
	v, ok := a.Volumes[cue]
	if !ok {
		v = 1.0
	}
	return v * a.MasterVolume
}
