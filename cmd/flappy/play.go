package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagConfig   string
	flagMute     bool
	flagNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: flappy).

Controls:
  Space/Up/W/K/click  - Flap (also starts a run)
  P/Esc               - Pause (flappy only)
  R                   - Restart after game over
  M                   - Mute background music
  B                   - Back (when paused or idle)
  Ctrl+S              - Save a screenshot
  Q/Ctrl+C            - Quit

Every session with at least one flap is saved as a replay unless
--no-record is given.

Examples:
  flappy play
  flappy play flappy-lite
  flappy play --config ./my-flappy.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with background music muted")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save a replay of the session")
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := config.VariantClassic
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", variant)
	}

	flappy.SetConfigPath(flagConfig)
	runtime := runtimeConfig()
	cfg := loadVariant(variant, runtime)

	game, err := registry.Create(variant)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoRecord {
		store = openStore()
	}
	if store != nil {
		defer store.Close()
	}

	sink := audio.NewPlayer(cfg.Audio, flagMute, logger)
	defer sink.Close()

	res, err := tui.Run(game, runtime, playOptions(store, sink))
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	reportResult(res)
	return nil
}

// loadVariant resolves the configuration the game will use and reports
// problems once, before the terminal is taken over.
func loadVariant(variant string, runtime core.RuntimeConfig) config.FlappyConfig {
	cfg, err := config.Load(variant, flagConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "variant", variant, "error", err)
		return config.DefaultFor(variant)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Warn("invalid config, using defaults", "variant", variant, "error", err)
		return config.DefaultFor(variant)
	}
	if err := config.CheckGeometry(cfg, cfg.AreaHeight(runtime.ScreenH)); err != nil {
		logger.Warn("terminal too small for the configured gap, obstacles will be clamped",
			"variant", variant, "rows", runtime.ScreenH, "error", err)
	}
	return cfg
}

// openStore opens the replay database. A failure disables recording.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database, replays disabled", "error", err)
		return nil
	}
	return store
}

// playOptions wires a session to the store and sink.
func playOptions(store *storage.Store, sink audio.Sink) tui.Options {
	opts := tui.Options{Sink: sink}
	if store != nil {
		opts.Saver = store
		opts.Record = true
	}
	return opts
}

// reportResult logs the replay saved by a finished session.
func reportResult(res tui.PlayResult) {
	switch {
	case res.SaveErr != nil:
		logger.Warn("could not save replay", "error", res.SaveErr)
	case res.ReplayID != 0:
		logger.Info("replay saved", "id", res.ReplayID, "watch", fmt.Sprintf("flappy replay %d", res.ReplayID))
	}
}
