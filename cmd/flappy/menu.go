package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a variant and Tab to
browse replays. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play variant
  Tab          - Replay browser
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./replays.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsReplays {
			quit, err := browseReplays(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "variant", menuResult.GameID, "error", err)
			continue
		}

		variantCfg := loadVariant(menuResult.GameID, cfg)
		sink := audio.NewPlayer(variantCfg.Audio, false, logger)

		runtime := cfg
		if runtime.Seed == 0 {
			runtime.Seed = time.Now().UnixNano()
		}
		res, err := tui.Run(game, runtime, playOptions(store, sink))
		sink.Close()
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		reportResult(res)
		cfg.ScreenW, cfg.ScreenH = res.Config.ScreenW, res.Config.ScreenH

		if !res.Back {
			return nil
		}
	}
}

// browseReplays runs the replay browser until the user goes back to the
// menu. Returns true if the user quit instead.
func browseReplays(store *storage.Store, width, height int) (bool, error) {
	for {
		res, err := tui.RunReplays(store, width, height)
		if err != nil {
			return false, err
		}
		if res.Watch == 0 {
			return !res.Back, nil
		}

		back, err := watchReplay(store, res.Watch)
		if err != nil {
			logger.Error("could not play replay", "id", res.Watch, "error", err)
			continue
		}
		if !back {
			return true, nil
		}
	}
}
