package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var errReplayNotFound = errors.New("replay not found")

var (
	flagLimit    int
	flagVariant  string
	flagHeadless bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List stored replays",
	Long: `List the most recent replays, newest first.

Examples:
  flappy replays
  flappy replays --limit 50
  flappy replays --variant flappy-lite`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or re-simulate a stored replay",
	Long: `Play a stored replay back in the terminal, or re-simulate it without
rendering and print a summary with --headless.

Viewer controls:
  Space/P     - Pause
  Right/+     - Faster
  Left/-      - Slower
  Esc/B/Q     - Leave

Examples:
  flappy replay 3
  flappy replay 3 --headless`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of replays to list")
	replaysCmd.Flags().StringVar(&flagVariant, "variant", "", "Only list replays of this variant")
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Re-simulate without rendering and print a summary")
}

func runReplays(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListReplays(flagVariant, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No replays recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'flappy play' to record one!")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-12s  %-6s  %-8s  %s\n", "ID", "Variant", "Flaps", "Length", "Date")
	fmt.Fprintf(out, "  %-5s  %-12s  %-6s  %-8s  %s\n", "--", "-------", "-----", "------", "----")
	for _, e := range entries {
		fmt.Fprintf(out, "  %-5d  %-12s  %-6d  %-8s  %s\n",
			e.ID, e.GameID, e.Flaps, e.Duration().Truncate(time.Second), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'flappy replay <id>' to watch one.")
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay id %q: %w", args[0], err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if !flagHeadless {
		_, err := watchReplay(store, id)
		return err
	}

	rec, err := loadReplay(store, id)
	if err != nil {
		return err
	}
	game, err := registry.Create(rec.GameID)
	if err != nil {
		return err
	}

	s := replay.Play(*rec, game)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Replay #%d - %s (seed %d)\n", rec.ID, game.Title(), rec.Seed)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Ticks:   %d (%s at %d fps)\n", s.Ticks, rec.Duration().Truncate(time.Second), rec.TickRate)
	fmt.Fprintf(out, "  Flaps:   %d\n", rec.Flaps())
	fmt.Fprintf(out, "  Runs:    %d\n", s.Runs)
	fmt.Fprintf(out, "  Points:  %d\n", s.Points)
	fmt.Fprintf(out, "  Best:    %d\n", s.Best)
	fmt.Fprintf(out, "  Final:   score %d, game over %t\n", s.Final.Score, s.Final.GameOver)
	return nil
}

// loadReplay fetches a recording, treating a missing one as an error.
func loadReplay(store *storage.Store, id int64) (*replay.Recording, error) {
	rec, err := store.LoadReplay(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %d", errReplayNotFound, id)
	}
	return rec, nil
}

// watchReplay plays a stored replay in the terminal with the variant's
// sounds. Returns true if the user asked to go back rather than quit.
func watchReplay(store *storage.Store, id int64) (bool, error) {
	rec, err := loadReplay(store, id)
	if err != nil {
		return false, err
	}

	var sink audio.Sink = &audio.Nop{}
	if registry.Exists(rec.GameID) {
		cfg := loadVariant(rec.GameID, rec.Runtime())
		player := audio.NewPlayer(cfg.Audio, false, logger)
		defer player.Close()
		sink = player
	}

	return tui.RunViewer(*rec, sink)
}
