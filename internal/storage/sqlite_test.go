package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecording(gameID string, seed int64) replay.Recording {
	return replay.Recording{
		GameID:   gameID,
		Seed:     seed,
		ScreenW:  40,
		ScreenH:  32,
		TickRate: 60,
		Ticks:    240,
		Frames: []replay.Frame{
			{Tick: 0, Actions: []core.Action{core.ActionJump}},
			{Tick: 17, Actions: []core.Action{core.ActionJump, core.ActionPause}},
			{Tick: 90, ScreenW: 80, ScreenH: 24},
			{Tick: 120, Actions: []core.Action{core.ActionRestart}},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveReplay(sampleRecording("flappy", 1))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	rec, err := store.LoadReplay(id)
	if err != nil || rec == nil {
		t.Fatalf("LoadReplay after reopen = %v, %v", rec, err)
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)
	want := sampleRecording("flappy", 42)

	id, err := store.SaveReplay(want)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if got == nil {
		t.Fatal("LoadReplay() returned nil")
	}

	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.GameID != want.GameID || got.Seed != want.Seed || got.Ticks != want.Ticks || got.TickRate != want.TickRate {
		t.Errorf("header = %+v", got)
	}
	if got.ScreenW != 40 || got.ScreenH != 32 {
		t.Errorf("screen = %dx%d", got.ScreenW, got.ScreenH)
	}
	if !reflect.DeepEqual(got.Frames, want.Frames) {
		t.Errorf("Frames = %+v\nwant %+v", got.Frames, want.Frames)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestLoadMissingReplay(t *testing.T) {
	store := openTestStore(t)
	rec, err := store.LoadReplay(12345)
	if err != nil {
		t.Fatalf("LoadReplay() error = %v", err)
	}
	if rec != nil {
		t.Errorf("LoadReplay() = %+v, want nil", rec)
	}
}

func TestListReplays(t *testing.T) {
	store := openTestStore(t)
	for i, id := range []string{"flappy", "flappy-lite", "flappy"} {
		if _, err := store.SaveReplay(sampleRecording(id, int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.ListReplays("", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Newest first
	if all[0].Seed != 2 || all[2].Seed != 0 {
		t.Errorf("order = %d, %d, %d", all[0].Seed, all[1].Seed, all[2].Seed)
	}
	if all[0].Flaps != 2 {
		t.Errorf("Flaps = %d, want 2", all[0].Flaps)
	}
	if d := all[0].Duration().Seconds(); d != 4 {
		t.Errorf("Duration = %vs, want 4s", d)
	}

	lite, err := store.ListReplays("flappy-lite", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lite) != 1 || lite[0].GameID != "flappy-lite" {
		t.Errorf("filtered list = %+v", lite)
	}

	limited, _ := store.ListReplays("", 2)
	if len(limited) != 2 {
		t.Errorf("limit ignored: %d entries", len(limited))
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveReplay(sampleRecording("flappy", 1))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	rec, err := store.LoadReplay(id)
	if err != nil || rec != nil {
		t.Errorf("after delete LoadReplay = %v, %v", rec, err)
	}

	var inputs int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_inputs WHERE replay_id = ?", id).Scan(&inputs); err != nil {
		t.Fatal(err)
	}
	if inputs != 0 {
		t.Errorf("%d orphaned inputs", inputs)
	}
}

func TestGetAllVariantStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveReplay(sampleRecording("flappy", 1))
	store.SaveReplay(sampleRecording("flappy", 2))
	store.SaveReplay(sampleRecording("flappy-lite", 3))

	stats, err := store.GetAllVariantStats()
	if err != nil {
		t.Fatalf("GetAllVariantStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	f := stats["flappy"]
	if f.Replays != 2 || f.TotalTicks != 480 || f.TotalFlaps != 4 {
		t.Errorf("flappy stats = %+v", f)
	}
	if f.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}
