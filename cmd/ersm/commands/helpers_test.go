package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/config"
	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/game"
	"github.com/thoreinstein/ersm/internal/store"
)

const testSlotID = "76561198012345678"

// newSaveRoot builds a save root containing one populated save slot.
func newSaveRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, testSlotID, "ER0000.sl2"), "savedata")
	return root
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// withTestConfig points the command state at the given config with all
// flags cleared, restoring the previous state afterwards.
func withTestConfig(t *testing.T, c *config.Config) {
	t.Helper()
	oldCfg, oldErr := cfg, configLoadErr
	oldGame, oldRoot, oldSlot := gameFlag, saveRootFlag, slotFlag
	oldYes := assumeYes

	cfg, configLoadErr = c, nil
	gameFlag, saveRootFlag, slotFlag = "", "", ""
	assumeYes = false

	t.Cleanup(func() {
		cfg, configLoadErr = oldCfg, oldErr
		gameFlag, saveRootFlag, slotFlag = oldGame, oldRoot, oldSlot
		assumeYes = oldYes
	})
}

// withSaveRoot is withTestConfig preconfigured for a seeded save root.
func withSaveRoot(t *testing.T) string {
	t.Helper()
	root := newSaveRoot(t)
	c := config.Default()
	c.SaveRoot = root
	withTestConfig(t, c)
	return root
}

// seedBackups creates backups through the engine so sidecars and
// directories agree.
func seedBackups(t *testing.T, root string, names ...string) {
	t.Helper()
	eng := backup.New(root)
	for _, name := range names {
		if _, err := eng.Create(name, "seeded"); err != nil {
			t.Fatalf("seeding backup %q: %v", name, err)
		}
	}
}

func TestActiveGameID(t *testing.T) {
	withTestConfig(t, &config.Config{Game: "sekiro"})

	if got := activeGameID(); got != "sekiro" {
		t.Errorf("activeGameID() = %q, want config value", got)
	}

	gameFlag = "nightreign"
	if got := activeGameID(); got != "nightreign" {
		t.Errorf("activeGameID() = %q, want flag to win", got)
	}

	gameFlag = ""
	cfg.Game = ""
	if got := activeGameID(); got != game.DefaultGame {
		t.Errorf("activeGameID() = %q, want default", got)
	}
}

func TestActiveSlot(t *testing.T) {
	withTestConfig(t, &config.Config{Slot: "111"})

	if got := activeSlot(); got != "111" {
		t.Errorf("activeSlot() = %q, want config value", got)
	}

	slotFlag = "222"
	if got := activeSlot(); got != "222" {
		t.Errorf("activeSlot() = %q, want flag to win", got)
	}
}

func TestResolveSaveRoot(t *testing.T) {
	withTestConfig(t, &config.Config{SaveRoot: "/from/config"})

	root, err := resolveSaveRoot(game.Profile{})
	if err != nil {
		t.Fatalf("resolveSaveRoot() error = %v", err)
	}
	if root != "/from/config" {
		t.Errorf("root = %q, want config value", root)
	}

	saveRootFlag = "/from/flag"
	if root, _ := resolveSaveRoot(game.Profile{}); root != "/from/flag" {
		t.Errorf("root = %q, want flag to win", root)
	}

	// Neither set: discovery runs and fails for a profile with a pinned
	// path that does not exist.
	saveRootFlag = ""
	cfg.SaveRoot = ""
	_, err = resolveSaveRoot(game.Profile{SaveRoot: filepath.Join(t.TempDir(), "nope")})
	if !errors.Is(err, game.ErrSaveRootNotFound) {
		t.Errorf("error = %v, want ErrSaveRootNotFound", err)
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Error("discovery failure should carry a suggestion for the user")
	}
}

func TestNewEngine_UnknownGame(t *testing.T) {
	withTestConfig(t, &config.Config{Game: "bloodborne"})

	_, err := newEngine()
	if !errors.Is(err, game.ErrUnknownGame) {
		t.Fatalf("newEngine() error = %v, want ErrUnknownGame", err)
	}
}

func TestNewEngine_UsesConfiguredRoot(t *testing.T) {
	root := withSaveRoot(t)

	eng, err := newEngine()
	if err != nil {
		t.Fatalf("newEngine() error = %v", err)
	}
	if eng.Root() != root {
		t.Errorf("Root() = %q, want %q", eng.Root(), root)
	}
}

func TestConfirmDestructive(t *testing.T) {
	withTestConfig(t, config.Default())

	// --yes skips the prompt entirely.
	assumeYes = true
	ok, err := confirmDestructive(os.Stdout, "Delete everything?")
	if err != nil || !ok {
		t.Errorf("confirmDestructive() with --yes = (%v, %v), want (true, nil)", ok, err)
	}

	// Off a terminal the flag is required. Test stdin is not a terminal.
	assumeYes = false
	ok, err = confirmDestructive(os.Stdout, "Delete everything?")
	if ok || err == nil {
		t.Fatalf("confirmDestructive() off-tty = (%v, %v), want an error", ok, err)
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || !strings.Contains(exitErr.Suggestion, "--yes") {
		t.Errorf("error should suggest --yes, got %v", err)
	}
}

func TestEntryRendering(t *testing.T) {
	rec := store.Record{Name: "boss", Description: "x", BackupDate: "03/09/2024, 21:05"}
	missing := backup.Entry{Record: rec}
	if got := entrySize(missing); got != "missing" {
		t.Errorf("entrySize(missing) = %q", got)
	}

	onDisk := backup.Entry{Record: rec, OnDisk: true, Size: 28 * 1024 * 1024}
	if got := entrySize(onDisk); got != "28 MiB" {
		t.Errorf("entrySize() = %q, want 28 MiB", got)
	}

	if got := entryCreatedAt(onDisk); !strings.HasPrefix(got, "2024-03-09T21:05") {
		t.Errorf("entryCreatedAt() = %q, want RFC 3339", got)
	}

	malformed := backup.Entry{Record: store.Record{Name: "bad", BackupDate: "yesterday-ish"}}
	if got := entryAge(malformed); got != "yesterday-ish" {
		t.Errorf("entryAge(malformed) = %q, want raw value", got)
	}
	if got := entryCreatedAt(malformed); got != "" {
		t.Errorf("entryCreatedAt(malformed) = %q, want empty", got)
	}

	recent := backup.Entry{Record: store.Record{
		Name:       "new",
		BackupDate: time.Now().Add(-2 * time.Hour).Format(store.BackupDateLayout),
	}}
	if got := entryAge(recent); !strings.Contains(got, "ago") {
		t.Errorf("entryAge(recent) = %q, want a relative age", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this one is too long", 10, "this on..."},
		{"abc", 2, "ab"},
		{"ünïcödé näme töö löng", 10, "ünïcödé..."},
		{"héllo", 4, "h..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
