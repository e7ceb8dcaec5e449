package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/cli/prompt"
	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/game"
	"github.com/thoreinstein/ersm/internal/logging"
	"github.com/thoreinstein/ersm/internal/paths"
)

// activeGameID returns the selected game profile ID, flag first, then
// config, then the builtin default.
func activeGameID() string {
	if gameFlag != "" {
		return gameFlag
	}
	if cfg.Game != "" {
		return cfg.Game
	}
	return game.DefaultGame
}

// activeSlot returns the pinned save slot, or "" for discovery.
func activeSlot() string {
	if slotFlag != "" {
		return slotFlag
	}
	return cfg.Slot
}

// resolveProfile returns the profile for the selected game, including any
// user overrides from games.toml.
func resolveProfile() (game.Profile, error) {
	reg, err := game.LoadRegistry(paths.GamesFile())
	if err != nil {
		return game.Profile{}, err
	}
	profile, err := reg.Get(activeGameID())
	if err != nil {
		return game.Profile{}, errors.NewUserError(err, "Run 'ersm games' to list known games")
	}
	return profile, nil
}

// resolveSaveRoot returns the save root to operate on, flag first, then
// config, then per-game discovery.
func resolveSaveRoot(profile game.Profile) (string, error) {
	if saveRootFlag != "" {
		return saveRootFlag, nil
	}
	if cfg.SaveRoot != "" {
		return cfg.SaveRoot, nil
	}
	root, err := profile.ResolveSaveRoot()
	if err != nil {
		return "", errors.NewUserError(err,
			"Launch the game once so it creates its save directory, or set save_root in config.yaml")
	}
	return root, nil
}

// newEngine builds a backup engine from the flags and config in effect.
func newEngine() (*backup.Engine, error) {
	profile, err := resolveProfile()
	if err != nil {
		return nil, err
	}
	root, err := resolveSaveRoot(profile)
	if err != nil {
		return nil, err
	}

	var opts []backup.Option
	if slot := activeSlot(); slot != "" {
		opts = append(opts, backup.WithSlot(slot))
	}
	if cfg.BackupDir != "" {
		opts = append(opts, backup.WithBackupDir(cfg.BackupDir))
	}
	return backup.New(root, opts...), nil
}

// confirmDestructive asks before a destructive operation. --yes skips the
// prompt; off a terminal the flag is required. A cancelled prompt counts
// as "no".
func confirmDestructive(w io.Writer, label string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !logging.IsTTY(os.Stdin) {
		return false, errors.NewUserError(errors.New("confirmation required"),
			"Pass --yes to confirm non-interactively")
	}
	p := prompt.NewPrompterWithIO(os.Stdin, w)
	ok, err := p.Confirm(label, false)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// entryAge renders a record's timestamp relative to now, falling back to
// the raw sidecar value when it does not parse.
func entryAge(e backup.Entry) string {
	t := e.Record.Time()
	if t.IsZero() {
		return e.Record.BackupDate
	}
	return humanize.Time(t)
}

// entrySize renders a backup's size, or a marker when the directory is
// gone.
func entrySize(e backup.Entry) string {
	if !e.OnDisk {
		return "missing"
	}
	return humanize.IBytes(uint64(e.Size))
}

// entryCreatedAt returns the record timestamp as RFC 3339 for JSON
// output, or "" when it does not parse.
func entryCreatedAt(e backup.Entry) string {
	t := e.Record.Time()
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// truncate caps s at maxLen characters, marking the cut with "...".
// Cuts on rune boundaries so multibyte names stay valid UTF-8.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// interactive reports whether both ends of the session are terminals.
func interactive() bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout)
}

// printCreated reports a freshly created backup.
func printCreated(w io.Writer, entry *backup.Entry) {
	fmt.Fprintf(w, "Created backup %q (%s)\n", entry.Record.Name, humanize.IBytes(uint64(entry.Size)))
}
