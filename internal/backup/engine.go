package backup

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/clock"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/paths"
	"github.com/thoreinstein/ersm/internal/save"
	"github.com/thoreinstein/ersm/internal/store"
)

// Engine performs backup operations against one game's save root.
//
// The engine holds no cached state: every operation re-reads the sidecar
// files, and operations that touch the save slot re-resolve it, so
// changes made by the game or the user between invocations are always
// honored.
type Engine struct {
	root      string
	slotID    string
	backupDir string
	clock     clock.Clock
	logger    *slog.Logger
	settings  *store.SettingsStore
	notes     *store.NotesStore
}

// Option configures an Engine.
type Option func(*Engine)

// WithSlot pins the save slot to an explicit numeric Steam ID instead of
// discovering it. Required when the save root contains several slots.
func WithSlot(id string) Option {
	return func(e *Engine) {
		e.slotID = id
	}
}

// WithBackupDir overrides the backup destination for this engine. The
// sidecar's backupLocation is left untouched; the override is never
// written back.
func WithBackupDir(dir string) Option {
	return func(e *Engine) {
		e.backupDir = dir
	}
}

// WithClock sets the time source used for backup timestamps.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger for operation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine for the given save root.
func New(saveRoot string, opts ...Option) *Engine {
	e := &Engine{
		root:   saveRoot,
		clock:  clock.WallClock,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.settings = store.NewSettingsStore(saveRoot)
	e.notes = store.NewNotesStore(saveRoot)
	return e
}

// Root returns the save root the engine operates on.
func (e *Engine) Root() string {
	return e.root
}

// prepare loads both sidecars, resolves the save slot, and refreshes the
// recorded Steam ID when it is stale. The backup directory is created if
// missing.
func (e *Engine) prepare() (*store.Settings, *store.Notes, save.Slot, error) {
	settings, err := e.settings.Load()
	if err != nil {
		return nil, nil, save.Slot{}, err
	}

	slot, err := save.Resolve(e.root, e.slotID)
	if err != nil {
		return nil, nil, save.Slot{}, err
	}

	if settings.Numbers != slot.ID {
		e.logger.Info("updating recorded steam ID", "old", settings.Numbers, "new", slot.ID)
		settings.Numbers = slot.ID
		if err := e.settings.Save(settings); err != nil {
			return nil, nil, save.Slot{}, err
		}
	}

	// The override applies only after the sidecar refresh above so it is
	// never persisted.
	if e.backupDir != "" {
		settings.BackupLocation = e.backupDir
	}

	if isSubPath(slot.Path, settings.BackupLocation) {
		return nil, nil, save.Slot{}, errors.Newf(
			"backup location %s is inside the save slot %s", settings.BackupLocation, slot.Path)
	}

	notes, err := e.notes.Load()
	if err != nil {
		return nil, nil, save.Slot{}, err
	}

	if err := paths.EnsureDir(settings.BackupLocation, 0o755); err != nil {
		return nil, nil, save.Slot{}, errors.Mark(errors.Wrap(err, "creating backup directory"), errors.ErrIO)
	}

	return settings, notes, slot, nil
}

// Create copies the active save slot into a new named backup and records
// it in the notes sidecar. The description defaults to DefaultDescription
// when empty.
func (e *Engine) Create(name, description string) (*Entry, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if description == "" {
		description = DefaultDescription
	}

	settings, notes, slot, err := e.prepare()
	if err != nil {
		return nil, err
	}

	target := filepath.Join(settings.BackupLocation, name)

	// Collision check before any copying. A backup exists if either its
	// record or its directory does.
	if _, ok := notes.Find(name); ok {
		return nil, errors.Wrapf(ErrBackupExists, "%q", name)
	}
	if _, err := os.Stat(target); err == nil {
		return nil, errors.Wrapf(ErrBackupExists, "%q (untracked directory at %s)", name, target)
	}

	e.logger.Info("creating backup", "name", name, "slot", slot.ID)

	if err := copyDir(slot.Path, target); err != nil {
		os.RemoveAll(target)
		return nil, errors.Mark(errors.Wrapf(err, "copying save slot to %s", target), errors.ErrIO)
	}

	rec := store.Record{
		Name:        name,
		Description: description,
		BackupDate:  store.FormatBackupDate(e.clock.Now()),
	}
	notes.Add(rec)
	if err := e.notes.Save(notes); err != nil {
		return nil, err
	}

	entry := &Entry{Record: rec, Path: target, OnDisk: true}
	if size, err := dirSize(target); err == nil {
		entry.Size = size
	}
	return entry, nil
}

// QuickCreate creates a backup named after the current time. Two quick
// backups within the same second collide and the second one fails with
// ErrBackupExists.
func (e *Engine) QuickCreate(description string) (*Entry, error) {
	return e.Create(e.clock.Now().Format(QuickNameLayout), description)
}

// Restore replaces the active save slot's contents with the named backup.
//
// The current slot is first preserved as a safety backup named SafetyPrefix
// plus the restore time and tracked in the notes sidecar. The incoming
// backup is then staged inside the save root so the final swap is a rename
// on the same filesystem. On success the safety backup is removed again.
// On failure it is kept, still tracked, and named in the returned error so
// the previous save can be recovered by hand or with a second restore.
func (e *Engine) Restore(name string) (*Entry, error) {
	if err := validateDirName(name); err != nil {
		return nil, err
	}

	settings, notes, slot, err := e.prepare()
	if err != nil {
		return nil, err
	}

	source := filepath.Join(settings.BackupLocation, name)
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		if _, ok := notes.Find(name); ok {
			return nil, errors.Wrapf(ErrBackupNotFound, "%q is recorded but missing on disk at %s", name, source)
		}
		return nil, errors.Wrapf(ErrBackupNotFound, "%q", name)
	}

	rec, tracked := notes.Find(name)
	if !tracked {
		e.logger.Warn("restoring untracked backup", "name", name)
		rec = store.Record{Name: name}
	}

	now := e.clock.Now()
	safetyName := SafetyPrefix + now.Format(SafetyNameLayout)
	safetyTarget := filepath.Join(settings.BackupLocation, safetyName)
	if _, ok := notes.Find(safetyName); ok {
		return nil, errors.Wrapf(ErrBackupExists, "safety backup %q", safetyName)
	}
	if _, err := os.Stat(safetyTarget); err == nil {
		return nil, errors.Wrapf(ErrBackupExists, "safety backup %q", safetyName)
	}

	// Preserve the current save before anything else so every later
	// failure has a recovery path.
	if err := copyDir(slot.Path, safetyTarget); err != nil {
		os.RemoveAll(safetyTarget)
		return nil, errors.Mark(errors.Wrapf(err, "preserving current save to %s", safetyTarget), errors.ErrIO)
	}
	notes.Add(store.Record{
		Name:        safetyName,
		Description: SafetyDescription,
		BackupDate:  store.FormatBackupDate(now),
	})
	if err := e.notes.Save(notes); err != nil {
		os.RemoveAll(safetyTarget)
		return nil, err
	}

	e.logger.Info("restoring backup", "name", name, "slot", slot.ID, "safety", safetyName)

	// Stage the incoming backup inside the save root so the final swap is
	// a rename on the same filesystem.
	staging := filepath.Join(e.root, ".ersm-staging-"+now.Format(SafetyNameLayout))
	if err := copyDir(source, staging); err != nil {
		os.RemoveAll(staging)
		return nil, e.keepSafety(errors.Wrapf(err, "staging backup %q", name), safetyName)
	}

	if err := os.RemoveAll(slot.Path); err != nil {
		os.RemoveAll(staging)
		return nil, e.keepSafety(errors.Wrap(err, "clearing save slot"), safetyName)
	}
	if err := os.Rename(staging, slot.Path); err != nil {
		os.RemoveAll(staging)
		return nil, e.keepSafety(errors.Wrap(err, "moving restored save into place"), safetyName)
	}

	// The swap went through, the safety backup has served its purpose.
	if err := os.RemoveAll(safetyTarget); err != nil {
		e.logger.Warn("could not remove safety backup", "name", safetyName, "error", err)
	} else {
		notes.Remove(safetyName)
		if err := e.notes.Save(notes); err != nil {
			e.logger.Warn("could not drop safety backup record", "name", safetyName, "error", err)
		}
	}

	entry := &Entry{Record: rec, Path: source, OnDisk: true}
	if size, err := dirSize(source); err == nil {
		entry.Size = size
	}
	return entry, nil
}

// keepSafety wraps a mid-restore error so the message names the safety
// backup holding the previous save.
func (e *Engine) keepSafety(err error, safetyName string) error {
	e.logger.Error("restore failed", "safety", safetyName, "error", err)
	return errors.Mark(
		errors.Wrapf(err, "restore failed (previous save kept in safety backup %q)", safetyName),
		errors.ErrIO)
}

// Delete removes the named backup's directory and its record.
//
// When the record exists but the directory is already gone, the stale
// record is dropped and ErrBackupNotFound is still returned so the caller
// learns about the inconsistency.
func (e *Engine) Delete(name string) error {
	if err := validateDirName(name); err != nil {
		return err
	}

	settings, err := e.settings.Load()
	if err != nil {
		return err
	}
	if e.backupDir != "" {
		settings.BackupLocation = e.backupDir
	}
	notes, err := e.notes.Load()
	if err != nil {
		return err
	}

	target := filepath.Join(settings.BackupLocation, name)
	_, tracked := notes.Find(name)
	_, statErr := os.Stat(target)
	onDisk := statErr == nil

	switch {
	case !tracked && !onDisk:
		return errors.Wrapf(ErrBackupNotFound, "%q", name)

	case tracked && !onDisk:
		notes.Remove(name)
		if err := e.notes.Save(notes); err != nil {
			return err
		}
		return errors.Wrapf(ErrBackupNotFound, "%q was recorded but missing on disk; stale record removed", name)
	}

	// Remove the directory first so a failed removal keeps the record
	// pointing at the remaining files.
	if err := os.RemoveAll(target); err != nil {
		return errors.Mark(errors.Wrapf(err, "removing backup %q", name), errors.ErrIO)
	}

	if tracked {
		notes.Remove(name)
		if err := e.notes.Save(notes); err != nil {
			return err
		}
	} else {
		e.logger.Warn("deleted untracked backup directory", "name", name, "path", target)
	}

	e.logger.Info("deleted backup", "name", name)
	return nil
}

// List returns the recorded backups newest first. It reads only the notes
// sidecar and never touches the backup directories. Returns
// ErrNoBackupsFound when no backups are recorded.
func (e *Engine) List() ([]store.Record, error) {
	notes, err := e.notes.Load()
	if err != nil {
		return nil, err
	}
	if len(notes.Notes) == 0 {
		return nil, ErrNoBackupsFound
	}
	notes.SortDesc()
	return notes.Notes, nil
}

// Entries returns the records from List joined with each backup's on-disk
// state. Reads only: a missing settings sidecar means the default backup
// location and is not created.
func (e *Engine) Entries() ([]Entry, error) {
	records, err := e.List()
	if err != nil {
		return nil, err
	}
	settings, err := e.settings.Peek()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		settings = e.settings.Defaults()
	}
	if e.backupDir != "" {
		settings.BackupLocation = e.backupDir
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entry := Entry{
			Record: rec,
			Path:   filepath.Join(settings.BackupLocation, rec.Name),
		}
		if info, err := os.Stat(entry.Path); err == nil && info.IsDir() {
			entry.OnDisk = true
			if size, err := dirSize(entry.Path); err == nil {
				entry.Size = size
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Get returns the entry for one recorded backup.
func (e *Engine) Get(name string) (*Entry, error) {
	entries, err := e.Entries()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil, errors.Wrapf(ErrBackupNotFound, "%q", name)
		}
		return nil, err
	}
	for i := range entries {
		if entries[i].Record.Name == name {
			return &entries[i], nil
		}
	}
	return nil, errors.Wrapf(ErrBackupNotFound, "%q", name)
}

// isSubPath reports whether child is parent or lives under it.
func isSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
