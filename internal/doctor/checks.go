package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/save"
	"github.com/thoreinstein/ersm/internal/store"
)

// ConfigCheck reports whether the tool configuration loaded cleanly.
type ConfigCheck struct {
	file    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. file is the config file the
// loader used ("" when defaults are in effect), loadErr the error it
// returned.
func NewConfigCheck(file string, loadErr error) *ConfigCheck {
	return &ConfigCheck{file: file, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the configuration diagnostic check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	switch {
	case c.loadErr != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("configuration invalid: %v", c.loadErr)
		result.FixHint = "fix the config file or delete it and run 'ersm init'"
		if c.file != "" {
			result.Details = map[string]any{"file": c.file}
		}
	case c.file == "":
		result.Status = SeverityInfo
		result.Message = "no config file found, defaults in effect"
		result.FixHint = "run 'ersm init' to create one"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("configuration loaded from %s", c.file)
	}

	return result
}

// SaveRootCheck verifies the resolved save root exists and is a directory.
type SaveRootCheck struct {
	root string
}

var _ Check = (*SaveRootCheck)(nil)

// NewSaveRootCheck creates a save root check. An empty root means
// resolution already failed upstream.
func NewSaveRootCheck(root string) *SaveRootCheck {
	return &SaveRootCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *SaveRootCheck) Name() string {
	return "save-root"
}

// Category returns the grouping for this check.
func (c *SaveRootCheck) Category() string {
	return "save"
}

// Run executes the save root diagnostic check.
func (c *SaveRootCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.root == "" {
		result.Status = SeverityError
		result.Message = "save root could not be resolved"
		result.FixHint = "set save_root in config.yaml or pass --save-root"
		return result
	}

	info, err := os.Stat(c.root)
	switch {
	case os.IsNotExist(err):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("save root does not exist: %s", c.root)
		result.FixHint = "launch the game once so it creates its save directory"
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat save root: %v", err)
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = fmt.Sprintf("save root is not a directory: %s", c.root)
	default:
		result.Status = SeverityPass
		result.Message = "save root found"
		result.Details = map[string]any{"path": c.root}
	}

	return result
}

// SlotCheck verifies that exactly one save slot can be resolved inside
// the save root.
type SlotCheck struct {
	root   string
	slotID string
}

var _ Check = (*SlotCheck)(nil)

// NewSlotCheck creates a slot resolution check. slotID pins an explicit
// slot, mirroring the --slot flag.
func NewSlotCheck(root, slotID string) *SlotCheck {
	return &SlotCheck{root: root, slotID: slotID}
}

// Name returns the unique identifier for this check.
func (c *SlotCheck) Name() string {
	return "save-slot"
}

// Category returns the grouping for this check.
func (c *SlotCheck) Category() string {
	return "save"
}

// Run executes the slot resolution diagnostic check.
func (c *SlotCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.root == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: no save root"
		return result
	}

	slot, err := save.Resolve(c.root, c.slotID)
	switch {
	case err == nil:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("save slot %s", slot.ID)
		result.Details = map[string]any{"slot": slot.ID, "path": slot.Path}
	case errors.Is(err, save.ErrNoActiveSave):
		result.Status = SeverityError
		result.Message = "no save slot found"
		result.FixHint = "launch the game once to create a save"
	case errors.Is(err, save.ErrMultipleSaves):
		result.Status = SeverityWarning
		result.Message = "multiple save slots found"
		result.FixHint = "pass --slot or set slot in config.yaml"
	default:
		result.Status = SeverityError
		result.Message = err.Error()
	}

	return result
}

// SettingsCheck verifies the settings sidecar parses and the backup
// location it names is writable.
type SettingsCheck struct {
	root string
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck creates a settings sidecar check.
func NewSettingsCheck(root string) *SettingsCheck {
	return &SettingsCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *SettingsCheck) Name() string {
	return "settings-sidecar"
}

// Category returns the grouping for this check.
func (c *SettingsCheck) Category() string {
	return "sidecar"
}

// Run executes the settings sidecar diagnostic check.
func (c *SettingsCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.root == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: no save root"
		return result
	}

	settings, err := store.NewSettingsStore(c.root).Peek()
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Status = SeverityInfo
		result.Message = store.SettingsFile + " not created yet; the first backup will write it"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "fix or delete " + filepath.Join(c.root, store.SettingsFile)
		return result
	}

	loc := settings.BackupLocation
	if _, err := os.Stat(loc); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("backup directory %s will be created on first backup", loc)
		return result
	}

	// Probe writability with a real file; permissions bits alone lie on
	// some filesystems.
	probe, err := os.CreateTemp(loc, ".ersm-doctor-*")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("backup directory is not writable: %v", err)
		result.FixHint = "check permissions on " + loc
		return result
	}
	probe.Close()
	os.Remove(probe.Name())

	result.Status = SeverityPass
	result.Message = "backup directory writable"
	result.Details = map[string]any{"path": loc}
	return result
}

// NotesCheck verifies the notes sidecar parses and its timestamps are
// well formed.
type NotesCheck struct {
	root string
}

var _ Check = (*NotesCheck)(nil)

// NewNotesCheck creates a notes sidecar check.
func NewNotesCheck(root string) *NotesCheck {
	return &NotesCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *NotesCheck) Name() string {
	return "notes-sidecar"
}

// Category returns the grouping for this check.
func (c *NotesCheck) Category() string {
	return "sidecar"
}

// Run executes the notes sidecar diagnostic check.
func (c *NotesCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.root == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: no save root"
		return result
	}

	path := filepath.Join(c.root, store.NotesFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "no backups recorded yet"
		return result
	}

	notes, err := store.NewNotesStore(c.root).Load()
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "fix or delete " + path
		return result
	}

	var malformed []string
	for _, rec := range notes.Notes {
		if rec.Time().IsZero() {
			malformed = append(malformed, rec.Name)
		}
	}
	if len(malformed) > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d records have unparseable timestamps and sort last", len(malformed))
		result.Details = map[string]any{"names": malformed}
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d backup records", len(notes.Notes))
	return result
}

// DriftCheck compares the notes sidecar against the backup directory and
// reports records whose directory is gone as well as directories with no
// record. Stale records are fixable: Fix drops them from the sidecar.
type DriftCheck struct {
	root  string
	stale []string
}

var (
	_ Check = (*DriftCheck)(nil)
	_ Fixer = (*DriftCheck)(nil)
)

// NewDriftCheck creates a record/directory drift check.
func NewDriftCheck(root string) *DriftCheck {
	return &DriftCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *DriftCheck) Name() string {
	return "backup-drift"
}

// Category returns the grouping for this check.
func (c *DriftCheck) Category() string {
	return "sidecar"
}

// Run executes the drift diagnostic check.
func (c *DriftCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}
	c.stale = nil

	if c.root == "" {
		result.Status = SeverityInfo
		result.Message = "skipped: no save root"
		return result
	}

	// Broken sidecars are SettingsCheck's and NotesCheck's to report.
	settings, err := store.NewSettingsStore(c.root).Peek()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: settings sidecar unavailable"
		return result
	}
	notes, err := store.NewNotesStore(c.root).Load()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: notes sidecar unavailable"
		return result
	}

	recorded := make(map[string]bool, len(notes.Notes))
	for _, rec := range notes.Notes {
		recorded[rec.Name] = true
		if _, err := os.Stat(filepath.Join(settings.BackupLocation, rec.Name)); os.IsNotExist(err) {
			c.stale = append(c.stale, rec.Name)
		}
	}

	var untracked []string
	if dirEntries, err := os.ReadDir(settings.BackupLocation); err == nil {
		for _, de := range dirEntries {
			if de.IsDir() && !recorded[de.Name()] {
				untracked = append(untracked, de.Name())
			}
		}
	}

	switch {
	case len(c.stale) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d recorded backups are missing on disk", len(c.stale))
		result.Details = map[string]any{"missing": c.stale}
		if len(untracked) > 0 {
			result.Details["untracked"] = untracked
		}
		result.Fixable = true
		result.FixHint = "run with --fix to drop the stale records"
	case len(untracked) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d directories in the backup location have no record", len(untracked))
		result.Details = map[string]any{"untracked": untracked}
		result.FixHint = "delete them or recreate them through ersm"
	default:
		result.Status = SeverityPass
		result.Message = "records and backup directories agree"
	}

	return result
}

// CanFix returns true if Run found stale records to drop.
func (c *DriftCheck) CanFix() bool {
	return len(c.stale) > 0
}

// Fix drops the stale records found by Run from the notes sidecar.
func (c *DriftCheck) Fix() []FixResult {
	ns := store.NewNotesStore(c.root)
	notes, err := ns.Load()
	if err != nil {
		return []FixResult{{
			Path:        c.root,
			Description: "reloading notes sidecar",
			Error:       err,
		}}
	}

	for _, name := range c.stale {
		notes.Remove(name)
	}
	if err := ns.Save(notes); err != nil {
		return []FixResult{{
			Path:        c.root,
			Description: "writing notes sidecar",
			Error:       err,
		}}
	}

	results := make([]FixResult, 0, len(c.stale))
	for _, name := range c.stale {
		results = append(results, FixResult{
			Path:        name,
			Fixed:       true,
			Description: "dropped stale record",
		})
	}
	return results
}
