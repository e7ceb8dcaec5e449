package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/pkg/fileutil"
)

const (
	// SettingsFile is the settings sidecar name inside the save root.
	SettingsFile = "ASM-ERSM.json"

	// BackupDirName is the default backup directory name inside the save root.
	BackupDirName = "Backup"
)

// Settings mirrors the settings sidecar.
//
// BackupLocation is where backups live; Numbers records the numeric Steam
// ID of the save slot last operated on. The JSON field names are part of
// the on-disk contract and must not change.
type Settings struct {
	BackupLocation string `json:"backupLocation"`
	Numbers        string `json:"numbers"`
}

// SettingsStore reads and writes the settings sidecar of one save root.
// Every operation loads fresh state from disk; nothing is cached.
type SettingsStore struct {
	root string
	path string
}

// NewSettingsStore returns a store for the settings sidecar in root.
func NewSettingsStore(root string) *SettingsStore {
	return &SettingsStore{
		root: root,
		path: filepath.Join(root, SettingsFile),
	}
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings file. If the file does not exist it is created
// with defaults: BackupLocation under the save root, Numbers empty.
// An empty BackupLocation in an existing file is filled with the default
// without being written back.
func (s *SettingsStore) Load() (*Settings, error) {
	settings, err := s.Peek()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			settings = s.Defaults()
			if err := s.Save(settings); err != nil {
				return nil, err
			}
			return settings, nil
		}
		return nil, err
	}
	return settings, nil
}

// Peek reads the settings file like Load but never creates it. Callers
// that must not write, like diagnostics, test for a missing file with
// errors.Is(err, os.ErrNotExist).
func (s *SettingsStore) Peek() (*Settings, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "reading settings file")
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", SettingsFile)
	}
	if settings.BackupLocation == "" {
		settings.BackupLocation = s.Defaults().BackupLocation
	}
	return &settings, nil
}

// Save writes the settings file atomically.
func (s *SettingsStore) Save(settings *Settings) error {
	return errors.Wrapf(fileutil.AtomicWriteJSON(s.path, settings), "writing %s", SettingsFile)
}

// Defaults returns the first-run settings value without touching disk.
func (s *SettingsStore) Defaults() *Settings {
	return &Settings{
		BackupLocation: filepath.Join(s.root, BackupDirName),
	}
}
