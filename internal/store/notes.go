package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/pkg/fileutil"
)

// NotesFile is the backup metadata sidecar name inside the save root.
const NotesFile = "backupnotes.json"

// BackupDateLayout is the timestamp format stored in note records.
// The layout is part of the on-disk contract and must not change.
const BackupDateLayout = "01/02/2006, 15:04"

// FormatBackupDate renders t in the sidecar's timestamp format.
func FormatBackupDate(t time.Time) string {
	return t.Format(BackupDateLayout)
}

// ParseBackupDate parses a sidecar timestamp.
func ParseBackupDate(s string) (time.Time, error) {
	t, err := time.Parse(BackupDateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing backup date %q", s)
	}
	return t, nil
}

// Record is one backup's metadata entry.
// The JSON field names are part of the on-disk contract and must not change.
type Record struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BackupDate  string `json:"backupdate"`
}

// Time returns the record's backup date. Malformed dates yield the zero
// time, which sorts after every valid date.
func (r Record) Time() time.Time {
	t, err := ParseBackupDate(r.BackupDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Notes mirrors the backup metadata sidecar.
type Notes struct {
	Notes []Record `json:"notes"`
}

// Find returns the record with the given name.
func (n *Notes) Find(name string) (Record, bool) {
	for _, rec := range n.Notes {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// Add appends a record.
func (n *Notes) Add(rec Record) {
	n.Notes = append(n.Notes, rec)
}

// Remove deletes the record with the given name and reports whether it
// was present.
func (n *Notes) Remove(name string) bool {
	for i, rec := range n.Notes {
		if rec.Name == name {
			n.Notes = slices.Delete(n.Notes, i, i+1)
			return true
		}
	}
	return false
}

// SortDesc orders records newest first, breaking timestamp ties by name
// so the order is deterministic.
func (n *Notes) SortDesc() {
	slices.SortStableFunc(n.Notes, func(a, b Record) int {
		ta, tb := a.Time(), b.Time()
		if !ta.Equal(tb) {
			if ta.After(tb) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// NotesStore reads and writes the backup metadata sidecar of one save root.
// Every operation loads fresh state from disk; nothing is cached.
type NotesStore struct {
	path string
}

// NewNotesStore returns a store for the notes sidecar in root.
func NewNotesStore(root string) *NotesStore {
	return &NotesStore{path: filepath.Join(root, NotesFile)}
}

// Path returns the notes file path.
func (s *NotesStore) Path() string {
	return s.path
}

// Load reads the notes file. A missing file yields an empty set without
// touching disk.
func (s *NotesStore) Load() (*Notes, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Notes{}, nil
		}
		return nil, errors.Wrap(err, "reading notes file")
	}

	var notes Notes
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", NotesFile)
	}
	return &notes, nil
}

// Save sorts the records newest first and writes the notes file atomically.
func (s *NotesStore) Save(notes *Notes) error {
	notes.SortDesc()
	return errors.Wrapf(fileutil.AtomicWriteJSON(s.path, notes), "writing %s", NotesFile)
}
