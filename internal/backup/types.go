package backup

import (
	"strings"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/store"
)

// DefaultDescription is recorded when a backup is created without one.
const DefaultDescription = "No description provided."

// SafetyPrefix is the reserved name prefix for the automatic backup taken
// before a restore. User-chosen names must not start with it.
const SafetyPrefix = "pre-restore-"

// SafetyNameLayout is the timestamp appended to SafetyPrefix, making
// safety backup names deterministic for a given restore time.
const SafetyNameLayout = "20060102T150405"

// SafetyDescription is recorded on safety backups. They normally live only
// for the duration of one restore; the description explains leftovers from
// a failed one.
const SafetyDescription = "Automatic safety backup taken before a restore."

// QuickNameLayout names quick backups created without an explicit name.
const QuickNameLayout = "backup-20060102T150405"

// Sentinel errors for backup operations.
var (
	// ErrBackupNotFound indicates the named backup does not exist.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrBackupExists indicates a backup with the requested name already exists.
	ErrBackupExists = errors.New("backup already exists")

	// ErrNoBackupsFound indicates no backups exist for the save root.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrInvalidName indicates the backup name cannot be used as a directory name.
	ErrInvalidName = errors.New("invalid backup name")
)

// validateDirName rejects names that cannot address a single directory
// entry under the backup location. Dot names and path separators would
// let a name resolve outside it; every operation that joins a name onto
// the backup location runs this first.
func validateDirName(name string) error {
	switch {
	case name == "":
		return errors.Wrap(ErrInvalidName, "name is required")
	case name == "." || name == "..":
		return errors.Wrapf(ErrInvalidName, "%q", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Wrapf(ErrInvalidName, "%q contains a path separator", name)
	}
	return nil
}

// ValidateName rejects names that cannot serve as a backup directory name
// or that collide with the reserved safety prefix. The prefix rule applies
// only to user-chosen names on create; Delete and Restore keep working on
// safety backups left behind by a failed restore.
func ValidateName(name string) error {
	if err := validateDirName(name); err != nil {
		return err
	}
	if strings.HasPrefix(name, SafetyPrefix) {
		return errors.Wrapf(ErrInvalidName, "prefix %q is reserved for automatic backups", SafetyPrefix)
	}
	return nil
}

// Entry joins a backup's metadata record with its on-disk state.
type Entry struct {
	// Record is the metadata entry from the notes sidecar.
	Record store.Record

	// Path is the backup directory.
	Path string

	// Size is the total size of the backup's files in bytes.
	// Zero when the directory is missing.
	Size int64

	// OnDisk reports whether the backup directory exists.
	OnDisk bool
}
