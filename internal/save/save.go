// Package save locates the active save slot inside a game's save root.
//
// FromSoftware games keep one subdirectory per Steam account, named after
// the numeric Steam ID (for example 76561198012345678). That directory is
// the save slot: the unit ersm backs up and restores. Slot resolution is
// repeated on every operation so external changes, like Steam switching
// accounts, are picked up immediately.
package save

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/ersm/internal/errors"
)

// Sentinel errors for slot resolution.
var (
	// ErrNoActiveSave indicates the save root contains no numeric save directory.
	ErrNoActiveSave = errors.New("no active save directory found")

	// ErrMultipleSaves indicates the save root contains more than one numeric
	// save directory and the caller must pick one explicitly.
	ErrMultipleSaves = errors.New("multiple save directories found")

	// ErrSlotNotFound indicates the explicitly requested slot does not exist.
	ErrSlotNotFound = errors.New("save slot not found")
)

// Slot is the active save directory for one Steam account.
type Slot struct {
	// ID is the numeric directory name, i.e. the Steam account ID.
	ID string

	// Path is the absolute path of the save directory.
	Path string
}

// IsSlotID reports whether name consists entirely of decimal digits.
// Steam IDs are 17 digits, so the check stays on strings rather than
// going through integer parsing.
func IsSlotID(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ListSlots returns every numeric-named subdirectory of root, sorted by ID.
// Files with numeric names are ignored.
func ListSlots(root string) ([]Slot, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading save root %s", root)
	}

	var slots []Slot
	for _, e := range entries {
		if !e.IsDir() || !IsSlotID(e.Name()) {
			continue
		}
		slots = append(slots, Slot{ID: e.Name(), Path: filepath.Join(root, e.Name())})
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

// Resolve returns the save slot to operate on.
//
// With a non-empty id the slot is looked up directly and must exist.
// With an empty id exactly one numeric directory must be present in root:
// zero yields ErrNoActiveSave, more than one yields ErrMultipleSaves
// naming every candidate.
func Resolve(root, id string) (Slot, error) {
	if id != "" {
		if !IsSlotID(id) {
			return Slot{}, errors.Wrapf(ErrSlotNotFound, "%q is not a numeric steam ID", id)
		}
		path := filepath.Join(root, id)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return Slot{}, errors.Wrapf(ErrSlotNotFound, "%s", path)
		}
		return Slot{ID: id, Path: path}, nil
	}

	slots, err := ListSlots(root)
	if err != nil {
		return Slot{}, err
	}

	switch len(slots) {
	case 0:
		return Slot{}, errors.Wrapf(ErrNoActiveSave, "no numeric save directory in %s", root)
	case 1:
		return slots[0], nil
	default:
		ids := make([]string, len(slots))
		for i, s := range slots {
			ids[i] = s.ID
		}
		return Slot{}, errors.Wrapf(ErrMultipleSaves, "found %s", strings.Join(ids, ", "))
	}
}
