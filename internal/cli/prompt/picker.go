package prompt

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/errors"
)

// PickBackup opens a fuzzy finder over the given backups and returns the
// index of the chosen one. Aborting the finder returns ErrCancelled.
//
// The finder takes over the terminal, so this is only for interactive
// sessions; non-interactive callers pass backup names explicitly.
func PickBackup(entries []backup.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, ErrNoOptions
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].Record.Name, entries[i].Record.BackupDate)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return previewBackup(entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, ErrCancelled
		}
		return 0, errors.Wrap(err, "picking backup")
	}

	return idx, nil
}

// previewBackup renders the preview pane for one backup.
func previewBackup(e backup.Entry) string {
	created := e.Record.BackupDate
	if t := e.Record.Time(); !t.IsZero() {
		created = fmt.Sprintf("%s (%s)", e.Record.BackupDate, humanize.Time(t))
	}

	size := "missing on disk"
	if e.OnDisk {
		size = humanize.IBytes(uint64(e.Size))
	}

	return fmt.Sprintf("Name: %s\nCreated: %s\nSize: %s\n\nDescription:\n%s",
		e.Record.Name,
		created,
		size,
		e.Record.Description,
	)
}
