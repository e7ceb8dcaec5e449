// Package backup creates, restores, and manages named snapshots of a
// game's save slot.
//
// # Layout
//
// Everything lives inside the game's save root, next to the save slot
// itself:
//
//	<SaveRoot>/
//	├── 76561198012345678/     the active save slot (numeric Steam ID)
//	├── Backup/                backup location (configurable)
//	│   ├── before-boss/       one directory per named backup
//	│   └── pre-restore-.../   safety backup left by a failed restore
//	├── ASM-ERSM.json          settings sidecar
//	└── backupnotes.json       backup metadata sidecar
//
// Each backup directory is a full copy of the slot at creation time. The
// notes sidecar records one entry per backup with its name, description,
// and creation timestamp.
//
// # Creating Backups
//
// Use [Engine.Create] with a unique name:
//
//	eng := backup.New(saveRoot)
//	entry, err := eng.Create("before-boss", "Margit attempt 14")
//
// Names become directory names, so path separators and the reserved
// safety prefix are rejected. A name collides when either its directory
// or its record already exists; [ErrBackupExists] is returned before
// anything is copied.
//
// # Restoring Backups
//
// [Engine.Restore] swaps the backup's contents into the save slot. The
// current slot is preserved first as a safety backup named
// pre-restore-<timestamp>, recorded in the sidecar like any other backup.
// A successful restore removes the safety backup again; a failed one
// keeps it and names it in the error, so the previous save is never lost:
//
//	restored, err := eng.Restore("before-boss")
//
// # Consistency
//
// The engine re-reads both sidecars on every operation. Operations that
// copy or replace the slot re-resolve it first, refreshing the recorded
// Steam ID when Steam switched accounts; Delete and List work without a
// resolvable slot. [Engine.Delete] reconciles records whose directories
// have been removed behind ersm's back, and [Engine.Entries] annotates
// each record with whether its directory still exists.
package backup
