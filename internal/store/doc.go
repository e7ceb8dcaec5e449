// Package store reads and writes the two JSON sidecar files ersm keeps
// inside a game's save root.
//
// ASM-ERSM.json holds settings: the backup location and the numeric Steam
// ID last seen. backupnotes.json holds one record per backup with its
// name, description, and creation timestamp. Both files use stable field
// names and a fixed timestamp layout because other tools read them.
//
// Stores are deliberately stateless: Load returns a snapshot of the file
// and Save writes one back atomically. Callers re-load before every
// operation so concurrent edits by the game or the user are never
// overwritten with stale data held in memory.
package store
