// Package fileutil provides the atomic sidecar writes and bounded reads
// shared by the config, registry, and backup stores.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ersm/internal/errors"
)

// AtomicWriteFile replaces path with data via a temp file and rename in
// the same directory, so an interrupted write never leaves a truncated
// file behind. The parent directory must exist. perm applies to the
// final file.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ersm-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	name := tmp.Name()

	if err := fillTemp(tmp, data, perm); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return errors.Wrap(err, "replacing file")
	}
	return nil
}

// fillTemp writes data and applies perm, closing f on every path.
func fillTemp(f *os.File, data []byte, perm os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return errors.Wrap(err, "setting permissions")
	}
	return errors.Wrap(f.Close(), "closing temp file")
}

// AtomicWriteJSON writes v to path as two-space indented JSON with a
// trailing newline, the format of the backup sidecars.
func AtomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return AtomicWriteFile(path, append(data, '\n'), 0o644)
}

// AtomicWriteYAML writes v to path as YAML, the config file format.
// yaml.Marshal panics rather than returning an error for types it cannot
// encode; the panic is converted to an error here.
func AtomicWriteYAML(path string, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("encoding YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding YAML")
	}
	return AtomicWriteFile(path, data, 0o644)
}
