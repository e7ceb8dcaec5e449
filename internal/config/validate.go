package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ersm/internal/save"
)

var (
	// ErrVersionTooLow reports a version field below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidSlot reports a slot override that is not a numeric Steam ID.
	ErrInvalidSlot = errors.New("slot must be numeric")

	// ErrInvalidLogFormat reports an unrecognized log format name.
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrInvalidPath reports a malformed path value.
	ErrInvalidPath = errors.New("invalid path")
)

// FieldError ties a validation failure to the config field and value
// that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate collects everything wrong with cfg. A nil return means the
// config is usable. Paths are checked for shape only; whether they
// exist is the doctor command's business.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	fail := func(field, value string, err error) {
		errs = append(errs, &FieldError{Field: field, Value: value, Err: err})
	}

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Slot != "" && !save.IsSlotID(cfg.Slot) {
		fail("slot", cfg.Slot, ErrInvalidSlot)
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		fail("log_format", cfg.LogFormat, ErrInvalidLogFormat)
	}

	paths := []struct{ field, value string }{
		{"save_root", cfg.SaveRoot},
		{"backup_dir", cfg.BackupDir},
		{"log_file", cfg.LogFile},
	}
	for _, p := range paths {
		if p.value != "" && !wellFormedPath(p.value) {
			fail(p.field, p.value, ErrInvalidPath)
		}
	}

	return errs
}

// wellFormedPath rejects strings no filesystem accepts: embedded NUL
// bytes, or paths that clean down to nothing.
func wellFormedPath(path string) bool {
	if strings.ContainsRune(path, '\x00') {
		return false
	}
	cleaned := filepath.Clean(path)
	return cleaned != "" && cleaned != "."
}
