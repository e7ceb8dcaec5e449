package errors

import (
	crdberrors "github.com/cockroachdb/errors"
)

// Thin re-exports of the cockroachdb/errors constructors and predicates so
// that packages in this module import a single errors package. The wrapped
// functions keep full cause chains and work with the sentinel errors defined
// here and elsewhere in the module.

// New creates an error with the given message.
func New(msg string) error {
	return crdberrors.New(msg)
}

// Newf creates an error with a formatted message.
func Newf(format string, args ...any) error {
	return crdberrors.Newf(format, args...)
}

// Errorf creates an error with a formatted message. %w verbs wrap their
// operands as causes.
func Errorf(format string, args ...any) error {
	return crdberrors.Errorf(format, args...)
}

// Wrap annotates err with a message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return crdberrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdberrors.Wrapf(err, format, args...)
}

// Mark associates err with the reference error without hiding the original
// cause, so errors.Is(err, reference) reports true.
func Mark(err, reference error) error {
	return crdberrors.Mark(err, reference)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return crdberrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return crdberrors.As(err, target)
}
