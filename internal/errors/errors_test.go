package errors

import (
	stderrors "errors"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"passes through the cause", NewExitError(ErrMissingName, ExitUser), "name is required"},
		{"passes through a wrapped cause", NewExitError(Wrap(ErrInvalidConfig, "loading config"), ExitUser), "loading config: invalid configuration"},
		{"nil cause falls back to the code", NewExitError(nil, ExitSystem), "exit code 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitErrorUnwrapping(t *testing.T) {
	exitErr := NewExitError(Wrap(ErrMissingName, "creating backup"), ExitUser)

	if !stderrors.Is(exitErr, ErrMissingName) {
		t.Error("Is should reach the sentinel through ExitError and Wrap")
	}
	if stderrors.Is(exitErr, ErrInvalidConfig) {
		t.Error("Is matched a sentinel that is not in the chain")
	}

	var target *ExitError
	if !stderrors.As(Wrap(exitErr, "command failed"), &target) {
		t.Fatal("As should find the ExitError inside further wrapping")
	}
	if target.Code != ExitUser {
		t.Errorf("Code = %d, want %d", target.Code, ExitUser)
	}

	if stderrors.Is(NewExitError(nil, ExitUser), ErrMissingName) {
		t.Error("a nil cause should match nothing")
	}
}

func TestNewUserError(t *testing.T) {
	cause := New("bad slot id")
	e := NewUserError(cause, "pass --slot with a numeric Steam ID")

	if e.Err != cause {
		t.Errorf("Err = %v, want the original cause", e.Err)
	}
	if e.Code != ExitUser {
		t.Errorf("Code = %d, want %d", e.Code, ExitUser)
	}
	if e.Suggestion != "pass --slot with a numeric Steam ID" {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}
}

func TestNewConfigError(t *testing.T) {
	e := NewConfigError(ErrInvalidConfig)

	if e.Code != ExitUser {
		t.Errorf("Code = %d, want %d", e.Code, ExitUser)
	}
	if e.Suggestion != "Run: ersm doctor" {
		t.Errorf("Suggestion = %q, want the doctor hint", e.Suggestion)
	}
	if !stderrors.Is(e, ErrInvalidConfig) {
		t.Error("the cause should survive the constructor")
	}
}

func TestReexportedHelpers(t *testing.T) {
	base := New("base failure")

	wrapped := Wrap(base, "reading notes")
	if wrapped == nil {
		t.Fatal("Wrap returned nil for a non-nil error")
	}
	if !Is(wrapped, base) {
		t.Error("Is should find the cause through Wrap")
	}
	if got := wrapped.Error(); got != "reading notes: base failure" {
		t.Errorf("Wrap().Error() = %q", got)
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}

	marked := Mark(Wrapf(base, "copying %s", "slot"), ErrIO)
	if !Is(marked, ErrIO) {
		t.Error("Is should match the mark reference")
	}
	if !Is(marked, base) {
		t.Error("Is should still match the original cause after Mark")
	}
}
