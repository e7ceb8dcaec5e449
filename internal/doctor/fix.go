package doctor

// Fixer is implemented by checks that can repair what they find. Both
// methods read state gathered during Run, so they are only meaningful
// after a Run call.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult reports one attempted repair. Path names the record or file
// the fix targeted. Error is set when the repair itself failed, as
// opposed to being skipped.
type FixResult struct {
	Path        string
	Fixed       bool
	Description string
	Error       error
}
