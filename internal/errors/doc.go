// Package errors is the single errors import for the rest of the module.
//
// It re-exports the cockroachdb/errors constructors and predicates, so
// callers wrap and test errors without juggling two imports:
//
//	if err := notes.Save(n); err != nil {
//	    return errors.Wrap(err, "recording backup")
//	}
//
// On top of that it defines the CLI's exit convention. [ExitError]
// carries the process exit code and an optional suggestion line; main
// unwraps it with [As] and prints the suggestion under the error. Errors
// marked with [ErrIO] via [Mark] exit with [ExitSystem] even when no
// ExitError is in the chain, keeping filesystem failures distinct from
// user mistakes:
//
//	if err := os.RemoveAll(dir); err != nil {
//	    return errors.Mark(errors.Wrap(err, "removing backup"), errors.ErrIO)
//	}
package errors
