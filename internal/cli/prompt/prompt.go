// Package prompt implements the line-oriented prompts and the fuzzy
// backup picker used by the interactive commands.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/ersm/internal/errors"
)

// Sentinel errors for interactive prompts.
var (
	ErrNoOptions        = errors.New("no options to select from")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCancelled        = errors.New("cancelled")
)

// Prompter asks the user for input on a line-oriented terminal.
//
// It keeps one buffered reader across calls so a sequence of prompts
// (menu, name, confirmation) never loses buffered input between them.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompter creates a Prompter using stdin and stdout.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a Prompter with custom reader and writer for testing.
func NewPrompterWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// readLine reads one line of input with the trailing newline and
// surrounding whitespace removed. EOF before any input (e.g. Ctrl+D)
// returns ErrCancelled.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading input")
		}
		if line == "" {
			return "", ErrCancelled
		}
		// A final line without a trailing newline still counts.
	}
	return strings.TrimSpace(line), nil
}

// Input prompts for one line of free text. Empty input returns def.
func (p *Prompter) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.writer, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.writer, "%s: ", label)
	}

	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}

// Confirm asks a yes/no question. Empty input returns def.
//
// Returns:
//   - The answer for y/yes/n/no (case-insensitive)
//   - ErrInvalidSelection for anything else
//   - ErrCancelled if input is EOF (e.g., Ctrl+D)
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.writer, "%s [%s]: ", label, hint)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidSelection, "%q is not yes or no", input)
}

// Select prompts the user to choose from a numbered list of options and
// returns the chosen index.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - 0 if input is empty (the first option is the default)
//   - ErrInvalidSelection if the selection is out of range
//   - ErrCancelled if input is EOF (e.g., Ctrl+D)
func (p *Prompter) Select(label string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	fmt.Fprintf(p.writer, "%s\n", label)
	for i, opt := range options {
		fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, opt)
	}
	fmt.Fprintf(p.writer, "Select [1]: ")

	input, err := p.readLine()
	if err != nil {
		return 0, err
	}

	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// The list is shown 1-indexed.
	if selection < 1 || selection > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}

	return selection - 1, nil
}
