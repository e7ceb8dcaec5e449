package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/cli/prompt"
	"github.com/thoreinstein/ersm/internal/errors"
)

// menuOptions are the interactive menu actions in display order.
var menuOptions = []string{"create", "restore", "delete", "list", "help", "exit"}

// runMenu drives the interactive session entered by running ersm with no
// arguments on a terminal.
func runMenu(cmd *cobra.Command) error {
	return runMenuWithIO(cmd, os.Stdin, os.Stdout)
}

// runMenuWithIO loops over menu selections until exit or EOF. Operation
// failures are printed and the loop continues; the menu itself never
// fails.
func runMenuWithIO(_ *cobra.Command, r io.Reader, w io.Writer) error {
	p := prompt.NewPrompterWithIO(r, w)

	fmt.Fprintf(w, "ersm save manager (%s)\n\n", activeGameID())

	for {
		idx, err := p.Select("What now?", menuOptions)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				return nil
			}
			fmt.Fprintln(w, "Invalid choice.")
			continue
		}

		var opErr error
		switch menuOptions[idx] {
		case "create":
			opErr = menuCreate(p, w)
		case "restore":
			opErr = menuRestore(p, w)
		case "delete":
			opErr = menuDelete(p, w)
		case "list":
			opErr = runListWithWriter(w)
		case "help":
			menuHelp(w)
		case "exit":
			return nil
		}

		switch {
		case opErr == nil:
		case errors.Is(opErr, prompt.ErrCancelled):
			fmt.Fprintln(w, "Cancelled.")
		default:
			fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), opErr)
		}
		fmt.Fprintln(w)
	}
}

func menuCreate(p *prompt.Prompter, w io.Writer) error {
	name, err := p.Input("Backup name (empty for a generated name)", "")
	if err != nil {
		return err
	}
	description, err := p.Input("Description", "")
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	var entry *backup.Entry
	if name == "" {
		entry, err = eng.QuickCreate(description)
	} else {
		entry, err = eng.Create(name, description)
	}
	if err != nil {
		return err
	}

	printCreated(w, entry)
	return nil
}

func menuRestore(p *prompt.Prompter, w io.Writer) error {
	eng, entries, err := menuEntries(w)
	if err != nil || entries == nil {
		return err
	}

	idx, err := p.Select("Restore which backup?", entryLines(entries))
	if err != nil {
		return err
	}
	name := entries[idx].Record.Name

	ok, err := p.Confirm(fmt.Sprintf("Restore %q over the active save?", name), false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Aborted")
		return nil
	}

	if _, err := eng.Restore(name); err != nil {
		return err
	}
	fmt.Fprintln(w, color.GreenString("✓ Restored %q", name))
	return nil
}

func menuDelete(p *prompt.Prompter, w io.Writer) error {
	eng, entries, err := menuEntries(w)
	if err != nil || entries == nil {
		return err
	}

	idx, err := p.Select("Delete which backup?", entryLines(entries))
	if err != nil {
		return err
	}
	name := entries[idx].Record.Name

	ok, err := p.Confirm(fmt.Sprintf("Delete backup %q?", name), false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Aborted")
		return nil
	}

	if err := eng.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted backup %q\n", name)
	return nil
}

// menuEntries loads the recorded backups for a pick list. An empty store
// is reported to the user and returned as (nil, nil, nil).
func menuEntries(w io.Writer) (*backup.Engine, []backup.Entry, error) {
	eng, err := newEngine()
	if err != nil {
		return nil, nil, err
	}
	entries, err := eng.Entries()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			fmt.Fprintln(w, "No backups recorded yet.")
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return eng, entries, nil
}

// entryLines renders entries as single pick-list lines.
func entryLines(entries []backup.Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s (%s, %s)", e.Record.Name, entryAge(e), entrySize(e))
	}
	return lines
}

func menuHelp(w io.Writer) {
	fmt.Fprintln(w, "create   back up the active save under a name of your choice")
	fmt.Fprintln(w, "restore  replace the active save with a backup")
	fmt.Fprintln(w, "delete   remove a backup and its record")
	fmt.Fprintln(w, "list     show all recorded backups")
	fmt.Fprintln(w, "exit     leave the menu")
}
