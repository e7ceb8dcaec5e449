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

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [name]",
	Short: "Restore a backup over the active save",
	Long: `Replace the active save slot's contents with the named backup.

Without a name, an interactive session opens a fuzzy picker over the
recorded backups; non-interactive use requires the name. The previous
save is preserved in a temporary safety backup for the duration of the
restore, and kept if the restore fails partway.`,
	Example: `  # Restore a named backup
  ersm restore before-malenia

  # Pick one interactively
  ersm restore

  # Scripted restore, no confirmation prompt
  ersm restore before-malenia --yes

  See Also:
    ersm list   - List available backups
    ersm create - Create a backup first`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(_ *cobra.Command, args []string) error {
	return runRestoreWithWriter(os.Stdout, args)
}

func runRestoreWithWriter(w io.Writer, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	name, err := pickBackupName(w, eng, args)
	if err != nil || name == "" {
		return err
	}

	ok, err := confirmDestructive(w, fmt.Sprintf("Restore %q over the active save?", name))
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

// pickBackupName returns the backup to operate on: the argument when
// given, otherwise a fuzzy pick over the recorded backups. Returns ""
// with a nil error when the user cancels the picker.
func pickBackupName(w io.Writer, eng *backup.Engine, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if !interactive() {
		return "", errors.NewUserError(errors.ErrMissingName,
			"Pass a backup name, or run on a terminal to pick one")
	}

	entries, err := eng.Entries()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return "", errors.NewUserError(err, "Create one with 'ersm backup'")
		}
		return "", err
	}

	idx, err := prompt.PickBackup(entries)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintln(w, "Cancelled.")
			return "", nil
		}
		return "", err
	}
	return entries[idx].Record.Name, nil
}
