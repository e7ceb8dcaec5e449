package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a backup",
	Long: `Delete the named backup's directory and its record.

Without a name, an interactive session opens a fuzzy picker over the
recorded backups; non-interactive use requires the name. A record whose
directory already vanished out-of-band is cleaned up and reported.`,
	Example: `  # Delete a named backup
  ersm delete before-malenia

  # Pick one interactively
  ersm delete

  # Scripted delete, no confirmation prompt
  ersm delete before-malenia --yes

  See Also:
    ersm list - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func runDelete(_ *cobra.Command, args []string) error {
	return runDeleteWithWriter(os.Stdout, args)
}

func runDeleteWithWriter(w io.Writer, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	name, err := pickBackupName(w, eng, args)
	if err != nil || name == "" {
		return err
	}

	ok, err := confirmDestructive(w, fmt.Sprintf("Delete backup %q?", name))
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
