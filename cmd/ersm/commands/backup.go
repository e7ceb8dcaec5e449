package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a quick backup of the active save",
	Long: `Create a backup of the active save slot under a generated name.

The backup is named backup-<timestamp> and recorded with a placeholder
description. Use 'ersm create' to pick the name and description yourself.`,
	Example: `  # Quick backup before trying something stupid
  ersm backup

  See Also:
    ersm create  - Create a named backup
    ersm list    - List available backups`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func runBackup(_ *cobra.Command, _ []string) error {
	return runBackupWithWriter(os.Stdout)
}

func runBackupWithWriter(w io.Writer) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	entry, err := eng.QuickCreate("")
	if err != nil {
		return err
	}

	printCreated(w, entry)
	return nil
}
