package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/cli/prompt"
	"github.com/thoreinstein/ersm/internal/errors"
)

var createDescription string

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "",
		"description recorded with the backup")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a named backup of the active save",
	Long: `Create a backup of the active save slot under the given name.

Without a name, an interactive session prompts for one and a
non-interactive one falls back to a generated timestamp name. An empty
description is recorded as a placeholder.`,
	Example: `  # Named backup with a description
  ersm create before-malenia -d "All flasks, +25 weapon"

  # Prompt for the name
  ersm create

  See Also:
    ersm backup  - Quick backup with a generated name
    ersm restore - Restore a backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(_ *cobra.Command, args []string) error {
	return runCreateWithWriter(os.Stdout, args)
}

func runCreateWithWriter(w io.Writer, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	} else if interactive() {
		p := prompt.NewPrompterWithIO(os.Stdin, w)
		name, err = p.Input("Backup name (empty for a generated name)", "")
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				fmt.Fprintln(w, "Cancelled.")
				return nil
			}
			return err
		}
	}

	var entry *backup.Entry
	if name == "" {
		entry, err = eng.QuickCreate(createDescription)
	} else {
		entry, err = eng.Create(name, createDescription)
	}
	if err != nil {
		return err
	}

	printCreated(w, entry)
	return nil
}
