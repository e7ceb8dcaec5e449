package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List the recorded backups, most recent first.

Shows each backup's age, size on disk, and description. A backup whose
directory vanished out-of-band is marked missing; 'ersm doctor' can drop
such stale records.`,
	Example: `  # List all backups
  ersm list

  # Machine-readable output for scripts
  ersm list --json

  See Also:
    ersm status  - One-line overview
    ersm restore - Restore from a backup`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// backupJSON is the shape of one entry in 'ersm list --json' output.
type backupJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BackupDate  string `json:"backupdate"`
	CreatedAt   string `json:"created_at,omitempty"`
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	OnDisk      bool   `json:"on_disk"`
}

func runList(_ *cobra.Command, _ []string) error {
	return runListWithWriter(os.Stdout)
}

func runListWithWriter(w io.Writer) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	entries, err := eng.Entries()
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return err
	}

	if listJSON {
		return outputListJSON(w, entries)
	}
	return outputListTabular(w, entries)
}

func outputListJSON(w io.Writer, entries []backup.Entry) error {
	output := make([]backupJSON, len(entries))
	for i, e := range entries {
		output[i] = backupJSON{
			Name:        e.Record.Name,
			Description: e.Record.Description,
			BackupDate:  e.Record.BackupDate,
			CreatedAt:   entryCreatedAt(e),
			Path:        e.Path,
			SizeBytes:   e.Size,
			OnDisk:      e.OnDisk,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputListTabular(w io.Writer, entries []backup.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Create one with: ersm backup")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tAGE\tSIZE\tDESCRIPTION\n")
	for _, e := range entries {
		size := entrySize(e)
		if !e.OnDisk {
			size = color.YellowString(size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			color.GreenString(e.Record.Name),
			entryAge(e),
			size,
			truncate(e.Record.Description, 48))
	}
	return tw.Flush()
}
