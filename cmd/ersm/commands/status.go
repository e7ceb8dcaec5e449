package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/cmd"
	"github.com/thoreinstein/ersm/internal/backup"
	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/save"
	"github.com/thoreinstein/ersm/internal/store"
)

var statusJSONFlag bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONFlag, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved game, paths, and backup overview",
	Long: `Show what ersm would operate on right now.

Displays the selected game profile, the resolved save root and slot, the
backup destination, and a summary of the recorded backups. Resolution
problems are shown inline instead of aborting, so status works on a
half-configured setup.`,
	Example: `  # Overview
  ersm status

  # JSON output for scripting
  ersm status --json

  See Also: ersm doctor, ersm list`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// statusReport is the collected state, shared by text and JSON output.
type statusReport struct {
	Version   string        `json:"version"`
	Game      statusGame    `json:"game"`
	SaveRoot  string        `json:"save_root,omitempty"`
	Slot      string        `json:"slot,omitempty"`
	BackupDir string        `json:"backup_dir,omitempty"`
	Backups   statusBackups `json:"backups"`
	Errors    statusErrors  `json:"errors"`
}

type statusGame struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type statusBackups struct {
	Count          int           `json:"count"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
	Latest         *statusLatest `json:"latest,omitempty"`
}

type statusLatest struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	Age       string `json:"age,omitempty"`
}

// statusErrors carries the per-section resolution failures.
type statusErrors struct {
	Game     string `json:"game,omitempty"`
	SaveRoot string `json:"save_root,omitempty"`
	Slot     string `json:"slot,omitempty"`
	Backups  string `json:"backups,omitempty"`
}

func runStatus(_ *cobra.Command, _ []string) error {
	return runStatusWithWriter(os.Stdout)
}

func runStatusWithWriter(w io.Writer) error {
	report := collectStatus()

	if statusJSONFlag {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return outputStatusText(w, report)
}

// collectStatus resolves as much as it can, recording failures instead
// of stopping at the first one.
func collectStatus() statusReport {
	report := statusReport{
		Version: cmd.Version,
		Game:    statusGame{ID: activeGameID()},
	}

	profile, err := resolveProfile()
	if err != nil {
		report.Errors.Game = err.Error()
		return report
	}
	report.Game.Name = profile.Name

	root, err := resolveSaveRoot(profile)
	if err != nil {
		report.Errors.SaveRoot = err.Error()
		return report
	}
	report.SaveRoot = root

	if slot, err := save.Resolve(root, activeSlot()); err != nil {
		report.Errors.Slot = err.Error()
	} else {
		report.Slot = slot.ID
	}

	report.BackupDir = statusBackupDir(root)

	eng, err := newEngine()
	if err != nil {
		report.Errors.Backups = err.Error()
		return report
	}
	entries, err := eng.Entries()
	if err != nil {
		if !errors.Is(err, backup.ErrNoBackupsFound) {
			report.Errors.Backups = err.Error()
		}
		return report
	}

	report.Backups.Count = len(entries)
	for _, e := range entries {
		report.Backups.TotalSizeBytes += e.Size
	}
	latest := entries[0]
	report.Backups.Latest = &statusLatest{
		Name:      latest.Record.Name,
		CreatedAt: entryCreatedAt(latest),
	}
	if t := latest.Record.Time(); !t.IsZero() {
		report.Backups.Latest.Age = humanize.Time(t)
	}
	return report
}

// statusBackupDir returns the backup destination without creating the
// sidecar: the config override, then the sidecar value, then the default.
func statusBackupDir(root string) string {
	if cfg.BackupDir != "" {
		return cfg.BackupDir
	}
	settings, err := store.NewSettingsStore(root).Peek()
	if err == nil && settings.BackupLocation != "" {
		return settings.BackupLocation
	}
	return filepath.Join(root, store.BackupDirName)
}

func outputStatusText(w io.Writer, report statusReport) error {
	fmt.Fprintf(w, "ersm version %s\n\n", report.Version)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	warn := color.New(color.FgYellow).SprintfFunc()

	game := report.Game.ID
	if report.Game.Name != "" {
		game = fmt.Sprintf("%s (%s)", report.Game.Name, report.Game.ID)
	}
	if report.Errors.Game != "" {
		game = warn("%s", report.Errors.Game)
	}
	fmt.Fprintf(tw, "Game:\t%s\n", game)

	saveRoot := report.SaveRoot
	if report.Errors.SaveRoot != "" {
		saveRoot = warn("%s", report.Errors.SaveRoot)
	}
	fmt.Fprintf(tw, "Save root:\t%s\n", saveRoot)

	slot := report.Slot
	if report.Errors.Slot != "" {
		slot = warn("%s", report.Errors.Slot)
	}
	if slot != "" {
		fmt.Fprintf(tw, "Slot:\t%s\n", slot)
	}

	if report.BackupDir != "" {
		fmt.Fprintf(tw, "Backup dir:\t%s\n", report.BackupDir)
	}

	switch {
	case report.Errors.Backups != "":
		fmt.Fprintf(tw, "Backups:\t%s\n", warn("%s", report.Errors.Backups))
	case report.Backups.Count == 0:
		fmt.Fprintf(tw, "Backups:\tnone\n")
	default:
		fmt.Fprintf(tw, "Backups:\t%d (%s)\n", report.Backups.Count,
			humanize.IBytes(uint64(report.Backups.TotalSizeBytes)))
		latest := report.Backups.Latest.Name
		if report.Backups.Latest.Age != "" {
			latest = fmt.Sprintf("%s (%s)", latest, report.Backups.Latest.Age)
		}
		fmt.Fprintf(tw, "Latest:\t%s\n", latest)
	}

	return tw.Flush()
}
