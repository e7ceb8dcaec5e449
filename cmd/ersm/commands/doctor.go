package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/internal/config"
	"github.com/thoreinstein/ersm/internal/doctor"
	"github.com/thoreinstein/ersm/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"emit the full report as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"print nothing, report through the exit code")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"list every check, not just problems")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"apply automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose save and backup issues",
	Long: `Run diagnostic checks on the configuration, save directory,
and backup store.

Validates the config file, checks save root and slot resolution, parses
the sidecar files, probes the backup destination for writability, and
compares the recorded backups against the directories on disk.

By default only errors and warnings are printed. --verbose lists every
check, --quiet prints nothing and leaves just the exit code, and --json
emits the full report for scripts; the three cannot be combined.

The exit code is 0 when everything passed, 1 with warnings only, and 2
when any check found an error.`,
	Example: `  # Diagnose the current setup
  ersm doctor

  # Drop records whose backup directory is gone
  ersm doctor --fix

  See Also: ersm status, ersm init`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags rejects combinations of the output-mode flags.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	modes := 0
	for _, on := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}
	return nil
}

func runDoctor(_ *cobra.Command, _ []string) error {
	return runDoctorWithWriter(os.Stdout)
}

func runDoctorWithWriter(w io.Writer) error {
	checks := buildDoctorChecks()
	report := runChecks(checks)

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if doctorFix {
		if fixed := applyDoctorFixes(w, checks); fixed {
			// Fixes change the picture; report the state they left behind.
			report = runChecks(buildDoctorChecks())
			if !doctorQuiet && !doctorJSON {
				fmt.Fprintf(w, "\nAfter fixes: %d passed, %d info, %d warnings, %d errors\n",
					report.Summary.Passed, report.Summary.Info,
					report.Summary.Warnings, report.Summary.Errors)
			}
		}
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// buildDoctorChecks assembles the check list for the current flags and
// config. When the save root cannot be resolved only the checks that can
// still say something useful are included.
func buildDoctorChecks() []doctor.Check {
	checks := []doctor.Check{
		doctor.NewConfigCheck(config.FileUsed(), configLoadErr),
	}

	var root string
	if profile, err := resolveProfile(); err == nil {
		if r, err := resolveSaveRoot(profile); err == nil {
			root = r
		}
	}

	checks = append(checks, doctor.NewSaveRootCheck(root))
	if root != "" {
		checks = append(checks,
			doctor.NewSlotCheck(root, activeSlot()),
			doctor.NewSettingsCheck(root),
			doctor.NewNotesCheck(root),
			doctor.NewDriftCheck(root),
		)
	}
	return checks
}

func runChecks(checks []doctor.Check) *doctor.Report {
	return doctor.NewRunner(checks...).Run()
}

// applyDoctorFixes runs every fixable check's remediation and reports
// what happened. Returns true when at least one fix was attempted.
func applyDoctorFixes(w io.Writer, checks []doctor.Check) bool {
	attempted := false
	for _, c := range checks {
		fixer, ok := c.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		if !attempted && !doctorQuiet && !doctorJSON {
			fmt.Fprintln(w)
		}
		attempted = true
		for _, res := range fixer.Fix() {
			if doctorQuiet || doctorJSON {
				continue
			}
			if res.Fixed {
				fmt.Fprintf(w, "%s %s: %s\n", color.GreenString("fixed"), res.Path, res.Description)
			} else {
				fmt.Fprintf(w, "%s %s: %s (%v)\n", color.RedString("failed"), res.Path, res.Description, res.Error)
			}
		}
	}
	return attempted
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	shown := 0
	for _, res := range report.Results {
		problem := res.Status == doctor.SeverityError || res.Status == doctor.SeverityWarning
		if !problem && !doctorVerbose {
			continue
		}
		shown++
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(res.Status), res.Category, res.Name, res.Message)
		if problem && res.FixHint != "" {
			fmt.Fprintf(w, "  hint: %s\n", res.FixHint)
		}
	}

	if shown > 0 || doctorVerbose {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// Doctor's exit status rides on these sentinels, mapped by main onto
// exit codes 1 and 2.
var (
	errDoctorWarnings = errors.New("warnings found")
	errDoctorErrors   = errors.New("errors found")
)
