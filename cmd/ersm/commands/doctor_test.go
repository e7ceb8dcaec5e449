package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/ersm/internal/config"
	"github.com/thoreinstein/ersm/internal/doctor"
	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/store"
)

func setDoctorFlags(t *testing.T, jsonOut, quiet, verbose, fix bool) {
	t.Helper()
	oldJSON, oldQuiet, oldVerbose, oldFix := doctorJSON, doctorQuiet, doctorVerbose, doctorFix
	doctorJSON, doctorQuiet, doctorVerbose, doctorFix = jsonOut, quiet, verbose, fix
	t.Cleanup(func() {
		doctorJSON, doctorQuiet, doctorVerbose, doctorFix = oldJSON, oldQuiet, oldVerbose, oldFix
	})
}

func TestValidateDoctorFlags(t *testing.T) {
	setDoctorFlags(t, true, true, false, false)
	err := validateDoctorFlags(nil, nil)
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutual-exclusion failure", err)
	}

	doctorQuiet = false
	if err := validateDoctorFlags(nil, nil); err != nil {
		t.Errorf("single output flag should be accepted, got %v", err)
	}
}

func TestRunDoctor_Healthy(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	setDoctorFlags(t, false, false, false, false)

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf); err != nil {
		t.Fatalf("runDoctorWithWriter() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "0 warnings, 0 errors") {
		t.Errorf("output = %q, want a clean summary", output)
	}
}

func TestRunDoctor_DriftWarns(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	if err := os.RemoveAll(filepath.Join(root, store.BackupDirName, "boss")); err != nil {
		t.Fatal(err)
	}
	setDoctorFlags(t, false, false, false, false)

	var buf bytes.Buffer
	err := runDoctorWithWriter(&buf)
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
		t.Fatalf("error = %v, want exit code %d for warnings", err, errors.ExitUser)
	}

	output := buf.String()
	if !strings.Contains(output, "backup-drift") {
		t.Errorf("output = %q, want the drift check reported", output)
	}
	if !strings.Contains(output, "hint:") {
		t.Errorf("output = %q, want a fix hint", output)
	}
}

func TestRunDoctor_FixDropsStaleRecords(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss", "keeper")
	if err := os.RemoveAll(filepath.Join(root, store.BackupDirName, "boss")); err != nil {
		t.Fatal(err)
	}
	setDoctorFlags(t, false, false, false, true)

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf); err != nil {
		t.Fatalf("runDoctorWithWriter() with --fix error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "fixed") {
		t.Errorf("output = %q, want a fix reported", output)
	}
	if !strings.Contains(output, "After fixes:") {
		t.Errorf("output = %q, want the post-fix summary", output)
	}

	notes, err := store.NewNotesStore(root).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes.Notes) != 1 || notes.Notes[0].Name != "keeper" {
		t.Errorf("notes = %+v, want only the surviving record", notes.Notes)
	}
}

func TestRunDoctor_Quiet(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	if err := os.RemoveAll(filepath.Join(root, store.BackupDirName, "boss")); err != nil {
		t.Fatal(err)
	}
	setDoctorFlags(t, false, true, false, false)

	var buf bytes.Buffer
	err := runDoctorWithWriter(&buf)
	if err == nil {
		t.Fatal("drift should still fail the run in quiet mode")
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want none in quiet mode", buf.String())
	}
}

func TestRunDoctor_Verbose(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	setDoctorFlags(t, false, false, true, false)

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf); err != nil {
		t.Fatalf("runDoctorWithWriter() error = %v", err)
	}

	output := buf.String()
	for _, name := range []string{"config", "save-root", "save-slot", "settings-sidecar", "notes-sidecar", "backup-drift"} {
		if !strings.Contains(output, name) {
			t.Errorf("verbose output missing check %q:\n%s", name, output)
		}
	}
}

func TestRunDoctor_JSON(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	setDoctorFlags(t, true, false, false, false)

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf); err != nil {
		t.Fatalf("runDoctorWithWriter() error = %v", err)
	}

	var report doctor.Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if len(report.Results) != 6 {
		t.Errorf("got %d results, want 6 checks", len(report.Results))
	}
	if report.Summary.Errors != 0 {
		t.Errorf("Summary.Errors = %d, want 0", report.Summary.Errors)
	}
}

func TestBuildDoctorChecks_NoSaveRoot(t *testing.T) {
	withTestConfig(t, config.Default())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	checks := buildDoctorChecks()
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want only config and save-root without a root", len(checks))
	}
}
