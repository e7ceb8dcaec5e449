package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/ersm/internal/config"
)

func setStatusJSON(t *testing.T, v bool) {
	t.Helper()
	old := statusJSONFlag
	statusJSONFlag = v
	t.Cleanup(func() { statusJSONFlag = old })
}

func TestCollectStatus(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")

	report := collectStatus()

	if report.Game.ID != "eldenring" || report.Game.Name != "Elden Ring" {
		t.Errorf("Game = %+v, want the default profile", report.Game)
	}
	if report.SaveRoot != root {
		t.Errorf("SaveRoot = %q, want %q", report.SaveRoot, root)
	}
	if report.Slot != testSlotID {
		t.Errorf("Slot = %q, want %q", report.Slot, testSlotID)
	}
	if report.Backups.Count != 1 || report.Backups.TotalSizeBytes <= 0 {
		t.Errorf("Backups = %+v, want one backup with size", report.Backups)
	}
	if report.Backups.Latest == nil || report.Backups.Latest.Name != "boss" {
		t.Errorf("Latest = %+v, want the seeded backup", report.Backups.Latest)
	}
	if report.Errors != (statusErrors{}) {
		t.Errorf("Errors = %+v, want none", report.Errors)
	}
}

func TestCollectStatus_UnresolvedSaveRoot(t *testing.T) {
	c := config.Default()
	c.SaveRoot = ""
	withTestConfig(t, c)
	// Keep discovery off the real machine.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	report := collectStatus()

	if report.Errors.SaveRoot == "" {
		t.Error("Errors.SaveRoot should be set when discovery fails")
	}
	if report.SaveRoot != "" {
		t.Errorf("SaveRoot = %q, want empty on failure", report.SaveRoot)
	}
	if report.Backups.Count != 0 {
		t.Errorf("Backups.Count = %d, want 0", report.Backups.Count)
	}
}

func TestCollectStatus_UnknownGame(t *testing.T) {
	withTestConfig(t, &config.Config{Game: "bloodborne"})

	report := collectStatus()
	if report.Errors.Game == "" {
		t.Error("Errors.Game should be set for an unknown profile")
	}
	if report.Game.ID != "bloodborne" {
		t.Errorf("Game.ID = %q, want the requested id", report.Game.ID)
	}
}

func TestRunStatus_Text(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	setStatusJSON(t, false)

	var buf bytes.Buffer
	if err := runStatusWithWriter(&buf); err != nil {
		t.Fatalf("runStatusWithWriter() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"ersm version",
		"Game:",
		"Elden Ring (eldenring)",
		"Save root:",
		root,
		"Slot:",
		testSlotID,
		"Backup dir:",
		"Backups:",
		"Latest:",
		"boss",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunStatus_JSON(t *testing.T) {
	root := withSaveRoot(t)
	seedBackups(t, root, "boss")
	setStatusJSON(t, true)

	var buf bytes.Buffer
	if err := runStatusWithWriter(&buf); err != nil {
		t.Fatalf("runStatusWithWriter() error = %v", err)
	}

	var report statusReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if report.SaveRoot != root || report.Backups.Count != 1 {
		t.Errorf("report = %+v, want resolved root and one backup", report)
	}
}

func TestStatusBackupDir_Precedence(t *testing.T) {
	root := withSaveRoot(t)

	// No sidecar yet: the default location.
	if got := statusBackupDir(root); got != filepath.Join(root, "Backup") {
		t.Errorf("statusBackupDir() = %q, want the default", got)
	}

	// Config override wins without touching the sidecar.
	cfg.BackupDir = "/elsewhere"
	if got := statusBackupDir(root); got != "/elsewhere" {
		t.Errorf("statusBackupDir() = %q, want the config override", got)
	}
	cfg.BackupDir = ""

	// A sidecar value beats the default.
	seedBackups(t, root, "boss")
	if got := statusBackupDir(root); got != filepath.Join(root, "Backup") {
		t.Errorf("statusBackupDir() = %q, want the sidecar value", got)
	}
}
