package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/ersm/cmd"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)

	output := buf.String()
	if !strings.Contains(output, "ersm version "+cmd.Version) {
		t.Errorf("output = %q, want the version line", output)
	}
	if !strings.Contains(output, "commit: "+cmd.Commit) {
		t.Errorf("output = %q, want the commit line", output)
	}
	if !strings.Contains(output, "built:  "+cmd.Date) {
		t.Errorf("output = %q, want the build date line", output)
	}
}

func TestVersionCommand_Registered(t *testing.T) {
	c, _, err := rootCmd.Find([]string{"version"})
	if err != nil || c.Name() != "version" {
		t.Fatalf("Find(version) = %v, %v", c, err)
	}
}
