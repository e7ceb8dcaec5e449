package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/internal/cli/prompt"
	"github.com/thoreinstein/ersm/internal/config"
	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/paths"
	"github.com/thoreinstein/ersm/pkg/fileutil"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Create the ersm config file with default values.

The file lands under the user config directory (or $ERSM_CONFIG_DIR when
set). Defaults manage Elden Ring with discovered paths; edit the file to
pin a game, save root, or backup destination.`,
	Example: `  # Create the config file
  ersm init

  # Recreate it from defaults
  ersm init --force

  See Also: ersm doctor, ersm games`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithWriter(os.Stdout)
}

func runInitWithWriter(w io.Writer) error {
	configPath := initConfigPath()

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(w, "Config already exists at %s\n", configPath)
		fmt.Fprintln(w, "Pass --force to overwrite it")
		return nil
	}

	if !assumeYes && interactive() {
		fmt.Fprintln(w, "This will create:")
		fmt.Fprintf(w, "  %s\n", configPath)
		fmt.Fprintln(w)

		p := prompt.NewPrompterWithIO(os.Stdin, w)
		ok, err := p.Confirm("Proceed?", true)
		if err != nil && !errors.Is(err, prompt.ErrCancelled) {
			return err
		}
		if !ok || err != nil {
			fmt.Fprintln(w, "Aborted")
			return nil
		}
	}

	if err := paths.EnsureDir(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(configPath, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(w, "Created %s\n", configPath)
	return nil
}

// initConfigPath returns where the config file is written, matching
// where loading looks first.
func initConfigPath() string {
	if dir := os.Getenv("ERSM_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return paths.ConfigFile()
}
