// Package commands implements the CLI commands for ersm.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/cmd"
	"github.com/thoreinstein/ersm/internal/config"
	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/logging"
)

// Persistent flag values.
var (
	gameFlag     string // --game, selects the game profile
	saveRootFlag string // --save-root, pins the save root and skips discovery
	slotFlag     string // --slot, pins the slot to a numeric Steam ID
	assumeYes    bool   // --yes, skips confirmation prompts
	verbosity    int    // -v count
	quiet        bool   // -q
	logFormat    string // --log-format
	logFile      string // --log-file
)

// cfg is the loaded tool configuration. It always holds a usable value:
// defaults stand in when no config file exists or loading failed.
var cfg = config.Default()

// configLoadErr keeps the config load failure for checkConfigLoaded to
// surface; until then commands see default values in cfg.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&gameFlag, "game", "g", "",
		"game profile to operate on (default: config or eldenring)")
	rootCmd.PersistentFlags().StringVar(&saveRootFlag, "save-root", "",
		"save root directory (default: discovered per game)")
	rootCmd.PersistentFlags().StringVar(&slotFlag, "slot", "",
		"numeric Steam ID of the save slot (default: discovered)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"assume yes for confirmation prompts")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"raise log verbosity (repeat for more: -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress all output below error level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default: config or text)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also append logs to this file as JSON")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("ersm version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loaded, err := config.Load("")
	configLoadErr = err
	if loaded != nil {
		cfg = loaded
	} else {
		cfg = config.Default()
	}
}

var rootCmd = &cobra.Command{
	Use:   "ersm",
	Short: "Save backup manager for FromSoftware games",
	Long: `ersm manages backups of a game's save directory.

It finds the active save slot (the numeric Steam ID folder under the
game's save root), copies it into named backups, and restores or deletes
them on request. Each backup carries a name, description, and timestamp
recorded next to the saves, so the backup store survives without any
external database.

Elden Ring is managed by default; other FromSoftware titles that share
the save layout are selected with --game. Run it with no arguments on a
terminal for an interactive menu.`,
	Example: `  # Quick backup of the active save
  ersm backup

  # Named backup before a risky fight
  ersm create before-malenia -d "All flasks, +25 weapon"

  # See what you have
  ersm list

  # Roll back
  ersm restore before-malenia

  See Also: ersm status, ersm doctor, ersm init`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfigLoaded(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout) {
			return runMenu(cmd)
		}
		return cmd.Help()
	},
}

// setupLogging builds the logger the flags describe and installs it as
// both the slog default and the command context logger.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.New("cannot use --quiet and --verbose together")
	}

	handler, err := buildLogHandler(cmd, logLevel())
	if err != nil {
		return err
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// logLevel folds --quiet, the -v count, and the ERSM_DEBUG variable into
// one threshold. Flags win; the variable only raises verbosity when no
// -v was given.
func logLevel() slog.Level {
	if quiet {
		return slog.LevelError
	}
	v := verbosity
	if v == 0 {
		switch os.Getenv("ERSM_DEBUG") {
		case "1", "true":
			v = 2
		case "2":
			v = 3
		}
	}
	return logging.LevelFromVerbosity(v)
}

// buildLogHandler returns a stderr handler in the configured format,
// fanned out to a log file when one is set. The file side is always
// JSON so it stays machine-readable whatever the terminal shows.
func buildLogHandler(cmd *cobra.Command, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}

	format := logFormat
	if format == "" {
		format = cfg.LogFormat
	}
	var terminal slog.Handler
	if logging.Format(format) == logging.FormatJSON {
		terminal = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		terminal = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	path := logFile
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		return terminal, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.NewUserError(err, "failed to open log file")
	}
	return logging.NewMultiHandler(terminal, slog.NewJSONHandler(f, opts)), nil
}

// checkConfigLoaded fails fast on a broken config file, except for the
// commands that must keep working so the user can repair it.
func checkConfigLoaded(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "init", "doctor", "games", "completion":
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// Execute runs the CLI and hands back the error for main to map onto an
// exit code.
func Execute() error {
	return rootCmd.Execute()
}
