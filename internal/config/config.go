package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/ersm/internal/game"
	"github.com/thoreinstein/ersm/internal/paths"
)

// Config is the top-level configuration. Every field is an override: an
// empty value means "discover" or "use the sidecar".
type Config struct {
	Version   int    `mapstructure:"version" yaml:"version"`
	Game      string `mapstructure:"game" yaml:"game"`
	SaveRoot  string `mapstructure:"save_root" yaml:"save_root,omitempty"`
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir,omitempty"`
	Slot      string `mapstructure:"slot" yaml:"slot,omitempty"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	LogFile   string `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:   1,
		Game:      game.DefaultGame,
		LogFormat: "text",
	}
}

// Init resets Viper and installs the search paths, environment binding,
// and defaults. Call it once at startup, before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// ERSM_CONFIG_DIR pins the config location for tests and scripts.
	// Otherwise the working directory is tried before the XDG dir.
	viper.AddConfigPath(".")
	if dir := os.Getenv("ERSM_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	viper.SetEnvPrefix("ERSM")
	viper.AutomaticEnv()

	// Every key needs a default or AutomaticEnv overrides never reach
	// Unmarshal.
	viper.SetDefault("version", 1)
	viper.SetDefault("game", game.DefaultGame)
	viper.SetDefault("save_root", "")
	viper.SetDefault("backup_dir", "")
	viper.SetDefault("slot", "")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("log_file", "")
}

// Load reads and validates the configuration. With a non-empty path only
// that file is considered and it must be readable. With an empty path
// the Init search paths are tried, and finding nothing is not an error:
// defaults apply.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("validating config: %w", errs[0])
	}

	return &cfg, nil
}

// FileUsed returns the path of the config file the last Load read, or ""
// when defaults are in effect.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
