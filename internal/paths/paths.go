package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDir is the directory name ersm claims under the XDG config home.
const appDir = "ersm"

// DefaultDirPerm keeps created directories private to the user.
const DefaultDirPerm = 0o700

// EnsureDir is MkdirAll with DefaultDirPerm standing in for a zero perm.
// An existing directory is left as it is.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be
// determined. Save root discovery treats an empty home as having no
// candidate locations rather than failing outright.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// ConfigDir is where ersm keeps its own files: <XDG config home>/ersm.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDir)
}

// ConfigFile returns the main config file path, <ConfigDir>/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// GamesFile returns the game profile overrides path, <ConfigDir>/games.toml.
func GamesFile() string {
	return filepath.Join(ConfigDir(), "games.toml")
}
