package game

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/internal/paths"
)

// ErrSaveRootNotFound indicates no save root exists at any candidate location.
var ErrSaveRootNotFound = errors.New("save root not found")

// SaveRootCandidates returns the locations where the game's save root may
// live, in preference order. An explicit SaveRoot yields exactly that path.
//
// On Windows the save root is <APPDATA>\<SaveDir>. Elsewhere the game is
// assumed to run under Proton, and candidates cover the common Steam
// library locations including the Flatpak install.
func (p Profile) SaveRootCandidates() []string {
	if p.SaveRoot != "" {
		return []string{p.SaveRoot}
	}
	if p.SaveDir == "" {
		return nil
	}

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return nil
		}
		return []string{filepath.Join(appData, p.SaveDir)}
	}

	return p.protonCandidates(paths.Home())
}

// protonCandidates returns the save root paths inside the Proton prefix
// for each known Steam library location.
func (p Profile) protonCandidates(home string) []string {
	if home == "" || p.SteamAppID == "" {
		return nil
	}

	libraries := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
	}

	candidates := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		candidates = append(candidates, filepath.Join(lib,
			"steamapps", "compatdata", p.SteamAppID,
			"pfx", "drive_c", "users", "steamuser", "AppData", "Roaming", p.SaveDir))
	}
	return candidates
}

// ResolveSaveRoot returns the first candidate location that exists as a
// directory. Returns ErrSaveRootNotFound when none do.
func (p Profile) ResolveSaveRoot() (string, error) {
	candidates := p.SaveRootCandidates()
	if len(candidates) == 0 {
		return "", errors.Wrapf(ErrSaveRootNotFound, "no candidate locations for %s", p.Name)
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && info.IsDir() {
			return c, nil
		}
	}

	return "", errors.Wrapf(ErrSaveRootNotFound, "%s (checked %s)", p.Name, strings.Join(candidates, ", "))
}
