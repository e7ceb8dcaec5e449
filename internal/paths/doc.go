// Package paths answers where ersm keeps its own files. Game save
// directories are the game package's business; this package covers the
// tool's config file and game profile overrides, placed under the XDG
// config home via github.com/adrg/xdg:
//
//	paths.ConfigFile() // <XDG config home>/ersm/config.yaml
//	paths.GamesFile()  // <XDG config home>/ersm/games.toml
//
// All accessors return best-effort paths and never fail.
package paths
