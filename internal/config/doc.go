// Package config loads and validates ersm's own configuration file.
//
// The file is optional. With no file present ersm runs on defaults:
// Elden Ring with a discovered save root and backups stored beside the
// saves. Config values narrow or redirect that behavior; the sidecar
// files inside the save root stay authoritative for backup metadata.
//
// # File Format
//
// ersm reads ~/.config/ersm/config.yaml, or $ERSM_CONFIG_DIR/config.yaml
// when the variable is set:
//
//	version: 1
//	game: eldenring
//	save_root: /path/to/EldenRing   # optional, skips discovery
//	backup_dir: /path/to/backups    # optional
//	slot: "76561198012345678"       # optional, pins the save slot
//	log_format: text                # text or json
//	log_file: /path/to/ersm.log     # optional
//
// Any key can be overridden from the environment with an ERSM_ prefix,
// e.g. ERSM_SAVE_ROOT or ERSM_LOG_FORMAT.
//
// # Usage
//
// [Init] wires defaults and the environment into viper; [Load] then
// reads the file and validates the result:
//
//	config.Init()
//	cfg, err := config.Load("")
//
// An empty path means "search the usual location and fall back to
// defaults when nothing is there"; a non-empty path must name an
// existing file. Load only returns configs that passed [Validate], so
// a non-nil *Config is always safe to act on. Validate also works on
// hand-built configs and reports every problem as a [FieldError]
// instead of stopping at the first.
package config
