package game

import (
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/ersm/internal/errors"
	"github.com/thoreinstein/ersm/pkg/fileutil"
)

// DefaultGame is the profile used when no --game flag or config value is set.
const DefaultGame = "eldenring"

// Sentinel errors for profile lookup and loading.
var (
	// ErrUnknownGame indicates the requested game profile does not exist.
	ErrUnknownGame = errors.New("unknown game")

	// ErrInvalidProfile indicates a user-defined profile is missing required fields.
	ErrInvalidProfile = errors.New("invalid game profile")
)

// Profile describes where one game keeps its save files.
//
// All FromSoftware titles share the same layout: a vendor directory under
// the Windows roaming AppData directory, containing one subdirectory per
// Steam account named after the numeric Steam ID.
type Profile struct {
	// ID is the short identifier used on the command line, e.g. "eldenring".
	ID string `toml:"-"`

	// Name is the human-readable game title.
	Name string `toml:"name"`

	// SaveDir is the vendor directory name under roaming AppData.
	SaveDir string `toml:"save_dir"`

	// SteamAppID locates the Proton prefix on Linux.
	SteamAppID string `toml:"steam_app_id"`

	// SaveRoot pins the save root to an explicit path, skipping discovery.
	SaveRoot string `toml:"save_root,omitempty"`
}

// builtins returns the game profiles that ship with ersm.
func builtins() map[string]Profile {
	return map[string]Profile{
		"eldenring":    {ID: "eldenring", Name: "Elden Ring", SaveDir: "EldenRing", SteamAppID: "1245620"},
		"nightreign":   {ID: "nightreign", Name: "Elden Ring Nightreign", SaveDir: "Nightreign", SteamAppID: "2622380"},
		"darksouls3":   {ID: "darksouls3", Name: "Dark Souls III", SaveDir: "DarkSoulsIII", SteamAppID: "374320"},
		"sekiro":       {ID: "sekiro", Name: "Sekiro: Shadows Die Twice", SaveDir: "Sekiro", SteamAppID: "814380"},
		"armoredcore6": {ID: "armoredcore6", Name: "Armored Core VI", SaveDir: "ArmoredCore6", SteamAppID: "1888160"},
	}
}

// Registry holds the known game profiles: the builtin set plus any
// user-defined profiles and overrides from games.toml.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry containing only the builtin profiles.
func NewRegistry() *Registry {
	return &Registry{profiles: builtins()}
}

// gamesFile is the on-disk layout of games.toml.
type gamesFile struct {
	Games map[string]Profile `toml:"games"`
}

// LoadRegistry returns the builtin profiles merged with user profiles
// from the TOML file at path. A missing file yields the builtin set.
//
// For a builtin ID, non-empty fields in the file override the builtin
// values. New IDs define complete profiles and must set at least
// save_dir or save_root.
func LoadRegistry(path string) (*Registry, error) {
	r := NewRegistry()

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, errors.Wrap(err, "reading games file")
	}

	var file gamesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "parsing games file")
	}

	for id, override := range file.Games {
		merged, err := r.merge(id, override)
		if err != nil {
			return nil, err
		}
		r.profiles[id] = merged
	}

	return r, nil
}

// merge applies an override onto the builtin profile with the same ID,
// or validates it as a standalone profile for new IDs.
func (r *Registry) merge(id string, override Profile) (Profile, error) {
	base, known := r.profiles[id]
	if !known {
		if override.SaveDir == "" && override.SaveRoot == "" {
			return Profile{}, errors.Wrapf(ErrInvalidProfile, "%q must set save_dir or save_root", id)
		}
		base = Profile{Name: id}
	}

	base.ID = id
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.SaveDir != "" {
		base.SaveDir = override.SaveDir
	}
	if override.SteamAppID != "" {
		base.SteamAppID = override.SteamAppID
	}
	if override.SaveRoot != "" {
		base.SaveRoot = override.SaveRoot
	}
	return base, nil
}

// Get returns the profile with the given ID.
// Returns ErrUnknownGame for unrecognized IDs.
func (r *Registry) Get(id string) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, errors.Wrapf(ErrUnknownGame, "%q (known: %s)", id, strings.Join(r.IDs(), ", "))
	}
	return p, nil
}

// IDs returns all known profile IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Profiles returns all known profiles sorted by ID.
func (r *Registry) Profiles() []Profile {
	profiles := make([]Profile, 0, len(r.profiles))
	for _, id := range r.IDs() {
		profiles = append(profiles, r.profiles[id])
	}
	return profiles
}
