// Package game defines the profiles that tell ersm where each supported
// game keeps its save files.
//
// A profile names the vendor directory under the Windows roaming AppData
// directory (EldenRing, DarkSoulsIII, ...) and the Steam app ID used to
// locate the Proton prefix on Linux. The builtin set covers the
// FromSoftware titles that share this layout; users can override paths or
// add their own profiles in games.toml:
//
//	[games.eldenring]
//	save_root = '/mnt/saves/EldenRing'
//
//	[games.seamless]
//	name = "Elden Ring (Seamless Co-op)"
//	save_dir = "EldenRing"
//	steam_app_id = "1245620"
//
// Profile resolution stops at the save root. Finding the numeric Steam ID
// directory inside it is the save package's job.
package game
