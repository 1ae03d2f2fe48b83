// Package config locates the on-disk configuration tree.
//
// All path construction goes through an explicit Paths value so components
// never consult ambient process state; tests point Paths at a temp dir.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the directory under the user config dir holding the tree.
	DirName = "evmap"

	// LegacyDirName is the pre-1.3.0 directory name. Trees found under it
	// are relocated by the migration engine.
	LegacyDirName = "key-remap"

	// ConfigName is the root config file name. Before 0.4.0 it was
	// written without the .json suffix.
	ConfigName = "config.json"

	// PresetDirName is the subdirectory holding per-group preset dirs.
	PresetDirName = "presets"
)

// Paths resolves every well-known location in the configuration tree.
type Paths struct {
	// Root is the current configuration root, e.g. ~/.config/evmap.
	Root string

	// LegacyRoot is the pre-1.3.0 configuration root, e.g.
	// ~/.config/key-remap. Empty disables relocation.
	LegacyRoot string
}

// DefaultPaths discovers the configuration roots from the user config dir
// (XDG_CONFIG_HOME or the platform equivalent).
func DefaultPaths() (Paths, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, err
	}
	return PathsAt(base), nil
}

// PathsAt builds Paths with both roots under the given base directory.
func PathsAt(base string) Paths {
	return Paths{
		Root:       filepath.Join(base, DirName),
		LegacyRoot: filepath.Join(base, LegacyDirName),
	}
}

// ConfigFile returns the path of the root config file.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.Root, ConfigName)
}

// LegacyConfigFile returns the pre-0.4.0 extensionless config file path.
func (p Paths) LegacyConfigFile() string {
	return filepath.Join(p.Root, "config")
}

// PresetDir returns the directory holding per-group preset directories.
func (p Paths) PresetDir() string {
	return filepath.Join(p.Root, PresetDirName)
}

// GroupDir returns the preset directory for a device group.
func (p Paths) GroupDir(group string) string {
	return filepath.Join(p.PresetDir(), group)
}

// PresetFile returns the path of one preset within a device group.
func (p Paths) PresetFile(group, name string) string {
	return filepath.Join(p.GroupDir(group), name+".json")
}
