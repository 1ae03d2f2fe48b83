package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/evmap/evmap/internal/preset"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// migrateLayout fixes two pre-0.4.0 layout problems: the extensionless
// config file and preset group directories sitting directly under the
// config root.
func (r *Runner) migrateLayout() error {
	if err := r.addConfigSuffix(); err != nil {
		return err
	}
	return r.nestPresetDirs()
}

// addConfigSuffix renames the legacy extensionless config file to
// config.json. When both exist the newer file wins and the legacy one is
// left alone; when neither exists there is nothing to do.
func (r *Runner) addConfigSuffix() error {
	legacy := r.paths.LegacyConfigFile()
	current := r.paths.ConfigFile()
	if !exists(legacy) || exists(current) {
		return nil
	}
	slog.Info("renaming config file", "from", legacy, "to", current)
	return os.Rename(legacy, current)
}

// nestPresetDirs moves legacy per-group preset directories from the config
// root into the presets subdirectory, preserving group names. A root that
// already has a presets directory, or no root at all, needs nothing.
func (r *Runner) nestPresetDirs() error {
	presetDir := r.paths.PresetDir()
	if exists(presetDir) || !exists(r.paths.Root) {
		return nil
	}

	entries, err := os.ReadDir(r.paths.Root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(presetDir, 0o755); err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		from := filepath.Join(r.paths.Root, entry.Name())
		to := filepath.Join(presetDir, entry.Name())
		slog.Info("moving preset group", "from", from, "to", to)
		if err := os.Rename(from, to); err != nil {
			return err
		}
	}
	return nil
}

// migrateMappingKeys normalizes legacy 2-component mapping keys to the
// 3-component form by appending a default value of 1: "1,5" -> "1,5,1".
// Every preset is rewritten; a file that fails to parse is logged and
// skipped so one corrupt preset cannot block the rest.
func (r *Runner) migrateMappingKeys() error {
	presetDir := r.paths.PresetDir()
	if !exists(presetDir) {
		return nil
	}

	paths, err := preset.All(presetDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		p, err := preset.Load(path)
		if err != nil {
			slog.Warn("skipping malformed preset", "path", path, "error", err)
			continue
		}

		if mapping, ok := p.Mapping(); ok {
			for _, key := range mapping.Keys() {
				if strings.Count(key, ",") != 1 {
					continue
				}
				value, _ := mapping.Pop(key)
				mapping.Set(key+",1", value)
			}
		}

		if err := p.Save(); err != nil {
			return fmt.Errorf("rewrite %s: %w", path, err)
		}
	}
	return nil
}

// relocateConfigDir moves the whole tree from the legacy config root to
// the current one. Both "already migrated" and "fresh install" fall out of
// the existence checks as no-ops. A legacy root on a different filesystem
// cannot be renamed across the device boundary and is copied instead.
func (r *Runner) relocateConfigDir() error {
	if r.paths.LegacyRoot == "" {
		return nil
	}
	if exists(r.paths.Root) || !exists(r.paths.LegacyRoot) {
		return nil
	}
	slog.Info("relocating config dir", "from", r.paths.LegacyRoot, "to", r.paths.Root)

	err := os.Rename(r.paths.LegacyRoot, r.paths.Root)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyTree(r.paths.LegacyRoot, r.paths.Root); err != nil {
		return err
	}
	return os.RemoveAll(r.paths.LegacyRoot)
}

// copyTree recursively copies the directory at src to dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}

// migrateTargets converts bare-symbol mapping values to [symbol, target]
// pairs. Values that are already pairs are the idempotence marker and stay
// untouched. Entries whose symbol cannot be understood are logged and left
// as they are; the run continues with the remaining entries.
func (r *Runner) migrateTargets() error {
	r.registry.Prepare()

	presetDir := r.paths.PresetDir()
	if !exists(presetDir) {
		return nil
	}

	paths, err := preset.All(presetDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		p, err := preset.Load(path)
		if err != nil {
			slog.Warn("skipping malformed preset", "path", path, "error", err)
			continue
		}

		mapping, ok := p.Mapping()
		if !ok {
			continue
		}

		for _, key := range mapping.Keys() {
			value, _ := mapping.Get(key)
			symbol, ok := value.(string)
			if !ok {
				continue
			}

			resolved, target, err := r.resolver.Resolve(symbol)
			if err != nil {
				slog.Warn("skipping mapping entry",
					"preset", path, "key", key, "symbol", symbol, "error", err)
				continue
			}

			slog.Info("setting mapping target",
				"preset", path, "key", key, "target", target)
			mapping.Set(key, []any{resolved, target})
		}

		if err := p.Save(); err != nil {
			return fmt.Errorf("rewrite %s: %w", path, err)
		}
	}
	return nil
}
