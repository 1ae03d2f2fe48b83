package migrate

import (
	"log/slog"
	"os"

	"github.com/evmap/evmap/internal/config"
	"github.com/evmap/evmap/internal/jsondoc"
)

// versionField is the config.json field holding the schema version.
const versionField = "version"

// VersionStore reads and writes the stored schema version in config.json.
type VersionStore struct {
	paths config.Paths
}

// NewVersionStore creates a store over the given paths.
func NewVersionStore(paths config.Paths) *VersionStore {
	return &VersionStore{paths: paths}
}

// Read returns the stored schema version. It never fails: a missing file,
// a missing version field, or an unreadable document all degrade to 0.0.0,
// which makes every migration run. On a fresh or foreign installation that
// is exactly the safe choice.
func (s *VersionStore) Read() Version {
	path := s.paths.ConfigFile()
	doc, err := jsondoc.ParseFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read config version", "path", path, "error", err)
		}
		return Version{}
	}

	raw, ok := doc.GetString(versionField)
	if !ok {
		return Version{}
	}
	v, err := ParseVersion(raw)
	if err != nil {
		slog.Warn("unparsable version in config", "path", path, "version", raw)
		return Version{}
	}
	return v
}

// Write stamps v into config.json, preserving every other field, and
// rewrites the file pretty-printed with a trailing newline. A store with
// no config file has nothing to stamp; that case is a silent no-op.
func (s *VersionStore) Write(v Version) error {
	path := s.paths.ConfigFile()
	doc, err := jsondoc.ParseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	slog.Info("updating version in config", "path", path, "version", v)
	doc.Set(versionField, v.String())
	return doc.WriteFile(path)
}
