// Package preset loads and saves the per-device-group preset files that
// hold input mappings.
//
// A preset is one JSON file under presets/<group>/<name>.json with a
// "mapping" object from input-event identity keys ("type,code,value") to
// either a bare symbol string (legacy) or a [symbol, target] pair. Key
// order in the file is user-visible, so presets ride on jsondoc.Object.
package preset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evmap/evmap/internal/jsondoc"
)

// MappingKey is the field holding the mapping table.
const MappingKey = "mapping"

// Preset is one loaded preset file.
type Preset struct {
	// Path is the file the preset was loaded from and saves back to.
	Path string

	doc *jsondoc.Object
}

// Load reads the preset at path. Malformed JSON is an error; callers are
// expected to log it and skip the file rather than abort.
func Load(path string) (*Preset, error) {
	doc, err := jsondoc.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &Preset{Path: path, doc: doc}, nil
}

// Save rewrites the preset file pretty-printed with a trailing newline.
func (p *Preset) Save() error {
	return p.doc.WriteFile(p.Path)
}

// Doc returns the underlying document, including fields beyond the mapping.
func (p *Preset) Doc() *jsondoc.Object {
	return p.doc
}

// Mapping returns the ordered mapping table, or false when the preset has
// no mapping field or it is not an object.
func (p *Preset) Mapping() (*jsondoc.Object, bool) {
	return p.doc.GetObject(MappingKey)
}

// All enumerates every preset file across all group directories under
// presetDir, sorted by path for deterministic processing order. A missing
// preset directory yields no presets and no error.
func All(presetDir string) ([]string, error) {
	groups, err := os.ReadDir(presetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var presets []string
	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		groupDir := filepath.Join(presetDir, group.Name())
		entries, err := os.ReadDir(groupDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			presets = append(presets, filepath.Join(groupDir, entry.Name()))
		}
	}
	sort.Strings(presets)
	return presets, nil
}
