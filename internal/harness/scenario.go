// Package harness runs migration conformance scenarios.
//
// A scenario is a YAML file describing an initial configuration tree and
// expectations about the tree after a full migration run. The resulting
// tree is snapshotted and compared against a golden file, so any change in
// on-disk output is caught at the byte level.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one migration conformance case.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Tree maps paths relative to the base directory (the parent of the
	// config roots) to initial file contents.
	Tree map[string]string `yaml:"tree"`

	// Exists lists paths that must exist after migration.
	Exists []string `yaml:"exists,omitempty"`

	// Absent lists paths that must not exist after migration.
	Absent []string `yaml:"absent,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario has no name", path)
	}
	return &sc, nil
}

// ScenarioFiles lists the scenario YAML files under dir, sorted by name.
func ScenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
