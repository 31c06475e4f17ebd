// Package catalog parses dataset manifests: YAML files naming datasets
// together with the archives to fetch and the directory patterns that
// locate their class folders. The built-in image-classification catalog
// and any user-supplied manifest share this format.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry describes one named dataset.
type Entry struct {
	// Name is the registry name, e.g. "ibeans".
	Name string `yaml:"name"`
	// URLs are the archives (or local paths) holding the data.
	URLs []string `yaml:"urls"`
	// Roots are glob patterns selecting the directories whose children
	// are class folders, relative to the extracted data. Defaults to
	// ".": class folders sit at the top level.
	Roots []string `yaml:"roots,omitempty"`
}

// Manifest is a parsed catalog file.
type Manifest struct {
	Datasets []Entry `yaml:"datasets"`
}

// Parse reads a manifest from YAML bytes and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("catalog: parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: invalid manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %q: %w", path, err)
	}
	return Parse(data)
}

// Validate checks that every entry is usable and names are unique.
func (m *Manifest) Validate() error {
	if len(m.Datasets) == 0 {
		return fmt.Errorf("no datasets defined")
	}
	seen := make(map[string]bool, len(m.Datasets))
	for i, e := range m.Datasets {
		if e.Name == "" {
			return fmt.Errorf("dataset %d: name is required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate dataset name %q", e.Name)
		}
		seen[e.Name] = true
		if len(e.URLs) == 0 {
			return fmt.Errorf("dataset %q: at least one url is required", e.Name)
		}
	}
	return nil
}
