// Package manifest reads package manifests (Cargo.toml style) to learn the
// identity a publish will ship under.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is the subset of a package manifest this tool cares about.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest load failed (%s): %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest parse failed (%s): %w", path, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("manifest missing package.name (%s)", path)
	}
	if m.Package.Version == "" {
		return nil, fmt.Errorf("manifest missing package.version (%s)", path)
	}
	return &m, nil
}

// ID returns the human-readable publish identity, e.g. "wasm-opt v0.2.0".
func (m *Manifest) ID() string {
	return fmt.Sprintf("%s v%s", m.Package.Name, m.Package.Version)
}
