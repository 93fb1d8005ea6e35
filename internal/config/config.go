// Package config loads the release plan file.
package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"shipwright/internal/plan"
	"shipwright/internal/toolchain"
)

// Config is the static description of one release: the toolchain
// requirement, the vendored source tree, and the dependency-ordered package
// list.
type Config struct {
	Toolchain ToolchainConfig `yaml:"toolchain" validate:"required"`
	Source    SourceConfig    `yaml:"source" validate:"required"`
	Packages  []PackageConfig `yaml:"packages" validate:"required,min=1,dive"`
}

type ToolchainConfig struct {
	// Tool is the registry toolchain executable. Defaults to cargo.
	Tool string `yaml:"tool"`

	// Minimum is the lowest toolchain version the release may run with.
	Minimum string `yaml:"minimum" validate:"required"`
}

type SourceConfig struct {
	// Root is the vendored source tree staged into consuming packages.
	Root string `yaml:"root" validate:"required"`
}

type PackageConfig struct {
	Name      string   `yaml:"name" validate:"required"`
	Manifest  string   `yaml:"manifest" validate:"required"`
	Stage     []string `yaml:"stage"`
	Exclude   []string `yaml:"exclude"`
	DependsOn []string `yaml:"depends_on"`
}

// Load reads, defaults and validates the release plan file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if cfg.Toolchain.Tool == "" {
		cfg.Toolchain.Tool = toolchain.DefaultTool
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// MinimumVersion parses the configured minimum toolchain version.
func (c *Config) MinimumVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(c.Toolchain.Minimum)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum toolchain version %q: %w", c.Toolchain.Minimum, err)
	}
	return v, nil
}

// PlanPackages maps the configured package list onto plan packages,
// preserving the declared order.
func (c *Config) PlanPackages() []plan.Package {
	packages := make([]plan.Package, 0, len(c.Packages))
	for _, pc := range c.Packages {
		packages = append(packages, plan.Package{
			Name:         pc.Name,
			Manifest:     pc.Manifest,
			StageTargets: pc.Stage,
			Excludes:     pc.Exclude,
			DependsOn:    pc.DependsOn,
		})
	}
	return packages
}
