// Package project reads the optional .bshproject.yaml manifest that seeds
// a driver's search paths and standard-library location, so a multi-file
// project does not need to repeat --search-path/--stdlib flags on every
// invocation. The core compiler pipeline never imports this package: a
// Loader is configured the same way with or without a manifest.
//
// Grounded on the teacher's internal/manifest/manifest.go (schema version
// field, Load/Validate/Save shape), adapted from ailang's example-tracking
// JSON schema to a small YAML project config via gopkg.in/yaml.v3.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only project manifest schema this package accepts.
const SchemaVersion = "brash.project/v1"

// Config is the parsed contents of a .bshproject.yaml file.
type Config struct {
	Schema      string            `yaml:"schema"`
	Entry       string            `yaml:"entry"`
	SearchPaths []string          `yaml:"searchPaths,omitempty"`
	Stdlib      map[string]string `yaml:"stdlib,omitempty"`

	// dir is the directory the manifest was loaded from, used to resolve
	// Entry and SearchPaths relative to the manifest rather than the
	// process's current working directory.
	dir string
}

// Default returns a Config with no search paths or stdlib mappings and an
// empty entry, for callers that construct one programmatically rather
// than reading a manifest file.
func Default() *Config {
	return &Config{Schema: SchemaVersion}
}

// Load reads and validates a project manifest from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: failed to read manifest: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("project: failed to parse manifest: %w", err)
	}
	cfg.dir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("project: invalid manifest %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the manifest for the fields a driver needs to act on.
func (c *Config) Validate() error {
	if c.Schema != SchemaVersion {
		return fmt.Errorf("unsupported schema %q (expected %q)", c.Schema, SchemaVersion)
	}
	if c.Entry == "" {
		return fmt.Errorf("missing entry")
	}
	seen := map[string]bool{}
	for _, p := range c.SearchPaths {
		if p == "" {
			return fmt.Errorf("empty searchPaths entry")
		}
		if seen[p] {
			return fmt.Errorf("duplicate searchPaths entry: %s", p)
		}
		seen[p] = true
	}
	return nil
}

// EntryPath resolves Entry against the directory the manifest was loaded
// from, so a manifest can be invoked from any working directory.
func (c *Config) EntryPath() string {
	if filepath.IsAbs(c.Entry) {
		return c.Entry
	}
	return filepath.Join(c.dir, c.Entry)
}

// ResolvedSearchPaths resolves every relative SearchPaths entry against the
// manifest's directory, leaving absolute entries untouched.
func (c *Config) ResolvedSearchPaths() []string {
	out := make([]string, len(c.SearchPaths))
	for i, p := range c.SearchPaths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(c.dir, p)
		}
	}
	return out
}

// StdLibLocator adapts Stdlib into a stdlib.MapLocator-compatible map,
// resolving relative paths against the manifest's directory first.
func (c *Config) StdLibLocator() map[string]string {
	out := make(map[string]string, len(c.Stdlib))
	for specifier, p := range c.Stdlib {
		if filepath.IsAbs(p) {
			out[specifier] = p
		} else {
			out[specifier] = filepath.Join(c.dir, p)
		}
	}
	return out
}
