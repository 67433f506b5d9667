// Package config implements Kali's project manifest, kali.yaml: the file
// a project root carries describing its module name, entry point, and
// indentation convention.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest file every Kali project root carries.
const FileName = "kali.yaml"

// SourceExt is the file extension recognized as Kali source.
const SourceExt = ".kali"

// Config is the top-level kali.yaml configuration.
type Config struct {
	// Module is the project's name, used in diagnostics and cache keys.
	Module string `yaml:"module"`

	// Entry is the source file path (relative to the manifest) the
	// toolchain starts from.
	Entry string `yaml:"entry"`

	// IndentWidth is the number of columns one indentation level is
	// expected to span. Zero means infer it from the entry file's first
	// indented line.
	IndentWidth int `yaml:"indent_width,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Module == "" {
		return nil, fmt.Errorf("config: %s: missing required field module", path)
	}
	if cfg.Entry == "" {
		return nil, fmt.Errorf("config: %s: missing required field entry", path)
	}
	return &cfg, nil
}

// EntryPath resolves Entry relative to the manifest's own directory.
func (c *Config) EntryPath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), c.Entry)
}

// FindManifest walks up from dir looking for a kali.yaml, the way a
// shell build tool locates its project root.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: no %s found above %s", FileName, dir)
		}
		dir = parent
	}
}
