package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".gitbookpdf.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// RuleConfig is the YAML form of one DOM preparation rule.
// The mutate package converts these into executable rules; keeping the
// raw form here lets config stay a leaf package.
type RuleConfig struct {
	// Selector is a CSS selector matching the elements to act on.
	Selector string `yaml:"selector"`

	// Action is one of "click", "remove", or "rewrite-from-attr".
	Action string `yaml:"action"`

	// Attr names the attribute to read for rewrite-from-attr rules.
	Attr string `yaml:"attr,omitempty"`
}

// File represents the structure of the .gitbookpdf.yaml configuration file.
// All fields are optional; absent fields keep their built-in defaults.
type File struct {
	// PDF overrides the default rendering options. Zero-valued fields
	// within it are ignored.
	PDF PDFOptions `yaml:"pdf,omitempty"`

	// Rules replaces the built-in GitBook DOM preparation rules.
	// When empty, the defaults are used.
	Rules []RuleConfig `yaml:"rules,omitempty"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply merges the file's overrides into the config.
// Only non-zero fields override.
func (cf *File) Apply(c *Config) {
	if cf.PDF.Width != "" {
		c.PDF.Width = cf.PDF.Width
	}
	if cf.PDF.Height != "" {
		c.PDF.Height = cf.PDF.Height
	}
	if cf.PDF.Scale != 0 {
		c.PDF.Scale = cf.PDF.Scale
	}
	if cf.PDF.Margin != "" {
		c.PDF.Margin = cf.PDF.Margin
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .gitbookpdf.yaml in the current directory
//  3. Look for config.yaml in the XDG config directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
