// Package config handles configuration loading and validation for randoid.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/hay-kot/randoid/internal/core/validate"
	"github.com/hay-kot/randoid/pkg/randoid"
	"github.com/hay-kot/randoid/pkg/tmpl"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is written by new config files and compared against on load.
const CurrentConfigVersion = "0.1.0"

// DefaultFormat prints each identifier on its own line.
const DefaultFormat = "{{ .ID }}"

// Config holds the application configuration.
type Config struct {
	Version  string   `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	// Format is a text/template applied to every generated identifier.
	Format string `yaml:"format"`
	// Alphabets registers custom alphabets by name.
	Alphabets map[string]string `yaml:"alphabets"`
}

// Defaults are the generator settings used when no flag overrides them.
type Defaults struct {
	Size     int    `yaml:"size"`
	Alphabet string `yaml:"alphabet"`
	Source   string `yaml:"source"`
	Seed     uint64 `yaml:"seed"`
	Count    int    `yaml:"count"`
}

// FormatData defines the fields available to the output template.
type FormatData struct {
	ID       string
	Index    int
	Size     int
	Alphabet string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: CurrentConfigVersion,
		Defaults: Defaults{
			Size:     randoid.DefaultSize,
			Alphabet: "url",
			Source:   idgen.SourceCrypto,
			Count:    1,
		},
		Format:    DefaultFormat,
		Alphabets: map[string]string{},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Defaults.Size == 0 {
		c.Defaults.Size = defaults.Defaults.Size
	}
	if c.Defaults.Count == 0 {
		c.Defaults.Count = defaults.Defaults.Count
	}
	if c.Defaults.Alphabet == "" {
		c.Defaults.Alphabet = defaults.Defaults.Alphabet
	}
	if c.Defaults.Source == "" {
		c.Defaults.Source = defaults.Defaults.Source
	}
	if c.Format == "" {
		c.Format = defaults.Format
	}
	if c.Alphabets == nil {
		c.Alphabets = map[string]string{}
	}
}

// Validate checks that the configuration is usable. It does not touch the
// filesystem.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Size(c.Defaults.Size); err != nil {
		errs = errs.Append("defaults.size", err)
	}
	if err := validate.Count(c.Defaults.Count); err != nil {
		errs = errs.Append("defaults.count", err)
	}

	for _, name := range c.AlphabetNames() {
		field := "alphabets." + name
		if err := validate.AlphabetName(name); err != nil {
			errs = errs.Append(field, err)
			continue
		}
		if randoid.IsBuiltin(name) {
			errs = errs.Append(field, fmt.Errorf("%q shadows a built-in alphabet", name))
			continue
		}
		if _, err := randoid.NewAlphabet(c.Alphabets[name]); err != nil {
			errs = errs.Append(field, err)
		}
	}

	if _, err := idgen.ResolveAlphabet(c.Defaults.Alphabet, c.Alphabets); err != nil {
		errs = errs.Append("defaults.alphabet", err)
	}
	if _, err := idgen.NewSource(c.Defaults.Source, c.Defaults.Seed); err != nil {
		errs = errs.Append("defaults.source", err)
	}

	if _, err := tmpl.Parse(c.Format); err != nil {
		errs = errs.Append("format", err)
	}

	return errs.ToError()
}

// Options returns generator options built from the configured defaults.
func (c *Config) Options() idgen.Options {
	return idgen.Options{
		Size:     c.Defaults.Size,
		Alphabet: c.Defaults.Alphabet,
		Source:   c.Defaults.Source,
		Seed:     c.Defaults.Seed,
	}
}

// AlphabetNames returns the custom alphabet names in sorted order.
func (c *Config) AlphabetNames() []string {
	names := make([]string, 0, len(c.Alphabets))
	for name := range c.Alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
