package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/randoid/internal/core/idgen"
	"github.com/hay-kot/randoid/pkg/randoid"
	"github.com/hay-kot/randoid/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate, it checks the config file on disk and renders the output
// template against sample data so missing keys surface.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	// Syntax errors are already reported by Validate.
	if t, err := tmpl.Parse(c.Format); err == nil {
		if err := t.Execute(io.Discard, FormatData{}); err != nil {
			errs = errs.Append("format", fmt.Errorf("template error: %w", err))
		}
	}

	return errs.ToError()
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Version != "" && c.Version != CurrentConfigVersion {
		warnings = append(warnings, ValidationWarning{
			Category: "Version",
			Item:     c.Version,
			Message:  fmt.Sprintf("config version differs from %s", CurrentConfigVersion),
		})
	}

	for _, name := range c.AlphabetNames() {
		a, err := randoid.NewAlphabet(c.Alphabets[name])
		if err != nil {
			continue
		}
		if a.HasDuplicates() {
			warnings = append(warnings, ValidationWarning{
				Category: "Alphabets",
				Item:     name,
				Message:  "alphabet repeats symbols; output will be biased toward them",
			})
		}
	}

	if idgen.IsSeeded(c.Defaults.Source) {
		warnings = append(warnings, ValidationWarning{
			Category: "Defaults",
			Item:     "source",
			Message:  fmt.Sprintf("%s is seeded and predictable; do not use it for secrets", c.Defaults.Source),
		})
	}

	return warnings
}
