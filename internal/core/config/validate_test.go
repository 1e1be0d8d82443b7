package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "{{ .Index }}\t{{ .ID }} ({{ .Size }} from {{ .Alphabet }})"
	cfg.Alphabets = map[string]string{"dna": "ACGT"}

	err := cfg.ValidateDeep(writeConfig(t, "version: 0.1.0\n"))
	assert.NoError(t, err)
}

func TestValidateDeep_MissingTemplateKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "{{ .Prefix }}{{ .ID }}"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "format", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "template error")
}

func TestValidateDeep_SyntaxErrorReportedOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "{{ .ID"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	hasConfigError := false
	for _, e := range fieldErrs {
		if e.Field == "config_file" {
			hasConfigError = true
			break
		}
	}
	assert.True(t, hasConfigError, "expected error about config file being a directory")
}

func TestValidateDeep_IncludesShallowErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.Source = "urandom"
	cfg.Alphabets = map[string]string{"odd": "abc"}

	err := cfg.ValidateDeep("")
	assert.ElementsMatch(t, []string{"alphabets.odd", "defaults.source"}, fieldNames(err))
}

func TestWarnings(t *testing.T) {
	t.Run("defaults have none", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("duplicate symbols", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Alphabets = map[string]string{"biased": "aabc"}

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Alphabets", warnings[0].Category)
		assert.Equal(t, "biased", warnings[0].Item)
	})

	t.Run("seeded default source", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Defaults.Source = "chacha8"

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Defaults", warnings[0].Category)
		assert.Contains(t, warnings[0].Message, "predictable")
	})

	t.Run("version mismatch", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Version = "9.9.9"

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Version", warnings[0].Category)
	})
}
