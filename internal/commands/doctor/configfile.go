package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/randoid/internal/core/config"
)

// ConfigFileCheck reports whether a config file exists on disk. A missing file
// is fixable by writing the defaults.
type ConfigFileCheck struct {
	path string
}

// NewConfigFileCheck creates a new config file check.
func NewConfigFileCheck(path string) *ConfigFileCheck {
	return &ConfigFileCheck{path: path}
}

func (c *ConfigFileCheck) Name() string {
	return "Config File"
}

func (c *ConfigFileCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.path == "" {
		result.Items = append(result.Items, CheckItem{
			Label:  "Config path",
			Status: StatusWarn,
			Detail: "no config path set, using defaults",
		})
		return result
	}

	info, err := os.Stat(c.path)
	switch {
	case err == nil && info.IsDir():
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusFail,
			Detail: "is a directory, not a file",
		})
	case err == nil:
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusPass,
			Detail: "found",
		})
	case os.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{
			Label:   c.path,
			Status:  StatusWarn,
			Detail:  "not found, using defaults",
			Fixable: true,
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusFail,
			Detail: err.Error(),
		})
	}
	return result
}

// Fix writes the default config to the check's path. It refuses to replace an
// existing file.
func (c *ConfigFileCheck) Fix(_ context.Context) error {
	if c.path == "" {
		return fmt.Errorf("no config path set")
	}
	if _, err := os.Stat(c.path); err == nil {
		return fmt.Errorf("%s already exists", c.path)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(c.path, data, 0o644)
}
