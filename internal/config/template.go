// Package config ships the default configuration file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigFile is where init-config writes the template.
const DefaultConfigFile = "configs/config.yaml"

//go:embed config_template.yaml
var template string

// Template returns the commented default configuration.
func Template() string {
	return template
}

// WriteTemplate writes the template to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	if path == "" {
		path = DefaultConfigFile
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
