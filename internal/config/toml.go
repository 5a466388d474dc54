// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Editor EditorConfig `toml:"editor"`
}

// EditorConfig maps editor-related settings.
type EditorConfig struct {
	Lang           *string `toml:"lang"`
	SynonymsURL    *string `toml:"synonyms-url"`
	ExportURL      *string `toml:"export-url"`
	Dictionary     *string `toml:"dictionary"`
	TimeoutSeconds *int    `toml:"timeout-seconds"`
	CacheTTLHours  *int    `toml:"cache-ttl-hours"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
