// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config provides configuration loading, merging, and persistence
// helpers for Keydesk. It uses Viper for file/env/flag parsing and goccy/go-yaml
// to write configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the complete runtime configuration of the console.
type Config struct {
	API           APIConfig     `mapstructure:"api" yaml:"api"`
	Language      string        `mapstructure:"language" yaml:"language"`
	PerPage       int           `mapstructure:"per_page" yaml:"per_page"`
	StatsInterval time.Duration `mapstructure:"stats_interval" yaml:"stats_interval"`
	ToastTTL      time.Duration `mapstructure:"toast_ttl" yaml:"toast_ttl"`
	Archive       ArchiveConfig `mapstructure:"archive" yaml:"archive"`
}

// APIConfig locates the license backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Token   string        `mapstructure:"token" yaml:"token,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ArchiveConfig selects the SQL database snapshots are archived into.
type ArchiveConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

// Defaults returns the default value of every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":   "http://localhost:5000",
		"api.token":      "",
		"api.timeout":    time.Duration(0),
		"language":       "en",
		"per_page":       20,
		"stats_interval": 30 * time.Second,
		"toast_ttl":      5 * time.Second,
		"archive.type":   "sqlite",
		"archive.dsn":    "./keydesk-archive.db",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Keydesk")
		default: // Linux, macOS, etc.
			configDir = "/etc/keydesk"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "keydesk")
	}

	return filepath.Join(configDir, "keydesk.yaml"), nil
}

// LoadConfig resolves T from defaults, config file, environment and the flags
// of cmd, in increasing order of precedence.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("keydesk")
	v.SetConfigType("yaml")

	// An explicit --config path wins over the search locations.
	if additionalConfigFilePath != nil && *additionalConfigFilePath != "" {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	mergeDotfileConfig(v)

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("keydesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// mergeDotfileConfig merges a `.keydesk.yaml` from the current directory on
// top of whatever was read so far. Project-local overrides live there.
func mergeDotfileConfig(v *viper.Viper) {
	dotfile := ".keydesk.yaml"
	if _, err := os.Stat(dotfile); err == nil {
		v.SetConfigFile(dotfile)
		// A malformed dotfile is ignored rather than breaking startup.
		_ = v.MergeInConfig()
		v.SetConfigFile("")
	}
}

// WriteConfigFile writes c to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may hold the API token.
	return os.WriteFile(path, data, 0600)
}

// EnsureUserConfig writes c to the user config path if no file exists there
// yet. It reports whether a file was written.
func EnsureUserConfig(c *Config) (bool, error) {
	path, err := GetConfigPath(false)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := WriteConfigFileTo(c, path); err != nil {
		return false, err
	}
	return true, nil
}
