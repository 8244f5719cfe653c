// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/keydesk/keydesk/internal/config"
	"github.com/spf13/cobra"
)

// isolate points the user config dir at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	return tmp
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	isolate(t)

	got, err := config.LoadConfig[config.Config](&cobra.Command{}, config.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.BaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected base url %q", got.API.BaseURL)
	}
	if got.PerPage != 20 {
		t.Fatalf("expected per_page 20, got %d", got.PerPage)
	}
	if got.StatsInterval != 30*time.Second {
		t.Fatalf("expected 30s stats interval, got %v", got.StatsInterval)
	}
	if got.ToastTTL != 5*time.Second {
		t.Fatalf("expected 5s toast ttl, got %v", got.ToastTTL)
	}
	if got.Archive.Type != "sqlite" {
		t.Fatalf("expected sqlite archive, got %q", got.Archive.Type)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	yaml := "api:\n  base_url: https://licenses.example.com\n  timeout: 10s\nlanguage: pt-BR\nper_page: 50\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := config.LoadConfig[config.Config](&cobra.Command{}, config.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.BaseURL != "https://licenses.example.com" {
		t.Fatalf("unexpected base url %q", got.API.BaseURL)
	}
	if got.API.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", got.API.Timeout)
	}
	if got.Language != "pt-BR" {
		t.Fatalf("expected pt-BR, got %q", got.Language)
	}
	if got.PerPage != 50 {
		t.Fatalf("expected 50, got %d", got.PerPage)
	}
	// untouched keys keep their defaults
	if got.StatsInterval != 30*time.Second {
		t.Fatalf("expected default stats interval, got %v", got.StatsInterval)
	}
}

func TestLoadConfig_MissingExplicitFileIsAnError(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := config.LoadConfig[config.Config](&cobra.Command{}, config.Defaults(), &missing); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte("api:\n  token: from-file\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("KEYDESK_API_TOKEN", "from-env")

	got, err := config.LoadConfig[config.Config](&cobra.Command{}, config.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.Token != "from-env" {
		t.Fatalf("expected env token, got %q", got.API.Token)
	}
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("KEYDESK_LANGUAGE", "pt-BR")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "", "")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, err := config.LoadConfig[config.Config](cmd, config.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("expected flag value en, got %q", got.Language)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	isolate(t)

	c := config.Config{Language: "pt-BR", PerPage: 10, StatsInterval: time.Minute}
	c.API.BaseURL = "https://licenses.example.com"
	c.Archive.Type = "sqlite"
	c.Archive.DSN = "./archive.db"

	if err := config.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	path, err := config.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}

	got, err := config.LoadConfig[config.Config](&cobra.Command{}, config.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.API.BaseURL != c.API.BaseURL || got.Language != "pt-BR" || got.PerPage != 10 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.StatsInterval != time.Minute {
		t.Fatalf("expected 1m stats interval, got %v", got.StatsInterval)
	}
}

func TestEnsureUserConfig_WritesOnce(t *testing.T) {
	isolate(t)
	c := config.Config{Language: "en"}

	wrote, err := config.EnsureUserConfig(&c)
	if err != nil || !wrote {
		t.Fatalf("first call: wrote=%v err=%v", wrote, err)
	}
	wrote, err = config.EnsureUserConfig(&c)
	if err != nil || wrote {
		t.Fatalf("second call: wrote=%v err=%v", wrote, err)
	}
}
