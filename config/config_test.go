package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	API           APIConfig `yaml:"api" mapstructure:"api"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: billing-api
environment: staging
version: 1.2.3
api:
  public_key: cHVibGljLWtleQ==
  issuer: billing-issuer
`)

	var cfg testConfig
	if err := LoadConfig("billing-api", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "billing-api" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config: %+v", cfg.ServiceConfig)
	}
	if cfg.API.Issuer != "billing-issuer" {
		t.Errorf("unexpected issuer: %s", cfg.API.Issuer)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: billing-api
api:
  issuer: from-file
  public_key: cHVibGljLWtleQ==
`)
	t.Setenv("API_ISSUER", "from-env")

	var cfg testConfig
	if err := LoadConfig("billing-api", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Issuer != "from-env" {
		t.Errorf("expected env to win, got %s", cfg.API.Issuer)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unclosed")

	var cfg testConfig
	if err := LoadConfig("x", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := &ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %s", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development should enable debug")
	}
	if cfg.Logging.ServiceName != "svc" {
		t.Errorf("expected logging service name propagated, got %s", cfg.Logging.ServiceName)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	cfg := &ServiceConfig{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing name error")
	}

	cfg = &ServiceConfig{Name: "svc", Environment: "qa"}
	cfg.Logging.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid environment error")
	}
}

func TestAPIConfigValidate(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("key-bytes"))

	cases := []struct {
		name    string
		cfg     APIConfig
		wantErr bool
	}{
		{"ok", APIConfig{PublicKey: valid, Issuer: "iss"}, false},
		{"missing key", APIConfig{Issuer: "iss"}, true},
		{"bad base64", APIConfig{PublicKey: "%%%", Issuer: "iss"}, true},
		{"missing issuer", APIConfig{PublicKey: valid}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
