package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 2333 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("env = %q", cfg.Env)
	}
	if cfg.StaticDir != "static" {
		t.Errorf("static dir = %q", cfg.StaticDir)
	}
	if cfg.AI.MinContentLength != 10 || cfg.AI.MaxTokens != 300 || cfg.AI.SamplingTemperature() != 0.7 {
		t.Errorf("ai defaults = %+v", cfg.AI)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
port: 8080
env: production
static_dir: /srv/static
ai:
  max_tokens: 120
  providers:
    - id: main
      type: openai
      enabled: true
      api_key: sk-test
      model: gpt-4o-mini
oauth:
  providers:
    - type: github
      enabled: true
      client_id: gh-id
      client_secret: gh-secret
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("production config reported as dev")
	}
	if cfg.AI.MaxTokens != 120 {
		t.Errorf("max tokens = %d", cfg.AI.MaxTokens)
	}
	// Unset AI knobs still receive defaults.
	if cfg.AI.SamplingTemperature() != 0.7 || cfg.AI.MinContentLength != 10 {
		t.Errorf("ai defaults not applied: %+v", cfg.AI)
	}
	if len(cfg.AI.Providers) != 1 || cfg.AI.Providers[0].APIKey != "sk-test" {
		t.Errorf("ai providers = %+v", cfg.AI.Providers)
	}
	if len(cfg.OAuth.Providers) != 1 || cfg.OAuth.Providers[0].Type != "github" {
		t.Errorf("oauth providers = %+v", cfg.OAuth.Providers)
	}
}

func TestExplicitZeroTemperatureIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
ai:
  temperature: 0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.AI.SamplingTemperature(); got != 0 {
		t.Fatalf("explicit temperature 0 coerced to %v", got)
	}
}

func TestEnvOverridesAndProviderBootstrap(t *testing.T) {
	t.Setenv("INKWELL_PORT", "9090")
	t.Setenv("INKWELL_ENV", "production")
	t.Setenv("INKWELL_JWT_SECRET", "env-secret")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GITHUB_CLIENT_ID", "gh-env-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("jwt secret = %q", cfg.JWTSecret)
	}
	if len(cfg.AI.Providers) != 1 || cfg.AI.Providers[0].APIKey != "sk-env" || !cfg.AI.Providers[0].Enabled {
		t.Errorf("OPENAI_API_KEY did not bootstrap a provider: %+v", cfg.AI.Providers)
	}
	found := false
	for _, p := range cfg.OAuth.Providers {
		if p.Type == "github" && p.ClientID == "gh-env-id" && p.ClientSecret == "gh-env-secret" && p.Enabled {
			found = true
		}
	}
	if !found {
		t.Errorf("github env credentials not applied: %+v", cfg.OAuth.Providers)
	}
}
