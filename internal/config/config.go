package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort             = 2333
	defaultEnv              = "development"
	defaultDSN              = "root:password@tcp(127.0.0.1:3306)/inkwell?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL         = "redis://localhost:6379/0"
	defaultStaticDir        = "static"
	defaultMinContentLength = 10
	defaultMaxTokens        = 300
	defaultTemperature      = 0.7
	defaultIdleTimeoutSec   = 30
)

// Load reads the YAML config file, applies environment overrides and defaults.
// A missing file is not an error; env vars and defaults still apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path == "" {
		path = DefaultConfigPath
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := envStr("INKWELL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := envStr("INKWELL_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := envStr("INKWELL_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envStr("INKWELL_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envStr("INKWELL_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := envStr("INKWELL_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := envStr("OPENAI_API_KEY"); v != "" && len(cfg.AI.Providers) == 0 {
		cfg.AI.Providers = append(cfg.AI.Providers, AIProvider{
			ID:      "openai",
			Type:    "openai",
			Enabled: true,
			APIKey:  v,
		})
	}
	applyOAuthEnv(cfg, "google", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET")
	applyOAuthEnv(cfg, "github", "GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET")
}

func applyOAuthEnv(cfg *AppConfig, providerType, idKey, secretKey string) {
	id, secret := envStr(idKey), envStr(secretKey)
	if id == "" {
		return
	}
	for i := range cfg.OAuth.Providers {
		if strings.EqualFold(cfg.OAuth.Providers[i].Type, providerType) {
			cfg.OAuth.Providers[i].ClientID = id
			if secret != "" {
				cfg.OAuth.Providers[i].ClientSecret = secret
			}
			return
		}
	}
	cfg.OAuth.Providers = append(cfg.OAuth.Providers, OAuthProvider{
		Type:         providerType,
		Enabled:      true,
		ClientID:     id,
		ClientSecret: secret,
	})
}

func normalize(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		cfg.DSN = defaultDSN
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if strings.TrimSpace(cfg.StaticDir) == "" {
		cfg.StaticDir = defaultStaticDir
	}
	if cfg.AI.MinContentLength <= 0 {
		cfg.AI.MinContentLength = defaultMinContentLength
	}
	if cfg.AI.MaxTokens <= 0 {
		cfg.AI.MaxTokens = defaultMaxTokens
	}
	if cfg.AI.Temperature == nil {
		t := defaultTemperature
		cfg.AI.Temperature = &t
	}
	if cfg.AI.IdleTimeoutSec <= 0 {
		cfg.AI.IdleTimeoutSec = defaultIdleTimeoutSec
	}
}

func envStr(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
