package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int         `yaml:"port"`
	DSN            string      `yaml:"dsn"` // MySQL DSN
	RedisURL       string      `yaml:"redis_url"`
	Env            string      `yaml:"env"` // "development" | "production"
	JWTSecret      string      `yaml:"jwt_secret"`
	StaticDir      string      `yaml:"static_dir"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	OAuth          OAuthConfig `yaml:"oauth"`
	AI             AIConfig    `yaml:"ai"`
}

// OAuthConfig lists the social login providers the server accepts.
type OAuthConfig struct {
	Providers []OAuthProvider `yaml:"providers"`
}

// OAuthProvider holds client credentials for one provider ("google" | "github").
type OAuthProvider struct {
	Type         string `yaml:"type"`
	Enabled      bool   `yaml:"enabled"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// AIConfig controls the summarization proxy.
type AIConfig struct {
	Providers        []AIProvider `yaml:"providers"`
	MinContentLength int          `yaml:"min_content_length"`
	MaxTokens        int          `yaml:"max_tokens"`
	// Temperature is a pointer so an explicit 0 stays distinguishable
	// from an absent key.
	Temperature    *float64 `yaml:"temperature"`
	IdleTimeoutSec int      `yaml:"idle_timeout_sec"`
}

// SamplingTemperature returns the configured temperature, or the default
// when the key was never set.
func (c AIConfig) SamplingTemperature() float64 {
	if c.Temperature == nil {
		return defaultTemperature
	}
	return *c.Temperature
}

// AIProvider is one upstream chat-completion backend.
type AIProvider struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"` // "openai" (or compatible endpoint) | "anthropic"
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
