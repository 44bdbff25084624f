package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const localSessionSecret = "orderlens-local-dev"

type Config struct {
	Environment string
	Server      ServerConfig
	Auth        AuthConfig
	PlayAuto    PlayAutoConfig
	Logging     LoggingConfig
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	SessionSecret string
	SecureCookie  bool
}

type PlayAutoConfig struct {
	BaseURL        string
	APIKey         string
	AccountID      string
	AccountSecret  string
	Resource       string
	TimeoutSeconds int
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("orderlens_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("orderlens_port", 8080)
	v.SetDefault("orderlens_session_secret", "")
	v.SetDefault("orderlens_secure_cookie", false)
	v.SetDefault("orderlens_log_level", "info")
	v.SetDefault("orderlens_log_format", "text")
	v.SetDefault("orderlens_log_file", "")
	v.SetDefault("plto_base_url", "https://openapi.playauto.io/api")
	v.SetDefault("plto_api_key", "")
	v.SetDefault("plto_id", "")
	v.SetDefault("plto_pw", "")
	v.SetDefault("plto_resource", "orders")
	v.SetDefault("plto_timeout_seconds", 30)

	env := resolveEnvironment(v)
	port := v.GetInt("orderlens_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid ORDERLENS_PORT: %d", port)
	}

	timeout := v.GetInt("plto_timeout_seconds")
	if timeout <= 0 {
		timeout = 30
	}
	if timeout > 300 {
		timeout = 300
	}

	format := strings.ToLower(strings.TrimSpace(v.GetString("orderlens_log_format")))
	if format != "json" {
		format = "text"
	}

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Auth: AuthConfig{
			SessionSecret: strings.TrimSpace(v.GetString("orderlens_session_secret")),
			SecureCookie:  v.GetBool("orderlens_secure_cookie"),
		},
		PlayAuto: PlayAutoConfig{
			BaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString("plto_base_url")), "/"),
			APIKey:         strings.TrimSpace(v.GetString("plto_api_key")),
			AccountID:      strings.TrimSpace(v.GetString("plto_id")),
			AccountSecret:  v.GetString("plto_pw"),
			Resource:       strings.Trim(strings.TrimSpace(v.GetString("plto_resource")), "/"),
			TimeoutSeconds: timeout,
		},
		Logging: LoggingConfig{
			Level:  strings.TrimSpace(v.GetString("orderlens_log_level")),
			Format: format,
			File:   strings.TrimSpace(v.GetString("orderlens_log_file")),
		},
	}

	if cfg.PlayAuto.BaseURL == "" {
		cfg.PlayAuto.BaseURL = "https://openapi.playauto.io/api"
	}
	if cfg.PlayAuto.Resource == "" {
		cfg.PlayAuto.Resource = "orders"
	}
	if missing := cfg.PlayAuto.missingCredentials(); len(missing) > 0 {
		return Config{}, fmt.Errorf("%s required", strings.Join(missing, ", "))
	}
	if !cfg.IsLocalDevelopment() {
		if cfg.Auth.SessionSecret == "" {
			return Config{}, fmt.Errorf("ORDERLENS_SESSION_SECRET is required outside local/dev environments")
		}
	}
	if cfg.IsLocalDevelopment() && cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = localSessionSecret
	}

	return cfg, nil
}

func (p PlayAutoConfig) missingCredentials() []string {
	var missing []string
	if p.APIKey == "" {
		missing = append(missing, "PLTO_API_KEY")
	}
	if p.AccountID == "" {
		missing = append(missing, "PLTO_ID")
	}
	if p.AccountSecret == "" {
		missing = append(missing, "PLTO_PW")
	}
	return missing
}

func (p PlayAutoConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

// UsesLocalSessionSecret reports whether the development fallback secret is active.
func (c Config) UsesLocalSessionSecret() bool {
	return c.Auth.SessionSecret == localSessionSecret
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"orderlens_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
