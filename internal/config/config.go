package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL               string        `mapstructure:"base_url"`
	APIToken              string        `mapstructure:"api_token"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	InsecureSkipVerify    bool          `mapstructure:"tls_insecure_skip_verify"`
	CAFile                string        `mapstructure:"tls_ca_file"`

	SettleDelayMillis int64         `mapstructure:"settle_delay_ms"`
	SettleDelay       time.Duration `mapstructure:"-"`
	RootPhone         string        `mapstructure:"root_phone"`
	ReportsFile       string        `mapstructure:"reports_file"`
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"base-url":             "base_url",
	"api-token":            "api_token",
	"insecure-skip-verify": "tls_insecure_skip_verify",
	"log-level":            "log_level",
	"reports-file":         "reports_file",
}

// Load reads configuration from configs/.env, environment variables and, when
// flags is non-nil, any flags the user set explicitly.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "grassroot-smoke")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://localhost:8443")
	v.SetDefault("api_token", "")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("tls_insecure_skip_verify", false)
	v.SetDefault("tls_ca_file", "")
	v.SetDefault("settle_delay_ms", 3000)
	v.SetDefault("root_phone", "0826607134")
	v.SetDefault("reports_file", "")

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.SettleDelayMillis < 0 {
		return nil, fmt.Errorf("invalid settle_delay_ms (must not be negative)")
	}
	cfg.SettleDelay = time.Duration(cfg.SettleDelayMillis) * time.Millisecond

	cfg.RootPhone = strings.TrimSpace(cfg.RootPhone)
	if cfg.RootPhone == "" {
		return nil, fmt.Errorf("root_phone is required")
	}
	cfg.ReportsFile = strings.TrimSpace(cfg.ReportsFile)

	return &cfg, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q (expected http(s)://host[:port])", raw)
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.APIToken != "" {
		c.APIToken = "***"
	}
	return c
}
