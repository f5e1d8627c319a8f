package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://localhost:8443" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.InsecureSkipVerify {
		t.Fatalf("TLS verification must be on by default")
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %s", cfg.RequestTimeout)
	}
	if cfg.SettleDelay != 3*time.Second {
		t.Fatalf("SettleDelay = %s", cfg.SettleDelay)
	}
	if cfg.RootPhone != "0826607134" {
		t.Fatalf("RootPhone = %q", cfg.RootPhone)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BASE_URL", "http://grassroot.test:8080")
	t.Setenv("TLS_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("SETTLE_DELAY_MS", "0")
	t.Setenv("API_TOKEN", "abc")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://grassroot.test:8080" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if !cfg.InsecureSkipVerify {
		t.Fatalf("expected insecure opt-in from env")
	}
	if cfg.SettleDelay != 0 {
		t.Fatalf("SettleDelay = %s", cfg.SettleDelay)
	}
	if got := cfg.Redacted().APIToken; got != "***" {
		t.Fatalf("Redacted token = %q", got)
	}
	if cfg.APIToken != "abc" {
		t.Fatalf("Redacted must not modify the original")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BASE_URL", "http://from-env:8080")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.Bool("insecure-skip-verify", false, "")
	if err := flags.Parse([]string{"--base-url", "https://from-flag:8443"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://from-flag:8443" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.InsecureSkipVerify {
		t.Fatalf("unset flag must not override default")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"BASE_URL":                "localhost:8443",
		"REQUEST_TIMEOUT_SECONDS": "0",
		"SETTLE_DELAY_MS":         "-1",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(nil); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}
