package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:               "8081",
		DataBackend:        "memory",
		SQLiteDBPath:       ":memory:",
		SessionTTL:         30 * time.Minute,
		DemoUser:           "demo",
		DemoPassword:       "Demo@1234",
		Categories:         DefaultCategories,
		MonthlyBudgetCents: 500000,
		RateLimitRPM:       120,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath != ":memory:" {
		t.Errorf("SQLiteDBPath = %q", cfg.SQLiteDBPath)
	}
	if len(cfg.Categories) == 0 {
		t.Error("Categories empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.DataBackend = "sheets" }, "invalid data backend"},
		{"sqlite empty path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "cannot be empty"},
		{"sqlite memory ok", func(c *Config) { c.DataBackend = "sqlite" }, ""},
		{"ttl too short", func(c *Config) { c.SessionTTL = time.Second }, "session TTL"},
		{"ttl too long", func(c *Config) { c.SessionTTL = 48 * time.Hour }, "session TTL"},
		{"empty user", func(c *Config) { c.DemoUser = "  " }, "demo user"},
		{"empty password", func(c *Config) { c.DemoPassword = "" }, "demo password"},
		{"no categories", func(c *Config) { c.Categories = nil }, "category list"},
		{"blank category", func(c *Config) { c.Categories = []string{"Moradia", " "} }, "empty entry"},
		{"negative budget", func(c *Config) { c.MonthlyBudgetCents = -1 }, "monthly budget"},
		{"zero rate limit", func(c *Config) { c.RateLimitRPM = 0 }, "rate limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CATEGORIES", "Casa, Comida ,,Transporte")
	got := getEnvList("CATEGORIES", DefaultCategories)
	if len(got) != 3 || got[0] != "Casa" || got[1] != "Comida" || got[2] != "Transporte" {
		t.Errorf("got %v", got)
	}

	t.Setenv("CATEGORIES", "")
	got = getEnvList("CATEGORIES", DefaultCategories)
	if len(got) != len(DefaultCategories) {
		t.Errorf("expected defaults, got %v", got)
	}
}
