package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8081",
		DataBackend:        "sqlite",
		SQLiteDBPath:       "./test.db",
		SKVPath:            "./test.skv",
		AuthUsername:       "akmal",
		AuthPassword:       "alda",
		CacheTTL:           5 * time.Minute,
		RateLimitPerMinute: 60,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid sqlite backend config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid skv backend config",
			mutate: func(c *Config) { c.DataBackend = "skv" },
		},
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) { c.DataBackend = "memory" },
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "skv backend without path",
			mutate: func(c *Config) {
				c.DataBackend = "skv"
				c.SKVPath = ""
			},
			wantErr:     true,
			errorString: "skv store path cannot be empty",
		},
		{
			name:        "empty credentials",
			mutate:      func(c *Config) { c.AuthPassword = "" },
			wantErr:     true,
			errorString: "auth username and password cannot be empty",
		},
		{
			name:        "cache TTL too small",
			mutate:      func(c *Config) { c.CacheTTL = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache TTL",
		},
		{
			name:        "rate limit too small",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("default backend = %q", cfg.DataBackend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
