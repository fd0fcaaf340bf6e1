package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults: %v", err)
	}
	cfg.applyFallbacks()
	return &cfg
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig(t)

	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration invalid: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server.port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("storage.backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Layout.LineEps != 20.0 {
		t.Errorf("layout.lineEps = %v, want 20", cfg.Layout.LineEps)
	}
	if cfg.PDF.Timeout != 60*time.Second {
		t.Errorf("pdf.timeout = %v, want 60s", cfg.PDF.Timeout)
	}
	if cfg.Summary.Enabled {
		t.Error("summary generation should be disabled by default")
	}
	if cfg.Observability.ServiceInstance == "" {
		t.Error("service instance should be derived from hostname")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server port",
		},
		{
			name:    "bad storage backend",
			mutate:  func(c *Config) { c.Storage.Backend = "postgres" },
			wantErr: "storage backend",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Storage.Backend = "sqlite"
				c.Storage.Path = ""
			},
			wantErr: "storage path",
		},
		{
			name:    "negative line eps",
			mutate:  func(c *Config) { c.Layout.LineEps = -1 },
			wantErr: "lineEps",
		},
		{
			name: "summary enabled without key",
			mutate: func(c *Config) {
				c.Summary.Enabled = true
				c.Summary.APIKey = ""
			},
			wantErr: "summary API key",
		},
		{
			name:    "bad default format",
			mutate:  func(c *Config) { c.App.DefaultFormat = "yaml" },
			wantErr: "default format",
		},
		{
			name:    "bad tls mode",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "mutual" },
			wantErr: "TLS mode",
		},
		{
			name: "server tls without cert",
			mutate: func(c *Config) {
				c.Server.TLS.Mode = "server"
				c.Server.TLS.CertFile = ""
			},
			wantErr: "certificate and key",
		},
		{
			name: "server tls with files",
			mutate: func(c *Config) {
				c.Server.TLS.Mode = "server"
				c.Server.TLS.CertFile = "cert.pem"
				c.Server.TLS.KeyFile = "key.pem"
			},
		},
		{
			name: "summary enabled with vault pending",
			mutate: func(c *Config) {
				c.Summary.Enabled = true
				c.Vault.Enabled = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAPIKeysFromEnvironment(t *testing.T) {
	t.Setenv("RESUMECANVAS_SERVER_APIKEYS", "key-a, key-b ,key-c")

	cfg := defaultConfig(t)

	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Server.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
	}
	for i := range want {
		if cfg.Server.APIKeys[i] != want[i] {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], want[i])
		}
	}
}
