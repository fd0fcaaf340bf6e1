package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{
		Vault: VaultConfig{Enabled: false},
	}
	cfg.Server.APIKeys = []string{"local-key"}
	cfg.Summary.APIKey = "local-gemini"

	if err := ApplyVaultSecrets(cfg, nil); err != nil {
		t.Fatalf("ApplyVaultSecrets with vault disabled: %v", err)
	}

	// Disabled vault must leave locally configured secrets alone.
	if len(cfg.Server.APIKeys) != 1 || cfg.Server.APIKeys[0] != "local-key" {
		t.Errorf("APIKeys = %v, want unchanged", cfg.Server.APIKeys)
	}
	if cfg.Summary.APIKey != "local-gemini" {
		t.Errorf("Summary.APIKey = %q, want unchanged", cfg.Summary.APIKey)
	}
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewVaultClient with vault disabled: %v", err)
	}
	if client != nil {
		t.Errorf("client = %v, want nil when disabled", client)
	}
}

func TestResolveVaultToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("  file-token\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	tests := []struct {
		name        string
		config      VaultConfig
		want        string
		expectError bool
	}{
		{
			name:   "direct token",
			config: VaultConfig{Token: "direct-token"},
			want:   "direct-token",
		},
		{
			name:   "token file trimmed",
			config: VaultConfig{TokenFile: tokenFile},
			want:   "file-token",
		},
		{
			name:   "direct token wins over file",
			config: VaultConfig{Token: "direct-token", TokenFile: tokenFile},
			want:   "direct-token",
		},
		{
			name:        "no token",
			config:      VaultConfig{},
			expectError: true,
		},
		{
			name:        "unreadable token file",
			config:      VaultConfig{TokenFile: filepath.Join(t.TempDir(), "missing")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveVaultToken(tt.config, nil)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveVaultToken: %v", err)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
