package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/bigbuf/internal/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("bigbuf", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", cfg.Capacity, DefaultCapacity)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.ServerMode || cfg.Interactive || cfg.JSONOutput || cfg.Quiet {
		t.Errorf("boolean modes should default to false: %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	var errBuf bytes.Buffer
	args := []string{
		"-capacity", "128",
		"-from", "1_234",
		"-e", "pushlow 5; show",
		"-timeout", "2m",
		"-json",
		"-quiet",
	}
	cfg, err := ParseConfig("bigbuf", args, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Capacity != 128 {
		t.Errorf("Capacity = %d, want 128", cfg.Capacity)
	}
	if cfg.From != "1_234" {
		t.Errorf("From = %q, want %q", cfg.From, "1_234")
	}
	if cfg.Script != "pushlow 5; show" {
		t.Errorf("Script = %q", cfg.Script)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
	if !cfg.JSONOutput || !cfg.Quiet {
		t.Errorf("expected JSONOutput and Quiet set: %+v", cfg)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("BIGBUF_CAPACITY", "32")
	t.Setenv("BIGBUF_PORT", "9090")
	t.Setenv("BIGBUF_QUIET", "yes")
	t.Setenv("BIGBUF_TIMEOUT", "45s")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("bigbuf", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Capacity != 32 {
		t.Errorf("Capacity = %d, want 32 from env", cfg.Capacity)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090 from env", cfg.Port)
	}
	if !cfg.Quiet {
		t.Error("expected Quiet from env")
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s from env", cfg.Timeout)
	}
}

func TestParseConfigFlagsBeatEnv(t *testing.T) {
	t.Setenv("BIGBUF_CAPACITY", "32")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("bigbuf", []string{"-capacity", "100"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Capacity != 100 {
		t.Errorf("Capacity = %d, want CLI value 100 over env", cfg.Capacity)
	}
}

func TestParseConfigInvalidEnvIgnored(t *testing.T) {
	t.Setenv("BIGBUF_CAPACITY", "not-a-number")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("bigbuf", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want default when env is invalid", cfg.Capacity)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{Capacity: 64, Timeout: time.Second, Port: DefaultPort}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(c *AppConfig) {}, false},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, true},
		{"zero capacity", func(c *AppConfig) { c.Capacity = 0 }, true},
		{"capacity too large", func(c *AppConfig) { c.Capacity = MaxCapacity + 1 }, true},
		{"capacity at max", func(c *AppConfig) { c.Capacity = MaxCapacity }, false},
		{"server and interactive", func(c *AppConfig) { c.ServerMode = true; c.Interactive = true }, true},
		{"server with script", func(c *AppConfig) { c.ServerMode = true; c.Script = "add 1" }, true},
		{"interactive alone", func(c *AppConfig) { c.Interactive = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				var configErr apperrors.ConfigError
				if !errors.As(err, &configErr) {
					t.Errorf("Validate() = %v, want ConfigError", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestParseConfigInvalidConfigurationPrintsUsage(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("bigbuf", []string{"-capacity", "0"}, &errBuf)
	if err == nil {
		t.Fatal("expected error for invalid configuration")
	}
	if !strings.Contains(errBuf.String(), "Configuration error") {
		t.Errorf("expected configuration error message, got %q", errBuf.String())
	}
}
