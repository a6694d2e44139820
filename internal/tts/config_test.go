package tts

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePercent(t *testing.T) {
	valid := []string{"+0%", "-0%", "+10%", "-20%", "+100%", "-100%"}
	for _, v := range valid {
		if err := ValidatePercent(v); err != nil {
			t.Errorf("ValidatePercent(%q): unexpected error: %v", v, err)
		}
	}

	invalid := []string{"", "0%", "10", "+10", "fast", "+101%", "-101%", "+1000%", "+10 %", "%10+"}
	for _, v := range invalid {
		if err := ValidatePercent(v); !errors.Is(err, ErrBadPercent) {
			t.Errorf("ValidatePercent(%q): expected ErrBadPercent, got %v", v, err)
		}
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if strings.HasPrefix(cfg.OutputDir, "~") {
		t.Errorf("output dir not expanded: %s", cfg.OutputDir)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad engine", func(c *Config) { c.Engine = "espeak" }},
		{"bad rate", func(c *Config) { c.Rate = "fast" }},
		{"bad volume", func(c *Config) { c.Volume = "+200%" }},
		{"chunk larger than max", func(c *Config) { c.ChunkSize = c.MaxTextLength + 1 }},
		{"zero concurrency", func(c *Config) { c.MaxConcurrency = 0 }},
		{"negative retries", func(c *Config) { c.RetryAttempts = -1 }},
		{"tiny timeout", func(c *Config) { c.SynthTimeout = 0 }},
		{"zero failure ratio", func(c *Config) { c.FailureRatio = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfigEngineNormalization(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "EDGE"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine != "edge" {
		t.Errorf("engine = %s, want edge", cfg.Engine)
	}
}
