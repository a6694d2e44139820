package tts

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigFromViper layers Viper-managed settings (config file, bound
// flags) over the given base configuration.
func LoadConfigFromViper(base Config) (Config, error) {
	cfg := base

	if viper.IsSet("tts.engine") {
		cfg.Engine = viper.GetString("tts.engine")
	}

	if viper.IsSet("tts.voice") {
		cfg.Voice = viper.GetString("tts.voice")
	}
	if viper.IsSet("tts.rate") {
		cfg.Rate = viper.GetString("tts.rate")
	}
	if viper.IsSet("tts.volume") {
		cfg.Volume = viper.GetString("tts.volume")
	}

	if viper.IsSet("tts.output_dir") {
		cfg.OutputDir = viper.GetString("tts.output_dir")
	}

	if viper.IsSet("tts.max_text_length") {
		cfg.MaxTextLength = viper.GetInt("tts.max_text_length")
	}
	if viper.IsSet("tts.chunk_size") {
		cfg.ChunkSize = viper.GetInt("tts.chunk_size")
	}
	if viper.IsSet("tts.max_concurrency") {
		cfg.MaxConcurrency = viper.GetInt("tts.max_concurrency")
	}
	if viper.IsSet("tts.retry_attempts") {
		cfg.RetryAttempts = viper.GetInt("tts.retry_attempts")
	}
	if viper.IsSet("tts.synth_timeout") {
		if d, err := time.ParseDuration(viper.GetString("tts.synth_timeout")); err == nil {
			cfg.SynthTimeout = d
		}
	}
	if viper.IsSet("tts.failure_ratio") {
		cfg.FailureRatio = viper.GetFloat64("tts.failure_ratio")
	}

	if viper.IsSet("tts.job_ttl") {
		if d, err := time.ParseDuration(viper.GetString("tts.job_ttl")); err == nil {
			cfg.JobTTL = d
		}
	}
	if viper.IsSet("tts.cleanup_interval") {
		if d, err := time.ParseDuration(viper.GetString("tts.cleanup_interval")); err == nil {
			cfg.CleanupInterval = d
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid tts configuration: %w", err)
	}

	return cfg, nil
}

// SetDefaults sets default values in Viper for synthesis configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("tts.engine", defaults.Engine)

	viper.SetDefault("tts.voice", defaults.Voice)
	viper.SetDefault("tts.rate", defaults.Rate)
	viper.SetDefault("tts.volume", defaults.Volume)

	viper.SetDefault("tts.output_dir", defaults.OutputDir)

	viper.SetDefault("tts.max_text_length", defaults.MaxTextLength)
	viper.SetDefault("tts.chunk_size", defaults.ChunkSize)
	viper.SetDefault("tts.max_concurrency", defaults.MaxConcurrency)
	viper.SetDefault("tts.retry_attempts", defaults.RetryAttempts)
	viper.SetDefault("tts.synth_timeout", defaults.SynthTimeout.String())
	viper.SetDefault("tts.failure_ratio", defaults.FailureRatio)

	viper.SetDefault("tts.job_ttl", defaults.JobTTL.String())
	viper.SetDefault("tts.cleanup_interval", defaults.CleanupInterval.String())
}
