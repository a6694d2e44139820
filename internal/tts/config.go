package tts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/voice"
)

// Config contains all synthesis service configuration options.
type Config struct {
	// Engine selection
	Engine string `yaml:"engine" env:"EDGE_TTS_ENGINE" envDefault:"edge"`

	// Default synthesis parameters
	Voice  string `yaml:"voice" env:"EDGE_TTS_VOICE" envDefault:"en-US-GuyNeural"`
	Rate   string `yaml:"rate" env:"EDGE_TTS_RATE" envDefault:"+0%"`
	Volume string `yaml:"volume" env:"EDGE_TTS_VOLUME" envDefault:"+0%"`

	// Output settings
	OutputDir string `yaml:"output_dir" env:"EDGE_TTS_OUTPUT_DIR" envDefault:"~/.local/share/edge-tts-mcp"`

	// Segmentation and dispatch settings
	MaxTextLength  int           `yaml:"max_text_length" env:"EDGE_TTS_MAX_TEXT_LENGTH" envDefault:"64000"`
	ChunkSize      int           `yaml:"chunk_size" env:"EDGE_TTS_CHUNK_SIZE" envDefault:"5000"`
	MaxConcurrency int           `yaml:"max_concurrency" env:"EDGE_TTS_MAX_CONCURRENCY" envDefault:"4"`
	RetryAttempts  int           `yaml:"retry_attempts" env:"EDGE_TTS_RETRY_ATTEMPTS" envDefault:"1"`
	SynthTimeout   time.Duration `yaml:"synth_timeout" env:"EDGE_TTS_SYNTH_TIMEOUT" envDefault:"30s"`
	FailureRatio   float64       `yaml:"failure_ratio" env:"EDGE_TTS_FAILURE_RATIO" envDefault:"0.5"`

	// Async request tracking
	JobTTL          time.Duration `yaml:"job_ttl" env:"EDGE_TTS_JOB_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"EDGE_TTS_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine: "edge",

		Voice:  voice.DefaultVoice,
		Rate:   "+0%",
		Volume: "+0%",

		OutputDir: "~/.local/share/edge-tts-mcp",

		MaxTextLength:  64000,
		ChunkSize:      5000,
		MaxConcurrency: 4,
		RetryAttempts:  1,
		SynthTimeout:   30 * time.Second,
		FailureRatio:   0.5,

		JobTTL:          time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

var percentRE = regexp.MustCompile(`^[+-]\d{1,3}%$`)

// ValidatePercent checks a signed percentage string such as "+10%" or "-20%".
// The magnitude must be at most 100.
func ValidatePercent(v string) error {
	if !percentRE.MatchString(v) {
		return ErrBadPercent
	}
	n, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
	if err != nil {
		return ErrBadPercent
	}
	if n < -100 || n > 100 {
		return ErrBadPercent
	}
	return nil
}

// Validate checks if the configuration is valid and expands the output path.
func (c *Config) Validate() error {
	validEngines := []string{"edge", "mock"}
	engineValid := false
	for _, e := range validEngines {
		if strings.EqualFold(c.Engine, e) {
			engineValid = true
			c.Engine = strings.ToLower(c.Engine)
			break
		}
	}
	if !engineValid {
		return fmt.Errorf("invalid engine '%s': must be one of %v", c.Engine, validEngines)
	}

	if err := ValidatePercent(c.Rate); err != nil {
		return fmt.Errorf("rate %q: %w", c.Rate, err)
	}
	if err := ValidatePercent(c.Volume); err != nil {
		return fmt.Errorf("volume %q: %w", c.Volume, err)
	}

	if c.MaxTextLength < 1 {
		return fmt.Errorf("max_text_length must be positive, got %d", c.MaxTextLength)
	}
	if c.ChunkSize < 1 || c.ChunkSize > c.MaxTextLength {
		return fmt.Errorf("chunk_size must be between 1 and %d, got %d", c.MaxTextLength, c.ChunkSize)
	}
	if c.MaxConcurrency < 1 || c.MaxConcurrency > 64 {
		return fmt.Errorf("max_concurrency must be between 1 and 64, got %d", c.MaxConcurrency)
	}
	if c.RetryAttempts < 0 || c.RetryAttempts > 5 {
		return fmt.Errorf("retry_attempts must be between 0 and 5, got %d", c.RetryAttempts)
	}
	if c.SynthTimeout < time.Second {
		return fmt.Errorf("synth_timeout must be at least 1 second, got %v", c.SynthTimeout)
	}
	if c.FailureRatio <= 0 || c.FailureRatio > 1 {
		return fmt.Errorf("failure_ratio must be in (0, 1], got %f", c.FailureRatio)
	}
	if c.JobTTL < time.Minute {
		return fmt.Errorf("job_ttl must be at least 1 minute, got %v", c.JobTTL)
	}
	if c.CleanupInterval < time.Second {
		return fmt.Errorf("cleanup_interval must be at least 1 second, got %v", c.CleanupInterval)
	}

	expanded, err := homedir.Expand(c.OutputDir)
	if err != nil {
		return fmt.Errorf("output_dir %q: %w", c.OutputDir, err)
	}
	c.OutputDir = expanded

	return nil
}
