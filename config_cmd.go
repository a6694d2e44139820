package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
)

const defaultConfig = `# Synthesis service configuration
tts:
  # Synthesis engine: edge or mock
  engine: "edge"

  # Default voice, used when a request names neither a voice nor a language
  voice: "en-US-GuyNeural"
  # Speech rate and volume as signed percentages
  rate: "+0%"
  volume: "+0%"

  # Directory for generated audio files
  output_dir: "~/.local/share/edge-tts-mcp"

  # Request limits and dispatch
  max_text_length: 64000
  chunk_size: 5000
  max_concurrency: 4
  retry_attempts: 1
  synth_timeout: "30s"
  # Abort a job once this share of its segments has failed
  failure_ratio: 0.5

  # Detached job tracking
  job_ttl: "1h"
  cleanup_interval: "5m"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the edge-tts-mcp config file",
	Long:    paragraph(fmt.Sprintf("\n%s the edge-tts-mcp config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("edge-tts-mcp config\nedge-tts-mcp config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("edge-tts-mcp", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		return errors.New("no configuration file path available")
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
