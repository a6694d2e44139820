// Package main provides the entry point for the edge-tts-mcp server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/ctrlc"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/edge-tts-mcp/internal/server"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines/edge"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines/mock"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	verbose    bool
	ttsEngine  string
	outputDir  string

	logger *log.Logger

	rootCmd = &cobra.Command{
		Use:   "edge-tts-mcp",
		Short: "Text-to-speech MCP server backed by Microsoft Edge neural voices",
		Long: paragraph(fmt.Sprintf("\nAn MCP server that turns text into speech, %s.",
			keyword("with neural voices"))),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve,
	}
)

var (
	keyword   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"}).Render
	paragraph = lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2).Render
)

func serve(*cobra.Command, []string) error {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadTTSConfig()
	if err != nil {
		return err
	}

	var engine engines.Synthesizer
	switch cfg.Engine {
	case "mock":
		engine = mock.New()
		logger.Warn("using mock synthesis engine; no real audio will be produced")
	default:
		engine = edge.New(edge.WithLogger(logger))
	}

	svc := tts.NewService(cfg, engine, logger)
	srv := server.New(svc, cfg, Version, logger)

	logger.Debug("configuration loaded",
		"engine", cfg.Engine,
		"voice", cfg.Voice,
		"output_dir", cfg.OutputDir,
		"chunk_size", cfg.ChunkSize,
		"max_concurrency", cfg.MaxConcurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctrlc.Default.Run(ctx, func() error {
		return srv.Run(ctx)
	}); err != nil {
		if errors.As(err, &ctrlc.ErrorCtrlC{}) {
			logger.Warn("Exiting...")
			return nil
		}
		return fmt.Errorf("failed while serving MCP: %w", err)
	}
	return nil
}

// loadTTSConfig assembles the effective configuration: built-in defaults,
// then EDGE_TTS_* environment variables, then the config file and any bound
// flags through Viper.
func loadTTSConfig() (tts.Config, error) {
	cfg, err := env.ParseAs[tts.Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing config from environment: %w", err)
	}
	return tts.LoadConfigFromViper(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Stdout carries the MCP protocol, so all logging goes to stderr. Fancy
	// level styles only make sense when a human is watching.
	logger = log.New(os.Stderr)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		styles := log.DefaultStyles()
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
			SetString("ERROR").
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color("204")).
			Foreground(lipgloss.Color("0"))
		styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
		styles.Values["err"] = lipgloss.NewStyle().Bold(true)
		logger.SetStyles(styles)
	}

	tryLoadConfigFromDefaultPlaces()

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug logging")
	rootCmd.Flags().StringVarP(&ttsEngine, "engine", "e", "", "synthesis engine (edge or mock)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for generated audio files")

	_ = viper.BindPFlag("tts.engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("tts.output_dir", rootCmd.Flags().Lookup("output-dir"))

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "edge-tts-mcp")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "edge-tts-mcp")}, dirs...)
	}

	if c := os.Getenv("EDGE_TTS_MCP_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("edge-tts-mcp")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		configFile = used
		return
	}

	configFile = filepath.Join(dirs[0], "edge-tts-mcp.yml")
}
