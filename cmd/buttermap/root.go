package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/buttermap/internal/config"
)

const defaultConfigPath = "config/buttermap.yaml"

// app carries global flags and the loaded config to subcommands.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

// NewRootCommand creates the root command for the CLI.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "buttermap",
		Short: "Route engine for a wrapped text map",
		Long: `buttermap computes walking directions over a map whose edges wrap.

Examples:
  buttermap route --from 10,4 --to 250,31 --avoid WATER,MOUNTAIN
  buttermap route --from 10,4 --to 250,31 --round-trip --json
  buttermap info
  buttermap import --file data/map.json.zst
  buttermap expand "3 e;n;20 w"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfig(),
		"Path to YAML config (env BUTTERMAP_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Override log level: debug, info, warn, error")

	rootCmd.AddCommand(NewRouteCommand(a))
	rootCmd.AddCommand(NewInfoCommand(a))
	rootCmd.AddCommand(NewImportCommand(a))
	rootCmd.AddCommand(NewExportCommand(a))
	rootCmd.AddCommand(NewExpandCommand())

	return rootCmd
}

func defaultConfig() string {
	if p := os.Getenv("BUTTERMAP_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

// setup loads config and installs the slog handler.
// Logs go to stderr so command output on stdout stays machine-readable.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
