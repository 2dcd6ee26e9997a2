package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/farellandr/travel-maker/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	port    string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:     "travel-maker",
	Version: config.Version,
	Short:   "Collaborative trip planning backend",
	Long: `travel-maker serves the trip planning API: plans and their members,
day schedules, ordered schedule slots, marker voting and slot confirmation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	config.Version = v
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an env file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (overrides DEBUG)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
}

// loadConfig reads the env file and environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("env file not loaded", "path", envFile, "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	setupLogger(cfg.Debug)
	return cfg, nil
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	var handler slog.Handler
	if debug {
		level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
