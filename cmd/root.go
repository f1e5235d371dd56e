// Package cmd implements the libris command line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/tkarvinen/libris/googlebooks"
	"github.com/tkarvinen/libris/internal/config"
	"github.com/tkarvinen/libris/internal/ratelimit"
)

// outputJSON controls whether commands print raw JSON instead of formatted text.
var outputJSON bool

// CLI represents the complete command structure for the libris application
type CLI struct {
	// Global flags
	JSON   bool   `help:"Print raw JSON instead of formatted output"`
	Debug  bool   `help:"Enable debug logging"`
	APIKey string `help:"Google Books API key (overrides config file and environment)"`

	Search SearchCmd `cmd:"" help:"Search the Google Books catalog"`
	Volume VolumeCmd `cmd:"" help:"Fetch a single volume by its ID"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(slog.LevelInfo)

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("libris"),
		kong.Description("Search the Google Books catalog from the command line."),
		kong.UsageOnError(),
	)

	if cli.Debug {
		initLogging(slog.LevelDebug)
	}

	initConfig()

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("googlebooks.maxresults", 10)

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/libris")

	// The config file is optional; only a malformed one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetAPIKey(cli.APIKey)
	outputJSON = cli.JSON
}

// newClient constructs the API client from the global configuration. The
// public API allows roughly one anonymous request per second before it starts
// answering 429, so requests are throttled client-side to match.
func newClient() *googlebooks.Client {
	opts := []googlebooks.Option{
		googlebooks.WithRateLimiter(ratelimit.New("GoogleBooks", 1)),
	}
	if config.APIKey != "" {
		opts = append(opts, googlebooks.WithAPIKey(config.APIKey))
	}
	if config.BaseURL != "" {
		opts = append(opts, googlebooks.WithBaseURL(config.BaseURL))
	}
	return googlebooks.NewClient(opts...)
}

func initLogging(level slog.Level) {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
