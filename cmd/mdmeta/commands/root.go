// Package commands implements the CLI commands for mdmeta.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/mdmeta/cmd"
	"github.com/thoreinstein/mdmeta/internal/config"
	"github.com/thoreinstein/mdmeta/internal/errors"
	"github.com/thoreinstein/mdmeta/internal/logging"
)

// Domain flags.
var (
	overrideFlag bool
	inplaceFlag  bool
)

// cfgFile holds the value of the --config flag.
var cfgFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// loadedConfig holds the merged flag/env/file configuration.
var loadedConfig *config.Config

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().String("model", config.DefaultModel,
		"completion model identifier")
	rootCmd.Flags().Float64("temperature", config.DefaultTemperature,
		"sampling temperature in [0, 1]")
	rootCmd.Flags().String("base-url", config.DefaultBaseURL,
		"completion endpoint base URL")
	rootCmd.Flags().BoolVar(&overrideFlag, "override", false,
		"replace existing head metadata instead of skipping")
	rootCmd.Flags().BoolVar(&inplaceFlag, "inplace", false,
		"write the result back to the file instead of stdout")

	// Flags take precedence over environment and config file values.
	_ = viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("temperature", rootCmd.Flags().Lookup("temperature"))
	_ = viper.BindPFlag("base_url", rootCmd.Flags().Lookup("base-url"))

	// Ambient persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/mdmeta/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	// Add version flag
	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("mdmeta version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(cfgFile)
}

var rootCmd = &cobra.Command{
	Use:   "mdmeta [flags] [FILENAME]",
	Short: "Generate head metadata for markdown articles with front matter",
	Long: `mdmeta reads a markdown file with YAML front matter, asks a chat
completion endpoint for a short description and a keyword list for the
article body, and folds the result into the front matter under the "head"
key.

Existing head metadata blocks the update unless --override is given. The
result goes to stdout by default; --inplace rewrites the file atomically.

The OPENAI_API_KEY environment variable must be set.`,
	Example: `  # Print the annotated document to stdout
  mdmeta article.md

  # Rewrite the file in place with a different model
  mdmeta --inplace --model gpt-4o-mini article.md

  # Replace metadata written on a previous run
  mdmeta --override --inplace article.md

  # Pick the file interactively (requires a terminal)
  mdmeta`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		// Config errors wait until logging works so they get reported properly.
		if cmd.Name() != "help" && cmd.Name() != "version" && configLoadErr != nil {
			return errors.NewUserError(configLoadErr, "Check your config file or pass --config")
		}
		return nil
	},
	RunE: runGenerate,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("MDMETA_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	logger, err := logging.NewTeed(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}, logFile)
	if err != nil {
		return errors.NewUserError(err, "failed to open log file")
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
