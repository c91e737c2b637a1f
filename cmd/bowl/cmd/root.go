package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/bowl/internal/bowlerr"
	"github.com/oshokin/bowl/internal/config"
	"github.com/oshokin/bowl/internal/logger"
	"github.com/oshokin/bowl/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// envFile is an optional dotenv file loaded before options are resolved.
	envFile string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "bowl",
		Short: "Upload mobile builds to BOWL and edit Gradle build properties.",
		Long: `Automation helpers for shipping Android and iOS builds through BOWL.

Every option can be given as a flag, as a BOWL_* environment variable or in a
YAML configuration file (./bowl.yaml unless --config is set). Flags win over
environment variables, which win over the file.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnvFile(envFile)
		},
	}
)

// Execute runs the bowl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(context.Background(), bowlerr.UserMessage(err))
		os.Exit(1)
	}
}

// loadConfig resolves the options of cmd and applies the configured log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, bowlerr.NewValidationError(fmt.Sprintf("Unknown log level '%s'", cfg.LogLevel))
	}

	logger.SetLevel(level)

	return cfg, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgPath, "config", "c", "", "path to YAML configuration file (default ./bowl.yaml when present)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file to export before resolving options")
	flags.String(config.FlagName(config.KeyLogLevel), config.DefaultLogLevel,
		"log level: debug, info, warn or error (env BOWL_LOG_LEVEL)")
}
