package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/bowl/internal/config"
	"github.com/oshokin/bowl/internal/service/property"
)

var (
	// getGradlePropertyCmd prints the value of a build.gradle property.
	getGradlePropertyCmd = &cobra.Command{
		Use:   "get-gradle-property",
		Short: "Print the value of a property in build.gradle.",
		Long: `Prints the value of the first assignment of --key in
<app-project-dir>/build.gradle. Prints an empty line when the file or the key
does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			value, err := property.Get(context.Background(), cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)

			return err
		},
	}

	// setGradlePropertyCmd rewrites the value of a build.gradle property.
	setGradlePropertyCmd = &cobra.Command{
		Use:   "set-gradle-property",
		Short: "Set the value of a property in build.gradle.",
		Long: `Replaces the value of the first assignment of --key in
<app-project-dir>/build.gradle, keeping quotes and trailing comments. The file
is left untouched when the key does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return property.Set(context.Background(), cfg)
		},
	}
)

// addProjectFlags registers the flags shared by both property commands.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String(config.FlagName(config.KeyAppProjectDir), config.DefaultAppProjectDir,
		"application folder of the Android project (env BOWL_APP_PROJECT_DIR)")
	cmd.Flags().String(config.FlagName(config.KeyKey), "", "property key")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addProjectFlags(getGradlePropertyCmd)

	addProjectFlags(setGradlePropertyCmd)
	setGradlePropertyCmd.Flags().String(config.FlagName(config.KeyValue), "", "new property value")

	rootCmd.AddCommand(getGradlePropertyCmd, setGradlePropertyCmd)
}
