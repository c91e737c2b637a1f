package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/bowl/internal/config"
	"github.com/oshokin/bowl/internal/service/uploader"
)

// uploadCmd uploads one build to the BOWL backend.
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload an APK or IPA to BOWL.",
	Long: `Uploads a single build to the BOWL backend and prints a QR code of the
install URL. Exactly one of --apk or --ipa must be given, unless the lane
context file provides GRADLE_APK_OUTPUT_PATH or IPA_OUTPUT_PATH.

On success the install URL and the version link are stored in the lane context
as BOWL_DOWNLOAD_URL and BOWL_VERSION_LINK. The upload is never retried.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		_, err = uploader.Run(ctx, &uploader.Options{
			Config: cfg,
			Out:    cmd.OutOrStdout(),
		})

		return err
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := uploadCmd.Flags()

	flags.String(config.FlagName(config.KeyAPIToken), "", "M2M API token (env BOWL_M2M_API_TOKEN)")
	flags.String(config.FlagName(config.KeyBaseURL), "", "BOWL backend base URL (env BOWL_BASE_URL)")
	flags.String(config.FlagName(config.KeyAPK), "", "path to the APK file (env BOWL_APK)")
	flags.String(config.FlagName(config.KeyIPA), "", "path to the IPA file (env BOWL_IPA)")
	flags.String(config.FlagName(config.KeyVersion), "", "version of the build (env BOWL_APP_VERSION)")
	flags.Bool(config.FlagName(config.KeyMandatory), false,
		"mark this version as a mandatory update (env BOWL_APP_VERSION_MANDATORY)")
	flags.String(config.FlagName(config.KeyLaneContext), "",
		"YAML file shared with the calling automation (env BOWL_LANE_CONTEXT)")

	uploadCmd.MarkFlagsMutuallyExclusive(config.FlagName(config.KeyAPK), config.FlagName(config.KeyIPA))

	rootCmd.AddCommand(uploadCmd)
}
