package uploader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/bowl/internal/config"
	"github.com/oshokin/bowl/internal/lane"
	"github.com/oshokin/bowl/internal/logger"
	"github.com/oshokin/bowl/internal/qrterm"
)

// Options are inputs accepted by the upload entry point.
type Options struct {
	// Config holds token, base URL, artifact paths, version and lane context file.
	Config *config.Config
	// Out receives the QR code. Defaults to os.Stdout.
	Out io.Writer
}

// Result is what a successful upload publishes.
type Result struct {
	InstallURL string
	Link       string
}

// Run uploads the configured build once and reports the outcome.
// Validation happens before any network I/O. A failure to persist the lane context
// is returned together with the result, after the outcome has been reported.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	ctx = logger.WithName(ctx, "bowl-upload")

	cfg := opts.Config

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	laneCtx, err := loadLaneContext(cfg.LaneContextFile)
	if err != nil {
		return nil, err
	}

	applyLaneDefaults(ctx, cfg, laneCtx)

	if err = config.ValidateUpload(cfg); err != nil {
		return nil, err
	}

	upload := newVersionUpload(cfg)

	logger.Info(ctx, "Starting with file(s) upload to BOWL... this could take some time.")
	logger.DebugKV(ctx, "Uploading build",
		"platform", upload.Platform,
		"file", upload.FilePath,
		"version", upload.Version,
		"mandatory", upload.Mandatory)

	client := NewClient(cfg.BaseURL, cfg.APIToken)

	defer func() {
		_ = client.Close()
	}()

	resp, err := client.PostVersion(ctx, upload)
	if err != nil {
		return nil, err
	}

	result := &Result{
		InstallURL: resp.InstallURL,
		Link:       resp.Link,
	}

	report(ctx, out, result)

	if err = publish(cfg.LaneContextFile, laneCtx, result); err != nil {
		return result, err
	}

	return result, nil
}

// newVersionUpload picks the platform from whichever artifact is set.
func newVersionUpload(cfg *config.Config) *VersionUpload {
	upload := &VersionUpload{
		Platform:  PlatformAndroid,
		FilePath:  cfg.APK,
		Version:   cfg.Version,
		Mandatory: cfg.Mandatory,
	}

	if cfg.IPA != "" {
		upload.Platform = PlatformIOS
		upload.FilePath = cfg.IPA
	}

	return upload
}

// loadLaneContext reads the shared context, or returns an in-memory one when no file is configured.
func loadLaneContext(path string) (*lane.Context, error) {
	if path == "" {
		return lane.New(), nil
	}

	return lane.Load(path)
}

// applyLaneDefaults fills the artifact from earlier build steps when none was given explicitly.
func applyLaneDefaults(ctx context.Context, cfg *config.Config, laneCtx *lane.Context) {
	if cfg.APK != "" || cfg.IPA != "" {
		return
	}

	if apk, ok := laneCtx.Get(lane.GradleAPKOutputPath); ok {
		logger.DebugKV(ctx, "Using APK from lane context", "path", apk)

		cfg.APK = apk

		return
	}

	if ipa, ok := laneCtx.Get(lane.IPAOutputPath); ok {
		logger.DebugKV(ctx, "Using IPA from lane context", "path", ipa)

		cfg.IPA = ipa
	}
}

// publish stores the links in the lane context and persists it when a file is configured.
func publish(path string, laneCtx *lane.Context, result *Result) error {
	laneCtx.Set(lane.DownloadURL, result.InstallURL)
	laneCtx.Set(lane.VersionLink, result.Link)

	if path == "" {
		return nil
	}

	if err := laneCtx.Save(path); err != nil {
		return fmt.Errorf("publish upload result: %w", err)
	}

	return nil
}

// report prints the success messages and the QR code of the install URL.
func report(ctx context.Context, out io.Writer, result *Result) {
	logger.Info(ctx, "Build successfully uploaded to BOWL!")

	if result.InstallURL != "" {
		logger.Info(ctx, "Scan the QR below to test the version")

		if err := qrterm.Render(out, result.InstallURL); err != nil {
			logger.WarnKV(ctx, "Unable to render QR code", "error", err)
		}

		logger.Infof(ctx, "Installation Link: %s", result.InstallURL)
	}

	logger.Info(ctx, "Once you're happy, approve the new version to make it publicly available")

	if result.Link != "" {
		logger.Infof(ctx, "Link to version: %s", result.Link)
	}
}
