package property

import (
	"context"

	"github.com/oshokin/bowl/internal/config"
	"github.com/oshokin/bowl/internal/gradle"
	"github.com/oshokin/bowl/internal/logger"
)

// Get validates the options and returns the current value of the configured key.
func Get(ctx context.Context, cfg *config.Config) (string, error) {
	ctx = logger.WithName(ctx, "bowl-gradle")

	if err := config.ValidateGradle(cfg); err != nil {
		return "", err
	}

	ctx = logger.WithKV(ctx, "app_project_dir", cfg.AppProjectDir)

	return gradle.GetProperty(ctx, cfg.AppProjectDir, cfg.Key)
}

// Set validates the options and writes the configured value for the configured key.
func Set(ctx context.Context, cfg *config.Config) error {
	ctx = logger.WithName(ctx, "bowl-gradle")

	if err := config.ValidateGradle(cfg); err != nil {
		return err
	}

	ctx = logger.WithKV(ctx, "app_project_dir", cfg.AppProjectDir)

	if err := gradle.SetProperty(ctx, cfg.AppProjectDir, cfg.Key, cfg.Value); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Gradle property set", "key", cfg.Key, "value", cfg.Value)

	return nil
}
