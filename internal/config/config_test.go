package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/bowl/internal/bowlerr"
)

// TestValidateUpload walks through every rejection path and the happy path.
func TestValidateUpload(t *testing.T) {
	t.Parallel()

	apk := filepath.Join(t.TempDir(), "app-release.apk")
	require.NoError(t, os.WriteFile(apk, []byte("apk"), 0o600))

	valid := func() *Config {
		return &Config{
			APIToken: "token",
			BaseURL:  "https://bowl.example.com",
			Version:  "1.2.3",
			APK:      apk,
		}
	}

	cases := map[string]struct {
		mutate  func(*Config)
		message string
	}{
		"missing token": {
			mutate:  func(c *Config) { c.APIToken = "" },
			message: "No M2M API token given, pass using `--m2m-api-token` or BOWL_M2M_API_TOKEN",
		},
		"missing base url": {
			mutate:  func(c *Config) { c.BaseURL = "" },
			message: "No base URL given, pass using `--base-url` or BOWL_BASE_URL",
		},
		"relative base url": {
			mutate:  func(c *Config) { c.BaseURL = "bowl.example.com" },
			message: "Invalid base URL 'bowl.example.com'",
		},
		"missing version": {
			mutate:  func(c *Config) { c.Version = "" },
			message: "No version given, pass using `--version` or BOWL_APP_VERSION",
		},
		"no build file": {
			mutate:  func(c *Config) { c.APK = "" },
			message: "You have to provide a build file (params 'apk' or 'ipa')",
		},
		"both build files": {
			mutate:  func(c *Config) { c.IPA = apk },
			message: "You can't use 'apk' and 'ipa' options in one run",
		},
		"missing ipa file": {
			mutate: func(c *Config) {
				c.APK = ""
				c.IPA = filepath.Join(filepath.Dir(apk), "missing.ipa")
			},
			message: "Couldn't find ipa file at path '" + filepath.Join(filepath.Dir(apk), "missing.ipa") + "'",
		},
	}

	for name, tc := range cases {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(cfg)

			err := ValidateUpload(cfg)

			var validationErr *bowlerr.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.message, validationErr.Msg)
		})
	}

	require.NoError(t, ValidateUpload(valid()))
}

// TestValidateGradle checks the key requirement and the project dir default.
func TestValidateGradle(t *testing.T) {
	t.Parallel()

	cfg := new(Config)

	var validationErr *bowlerr.ValidationError
	require.ErrorAs(t, ValidateGradle(cfg), &validationErr)

	cfg.Key = "versionName"
	require.NoError(t, ValidateGradle(cfg))
	require.Equal(t, DefaultAppProjectDir, cfg.AppProjectDir)
}

// TestLoad_Precedence verifies flag > env > file > default ordering.
func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bowl.yaml")
	contents := []byte("base_url: https://file.example.com\nversion: 1.0.0\napk: file.apk\nmandatory: false\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	t.Setenv("BOWL_APP_VERSION", "2.0.0")
	t.Setenv("BOWL_APK", "env.apk")
	t.Setenv("BOWL_APP_VERSION_MANDATORY", "true")

	flags := pflag.NewFlagSet("upload", pflag.ContinueOnError)
	flags.String(FlagName(KeyAPK), "", "")
	flags.String(FlagName(KeyIPA), "", "")
	require.NoError(t, flags.Parse([]string{"--apk", "flag.apk"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	require.Equal(t, "https://file.example.com", cfg.BaseURL)
	require.Equal(t, "2.0.0", cfg.Version)
	require.Equal(t, "flag.apk", cfg.APK)
	require.Empty(t, cfg.IPA)
	require.True(t, cfg.Mandatory)
	require.Equal(t, DefaultAppProjectDir, cfg.AppProjectDir)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

// TestLoad_MissingExplicitFile ensures an explicitly requested file must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)

	var ioErr *bowlerr.FileIOError
	require.ErrorAs(t, err, &ioErr)
}

// TestLoadEnvFile exports new variables and leaves existing ones alone.
func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	contents := []byte("BOWL_TEST_DOTENV_TOKEN=from-file\nBOWL_TEST_DOTENV_PRESET=from-file\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	t.Setenv("BOWL_TEST_DOTENV_PRESET", "from-shell")
	t.Cleanup(func() {
		_ = os.Unsetenv("BOWL_TEST_DOTENV_TOKEN")
	})

	require.NoError(t, LoadEnvFile(""))
	require.NoError(t, LoadEnvFile(path))
	require.Equal(t, "from-file", os.Getenv("BOWL_TEST_DOTENV_TOKEN"))
	require.Equal(t, "from-shell", os.Getenv("BOWL_TEST_DOTENV_PRESET"))

	require.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
