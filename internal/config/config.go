package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oshokin/bowl/internal/bowlerr"
)

// Config holds every option understood by the bowl commands.
type Config struct {
	// APIToken is the machine-to-machine token sent as X-M2M-Auth-Token.
	APIToken string `mapstructure:"m2m_api_token"`
	// BaseURL is the root of the BOWL backend, e.g. https://bowl.example.com.
	BaseURL string `mapstructure:"base_url"`
	// APK is the path to an Android artifact. Mutually exclusive with IPA.
	APK string `mapstructure:"apk"`
	// IPA is the path to an iOS artifact. Mutually exclusive with APK.
	IPA string `mapstructure:"ipa"`
	// Version is the version string reported to the backend.
	Version string `mapstructure:"version"`
	// Mandatory marks the uploaded version as a mandatory update.
	Mandatory bool `mapstructure:"mandatory"`
	// AppProjectDir is the folder holding build.gradle.
	AppProjectDir string `mapstructure:"app_project_dir"`
	// Key is the Gradle property name.
	Key string `mapstructure:"key"`
	// Value is the new Gradle property value.
	Value string `mapstructure:"value"`
	// LaneContextFile is the YAML file shared with the calling automation.
	LaneContextFile string `mapstructure:"lane_context"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Option keys as used in the YAML file.
const (
	KeyAPIToken      = "m2m_api_token"
	KeyBaseURL       = "base_url"
	KeyAPK           = "apk"
	KeyIPA           = "ipa"
	KeyVersion       = "version"
	KeyMandatory     = "mandatory"
	KeyAppProjectDir = "app_project_dir"
	KeyKey           = "key"
	KeyValue         = "value"
	KeyLaneContext   = "lane_context"
	KeyLogLevel      = "log_level"
)

const (
	// DefaultConfigName is looked up as ./bowl.yaml when no --config is given.
	DefaultConfigName = "bowl"

	// DefaultAppProjectDir is the Android application module of a typical project.
	DefaultAppProjectDir = "android/app"

	// DefaultLogLevel is used when nothing else is configured.
	DefaultLogLevel = "info"
)

// binding ties one option to its environment variable and command-line flag.
type binding struct {
	key  string
	env  string
	flag string
}

// bindings is the option table. Key and value have no environment variable.
//
//nolint:gochecknoglobals // Static lookup table.
var bindings = []binding{
	{key: KeyAPIToken, env: "BOWL_M2M_API_TOKEN", flag: "m2m-api-token"},
	{key: KeyBaseURL, env: "BOWL_BASE_URL", flag: "base-url"},
	{key: KeyAPK, env: "BOWL_APK", flag: "apk"},
	{key: KeyIPA, env: "BOWL_IPA", flag: "ipa"},
	{key: KeyVersion, env: "BOWL_APP_VERSION", flag: "version"},
	{key: KeyMandatory, env: "BOWL_APP_VERSION_MANDATORY", flag: "mandatory"},
	{key: KeyAppProjectDir, env: "BOWL_APP_PROJECT_DIR", flag: "app-project-dir"},
	{key: KeyKey, flag: "key"},
	{key: KeyValue, flag: "value"},
	{key: KeyLaneContext, env: "BOWL_LANE_CONTEXT", flag: "lane-context"},
	{key: KeyLogLevel, env: "BOWL_LOG_LEVEL", flag: "log-level"},
}

// FlagName returns the command-line flag bound to the option key.
func FlagName(key string) string {
	for _, b := range bindings {
		if b.key == key {
			return b.flag
		}
	}

	return ""
}

// LoadEnvFile exports the variables of a dotenv file that are not already set.
// An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(filepath.Clean(path)); err != nil {
		return bowlerr.NewFileIOError("load env file "+path, err)
	}

	return nil
}

// Load builds the configuration from flags, environment and the YAML file at path.
// When path is empty, ./bowl.yaml is used if it exists.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyAppProjectDir, DefaultAppProjectDir)
	v.SetDefault(KeyMandatory, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, bowlerr.NewFileIOError("read config file", err)
		}
	}

	for _, b := range bindings {
		if b.env != "" {
			if err := v.BindEnv(b.key, b.env); err != nil {
				return nil, fmt.Errorf("bind env %s: %w", b.env, err)
			}
		}

		if flags == nil {
			continue
		}

		if flag := flags.Lookup(b.flag); flag != nil {
			if err := v.BindPFlag(b.key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", b.flag, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateUpload checks the options of the upload command.
func ValidateUpload(cfg *Config) error {
	if cfg.APIToken == "" {
		return bowlerr.NewValidationError(
			"No M2M API token given, pass using `--m2m-api-token` or BOWL_M2M_API_TOKEN")
	}

	if cfg.BaseURL == "" {
		return bowlerr.NewValidationError("No base URL given, pass using `--base-url` or BOWL_BASE_URL")
	}

	if parsed, err := url.ParseRequestURI(cfg.BaseURL); err != nil || parsed.Host == "" {
		return bowlerr.NewValidationError(fmt.Sprintf("Invalid base URL '%s'", cfg.BaseURL))
	}

	if cfg.Version == "" {
		return bowlerr.NewValidationError("No version given, pass using `--version` or BOWL_APP_VERSION")
	}

	switch {
	case cfg.APK != "" && cfg.IPA != "":
		return bowlerr.NewValidationError("You can't use 'apk' and 'ipa' options in one run")
	case cfg.APK == "" && cfg.IPA == "":
		return bowlerr.NewValidationError("You have to provide a build file (params 'apk' or 'ipa')")
	case cfg.APK != "":
		return checkArtifact("apk", cfg.APK)
	default:
		return checkArtifact("ipa", cfg.IPA)
	}
}

// ValidateGradle checks the options of the Gradle property commands and fills defaults.
func ValidateGradle(cfg *Config) error {
	if cfg.Key == "" {
		return bowlerr.NewValidationError("No property key given, pass using `--key`")
	}

	if cfg.AppProjectDir == "" {
		cfg.AppProjectDir = DefaultAppProjectDir
	}

	return nil
}

// checkArtifact makes sure the build file exists and is a regular file.
func checkArtifact(kind, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return bowlerr.NewValidationError(fmt.Sprintf("Couldn't find %s file at path '%s'", kind, path))
	}

	return nil
}
