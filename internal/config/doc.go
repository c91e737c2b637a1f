// Package config collects the options of every bowl command into one plain
// struct and validates them.
//
// Values come from command-line flags, BOWL_* environment variables
// (optionally seeded from a dotenv file) and an optional YAML file, in that
// order of precedence. Validation is explicit: ValidateUpload and
// ValidateGradle are called by the command that needs them.
package config
