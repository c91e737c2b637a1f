package lane

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Slots read and written by bowl.
const (
	// DownloadURL receives the install URL of the uploaded build.
	DownloadURL = "BOWL_DOWNLOAD_URL"
	// VersionLink receives the link to the uploaded version in the BOWL backend.
	VersionLink = "BOWL_VERSION_LINK"
	// GradleAPKOutputPath is filled by the Android build step.
	GradleAPKOutputPath = "GRADLE_APK_OUTPUT_PATH"
	// IPAOutputPath is filled by the iOS build step.
	IPAOutputPath = "IPA_OUTPUT_PATH"
)

// DefaultFilePermissions restricts the context file to its owner.
const DefaultFilePermissions = 0o600

// Context is a set of named string values shared between automation steps.
type Context struct {
	values map[string]string
}

// New returns an empty context.
func New() *Context {
	return &Context{values: make(map[string]string)}
}

// Load reads the context stored at path. A missing file yields an empty context.
func Load(path string) (*Context, error) {
	lc := New()

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lc, nil
		}

		return nil, fmt.Errorf("read lane context: %w", err)
	}

	if err = yaml.Unmarshal(contents, &lc.values); err != nil {
		return nil, fmt.Errorf("unmarshal lane context: %w", err)
	}

	if lc.values == nil {
		lc.values = make(map[string]string)
	}

	return lc, nil
}

// Save writes the context to path.
func (c *Context) Save(path string) error {
	data, err := yaml.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("marshal lane context: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write lane context: %w", err)
	}

	return nil
}

// Get returns the value of a slot and whether it is set to a non-empty string.
func (c *Context) Get(key string) (string, bool) {
	value, ok := c.values[key]

	return value, ok && value != ""
}

// Set stores value under key.
func (c *Context) Set(key, value string) {
	c.values[key] = value
}

// Keys lists the populated slots in sorted order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
