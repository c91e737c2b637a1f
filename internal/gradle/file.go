package gradle

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/bowl/internal/bowlerr"
	"github.com/oshokin/bowl/internal/logger"
)

// BuildFileName is the build script looked up inside the project directory.
const BuildFileName = "build.gradle"

// BuildFiles lists the build files under dir. The directory may be a glob pattern.
// When the pattern is malformed or matches nothing, dir is taken literally.
func BuildFiles(dir string) []string {
	path := filepath.Join(dir, BuildFileName)

	paths, err := filepath.Glob(path)
	if err == nil && len(paths) > 0 {
		return paths
	}

	if _, err = os.Stat(path); err == nil {
		return []string{path}
	}

	return nil
}

// GetProperty returns the value of the first assignment of key in the build files under dir.
// A missing file or key yields an empty string and no error.
func GetProperty(ctx context.Context, dir, key string) (string, error) {
	prop, err := NewProperty(key)
	if err != nil {
		return "", err
	}

	paths := BuildFiles(dir)

	for _, path := range paths {
		value, found, err := readProperty(path, prop)
		if err != nil {
			return "", err
		}

		if found {
			logger.DebugKV(ctx, "Property found", "path", path, "key", key, "value", value)
			return value, nil
		}
	}

	logger.DebugKV(ctx, "Property not found", "dir", dir, "key", key, "files", len(paths))

	return "", nil
}

// SetProperty replaces the value of the first assignment of key in the build files under dir.
// The file is swapped atomically. When nothing matches, no file is touched.
func SetProperty(ctx context.Context, dir, key, value string) error {
	prop, err := NewProperty(key)
	if err != nil {
		return err
	}

	if !IsReadable(value) {
		logger.WarnKV(ctx, "Value contains characters that will not be read back in full",
			"key", key, "value", value)
	}

	paths := BuildFiles(dir)

	for _, path := range paths {
		changed, err := rewriteProperty(path, prop, value)
		if err != nil {
			return err
		}

		if changed {
			logger.DebugKV(ctx, "Property updated", "path", path, "key", key, "value", value)
			return nil
		}
	}

	logger.DebugKV(ctx, "Property not found, nothing to update", "dir", dir, "key", key, "files", len(paths))

	return nil
}

// readProperty scans path line by line and stops at the first assignment of prop.
func readProperty(path string, prop *Property) (string, bool, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}

		return "", false, bowlerr.NewFileIOError("open "+path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	reader := bufio.NewReader(file)

	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			if value, ok := prop.Value(line); ok {
				return value, true, nil
			}
		}

		if errors.Is(readErr, io.EOF) {
			return "", false, nil
		}

		if readErr != nil {
			return "", false, bowlerr.NewFileIOError("read "+path, readErr)
		}
	}
}

// rewriteProperty replaces the first assignment of prop in path and reports whether it did.
func rewriteProperty(path string, prop *Property, value string) (bool, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, bowlerr.NewFileIOError("stat "+path, err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return false, bowlerr.NewFileIOError("read "+path, err)
	}

	var (
		out     bytes.Buffer
		changed bool
	)

	out.Grow(len(contents) + len(value))

	for _, line := range bytes.SplitAfter(contents, []byte("\n")) {
		if changed {
			out.Write(line)
			continue
		}

		replaced, ok := prop.Replace(string(line), value)
		changed = ok
		out.WriteString(replaced)
	}

	if !changed {
		return false, nil
	}

	options := goupdate.Options{
		TargetPath: path,
		TargetMode: info.Mode().Perm(),
	}

	if err = goupdate.Apply(&out, options); err != nil {
		return false, bowlerr.NewFileIOError("replace "+path, err)
	}

	return true, nil
}
