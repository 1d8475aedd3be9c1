// Package envvar expands environment references in option values.
package envvar

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} placeholders. Names with dots, like the
// ${target.version} placeholders of recipe files, never match.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Expand replaces ${VAR_NAME} placeholders with their environment variable values.
// Unset variables expand to an empty string.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// ExpandPath expands placeholders in path and a leading ~/ to the home directory.
// Relative paths stay relative.
func ExpandPath(path string) (string, error) {
	path = Expand(path)

	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}

	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// ExpandPaths expands every non-empty path in place.
func ExpandPaths(paths ...*string) error {
	for _, path := range paths {
		if path == nil || *path == "" {
			continue
		}

		expanded, err := ExpandPath(*path)
		if err != nil {
			return err
		}

		*path = expanded
	}

	return nil
}
