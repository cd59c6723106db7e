package pathing

import (
	"path/filepath"
	"strings"
)

// Stdin is the input path that stands for standard input.
const Stdin = "-"

// NormalizeInputPath trims path-like input from flags and cleans it.
// Stdin and empty paths are returned unchanged.
func NormalizeInputPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == Stdin {
		return path
	}
	return filepath.Clean(path)
}

// NormalizeInputPaths normalizes every path, dropping empty entries.
// No paths at all means standard input.
func NormalizeInputPaths(paths []string) []string {
	normalized := make([]string, 0, len(paths))
	for _, path := range paths {
		if path = NormalizeInputPath(path); path != "" {
			normalized = append(normalized, path)
		}
	}
	if len(normalized) == 0 {
		return []string{Stdin}
	}
	return normalized
}

// IsStdin reports whether path names standard input.
func IsStdin(path string) bool {
	return NormalizeInputPath(path) == Stdin
}

// DisplayName is the name used for an input in diagnostics.
func DisplayName(path string) string {
	if IsStdin(path) {
		return "<stdin>"
	}
	return filepath.ToSlash(NormalizeInputPath(path))
}
