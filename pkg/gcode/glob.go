package gcode

import (
	"fmt"
	"path/filepath"
)

// ExpandGlobs expands file paths and glob patterns into a deduplicated list of
// paths. Arguments keep their command-line order; matches of one pattern are
// in lexical order. Patterns that match nothing are returned as-is so the
// caller reports the missing file.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
