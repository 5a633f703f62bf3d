package parser

import (
	"fmt"
	"path/filepath"
)

// ExpandGlobs expands file paths and glob patterns into a deduplicated list.
// Patterns keep their given order and matches within a pattern are sorted,
// so "grid.GRDECL props/*.GRDECL" always lists the grid file first.
// Patterns that match nothing are returned as-is; reading them reports the
// missing file.
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

		// filepath.Glob returns matches in lexical order.
		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
