package steps

import (
	"fmt"
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// resolveArtifacts matches every pattern against fsys. found holds the first
// regular file each matching pattern resolved to, in pattern order; missing
// holds the patterns that matched no regular file.
func resolveArtifacts(fsys fs.FS, patterns []string) (found, missing []string, err error) {
	for _, pattern := range patterns {
		match, err := matchFile(fsys, pattern)
		if err != nil {
			return nil, nil, err
		}
		if match == "" {
			missing = append(missing, pattern)
			continue
		}
		found = append(found, match)
	}
	return found, missing, nil
}

// matchFile returns the lexically first regular file matching pattern, or
// "" when there is none.
func matchFile(fsys fs.FS, pattern string) (string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}
	slices.Sort(matches)
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", m, err)
		}
		if !info.IsDir() {
			return m, nil
		}
	}
	return "", nil
}
