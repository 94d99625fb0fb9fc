package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsVocabFile reports whether path has a YAML extension.
func IsVocabFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

// Expand resolves file names, directories and glob patterns to YAML files.
// Directories are searched recursively. Results keep the order of the
// patterns and contain no duplicates.
//
// Examples:
//   - "vocab.yml" → ["vocab.yml"]
//   - "vocabs/*.yml" → ["vocabs/a.yml", "vocabs/b.yml"]
//   - "vocabs" → every .yml/.yaml file below vocabs
func Expand(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := expandPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	return resolved, nil
}

func expandPattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !IsVocabFile(pattern) {
				return nil, fmt.Errorf("not a YAML file: %s", pattern)
			}
			return []string{filepath.Clean(pattern)}, nil
		}
		pattern = filepath.Join(pattern, "**", "*.{yml,yaml}")
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() || !IsVocabFile(match) {
			continue
		}
		files = append(files, match)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no vocabulary files match pattern: %s", pattern)
	}
	return files, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
