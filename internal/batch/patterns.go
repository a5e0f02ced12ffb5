package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
)

// matches applies include/exclude globs to a slash-separated relative path.
// Empty includes means "match all". Excludes always win. Each pattern is
// tried against both the full relative path and the base name, so "*.txt"
// works at any depth without requiring "**/*.txt".
func matches(relPath string, includes, excludes []string) (bool, error) {
	included := len(includes) == 0

	if !included {
		var err error

		included, err = matchAny(includes, relPath)
		if err != nil {
			return false, err
		}
	}

	if !included {
		return false, nil
	}

	excluded, err := matchAny(excludes, relPath)
	if err != nil {
		return false, err
	}

	return !excluded, nil
}

func matchAny(patterns []string, relPath string) (bool, error) {
	base := path.Base(relPath)

	for _, pattern := range patterns {
		for _, candidate := range []string{relPath, base} {
			ok, err := doublestar.Match(pattern, candidate)
			if err != nil {
				return false, fmt.Errorf("pattern %q: %w", pattern, err)
			}

			if ok {
				return true, nil
			}
		}
	}

	return false, nil
}

// LoadPatterns reads a JSONC file holding an array of glob patterns.
func LoadPatterns(filename string) ([]string, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading patterns file %q: %w", filename, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var patterns []string
	if err := json.Unmarshal(clean, &patterns); err != nil {
		return nil, fmt.Errorf("parsing patterns file %q: %w", filename, err)
	}

	return patterns, nil
}
