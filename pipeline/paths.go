package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
)

// ResolvePaths expands glob patterns (with ** support) into model files.
// Plain paths are kept verbatim, repeats included, so that each one gets its
// own result. A glob match already listed is skipped. Order is kept.
func ResolvePaths(patterns []string) ([]string, error) {
	if err := validateInput(patterns); err != nil {
		return nil, err
	}

	var out []string
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			seen[filepath.Clean(pattern)] = struct{}{}
			out = append(out, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, oops.In("pipeline").Code("bad_pattern").With("pattern", pattern).Wrapf(err, "glob error")
		}
		if len(matches) == 0 {
			return nil, oops.In("pipeline").Code("no_match").With("pattern", pattern).Errorf("no files match pattern: %s", pattern)
		}
		for _, m := range matches {
			key := filepath.Clean(m)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

func validateInput(paths []string) error {
	if len(paths) == 0 {
		return oops.In("pipeline").Code("invalid_input").Wrapf(ErrInvalidInput, "no model paths given")
	}
	for i, p := range paths {
		if strings.TrimSpace(p) == "" {
			return oops.In("pipeline").Code("invalid_input").With("index", i).Wrapf(ErrInvalidInput, "empty model path")
		}
	}
	return nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
