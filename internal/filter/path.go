package filter

import (
	"slices"
	"strings"
)

// PathSeparator separates the segments of a field path.
const PathSeparator = "."

// IsPathPrefix reports whether prefix is path itself or one of its ancestors,
// segment-wise: "a.b" is a prefix of "a.b" and "a.b.c" but not of "a.bc".
func IsPathPrefix(prefix, path string) bool {
	if prefix == "" {
		return false
	}

	if prefix == path {
		return true
	}

	return strings.HasPrefix(path, prefix) && strings.HasPrefix(path[len(prefix):], PathSeparator)
}

// SplitObjectPrefix splits a relative prefix into its object segments and the
// trailing flat-name prefix.
// Examples:
//   - "author." -> ["author"], ""
//   - "a.b.c_" -> ["a", "b"], "c_"
//   - "c_" -> [], "c_"
func SplitObjectPrefix(prefix string) ([]string, string) {
	idx := strings.LastIndex(prefix, PathSeparator)
	if idx < 0 {
		return nil, prefix
	}

	return strings.Split(prefix[:idx], PathSeparator), prefix[idx+1:]
}

// normalizePaths copies, de-duplicates and sorts paths. Empty input yields nil.
func normalizePaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))

	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		result = append(result, p)
	}

	slices.Sort(result)

	return result
}
