package mapping

import (
	"errors"
	"fmt"
	"strings"

	"tree-nesting/internal/filter"
)

// ParsePath parses a dotted filter path into its segments.
// Supports: "name", "books.title".
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	segments := strings.Split(path, filter.PathSeparator)

	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		if !isValidName(segment) {
			return nil, fmt.Errorf("invalid path %q: invalid field name %q", path, segment)
		}
	}

	return segments, nil
}

// ValidatePrefix checks an embedding prefix: object segments each followed by
// a dot, then an optional flat name prefix.
// Supports: "authors.", "meta.author_", "author_", and "" which puts the
// embedded fields straight into the embedding type, as Go struct embedding
// does. An empty-prefix embedding that repeats itself is a cycle.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}

	segments, flat := filter.SplitObjectPrefix(prefix)

	for _, segment := range segments {
		if segment == "" {
			return fmt.Errorf("invalid prefix %q: empty segment", prefix)
		}

		if !isValidName(segment) {
			return fmt.Errorf("invalid prefix %q: invalid object name %q", prefix, segment)
		}
	}

	for _, r := range flat {
		if !isNameRune(r) {
			return fmt.Errorf("invalid prefix %q: invalid character %q", prefix, r)
		}
	}

	return nil
}

// isValidName checks if a string is a valid field name: a letter or
// underscore followed by letters, digits, underscores or dashes.
func isValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isNameRune(r) {
			return false
		}
	}

	return true
}

func isNameRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_' || r == '-'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
