package nesting

import (
	"maps"
	"slices"
	"strings"

	"tree-nesting/internal/filter"
)

// pathSet is a set of dotted paths relative to a context. A nil pathSet means
// "no restriction" for include sets and "nothing" for exclude sets; an empty,
// non-nil include set means nothing can be included.
type pathSet map[string]struct{}

func newPathSet(paths []string) pathSet {
	if paths == nil {
		return nil
	}

	s := make(pathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}

	return s
}

func (s pathSet) has(path string) bool {
	_, ok := s[path]
	return ok
}

// leadsTo reports whether path is an entry or the prefix of one.
func (s pathSet) leadsTo(path string) bool {
	if s.has(path) {
		return true
	}

	for entry := range s {
		if filter.IsPathPrefix(path, entry) {
			return true
		}
	}

	return false
}

// under returns the entries starting with prefix, with prefix stripped.
// prefix is either an object prefix ending with a dot or a flat-name prefix.
func (s pathSet) under(prefix string) pathSet {
	if s == nil {
		return nil
	}

	result := make(pathSet)

	for entry := range s {
		if len(entry) > len(prefix) && strings.HasPrefix(entry, prefix) {
			result[entry[len(prefix):]] = struct{}{}
		}
	}

	return result
}

func (s pathSet) sorted() []string {
	if s == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(s))
}

// intersectPaths keeps the paths reachable under both include sets: an entry
// of one set survives if it is an entry, or the prefix of an entry, of the
// other. nil stands for "unrestricted".
func intersectPaths(a, b pathSet) pathSet {
	if a == nil {
		return maps.Clone(b)
	}

	if b == nil {
		return maps.Clone(a)
	}

	result := make(pathSet)

	for entry := range a {
		if b.leadsTo(entry) {
			result[entry] = struct{}{}
		}
	}

	for entry := range b {
		if a.leadsTo(entry) {
			result[entry] = struct{}{}
		}
	}

	return result
}

func unionPaths(a, b pathSet) pathSet {
	if a == nil && b == nil {
		return nil
	}

	result := make(pathSet, len(a)+len(b))
	maps.Copy(result, a)
	maps.Copy(result, b)

	return result
}
