package filter

import (
	"maps"
	"slices"
)

// PathTracker records the paths visited under one Definition during a schema
// build pass, and derives which declared paths never matched anything.
//
// A tracker is mutated by a single build pass and must not be shared between
// concurrent builds.
type PathTracker struct {
	definition  Definition
	encountered map[string]struct{}
}

// NewPathTracker creates a tracker bound to the given definition.
func NewPathTracker(definition Definition) *PathTracker {
	return &PathTracker{
		definition:  definition,
		encountered: make(map[string]struct{}),
	}
}

// Definition returns the definition this tracker is bound to.
func (t *PathTracker) Definition() Definition {
	return t.definition
}

// RecordEncountered marks a path, relative to the definition's root, as visited.
func (t *PathTracker) RecordEncountered(relativePath string) {
	t.encountered[relativePath] = struct{}{}
}

// EncounteredPaths returns every recorded path, sorted.
func (t *PathTracker) EncounteredPaths() []string {
	return slices.Sorted(maps.Keys(t.encountered))
}

// UsefulIncludePaths returns the declared include paths that matched at least
// one encountered path.
func (t *PathTracker) UsefulIncludePaths() []string {
	useful, _ := t.partition(t.definition.includePaths)
	return useful
}

// UselessIncludePaths returns the declared include paths that never matched.
func (t *PathTracker) UselessIncludePaths() []string {
	_, useless := t.partition(t.definition.includePaths)
	return useless
}

// UsefulExcludePaths returns the declared exclude paths that matched at least
// one encountered path.
func (t *PathTracker) UsefulExcludePaths() []string {
	useful, _ := t.partition(t.definition.excludePaths)
	return useful
}

// UselessExcludePaths returns the declared exclude paths that never matched.
func (t *PathTracker) UselessExcludePaths() []string {
	_, useless := t.partition(t.definition.excludePaths)
	return useless
}

// partition splits declared paths into those that are equal to, or a prefix
// of, some encountered path, and the rest.
func (t *PathTracker) partition(declared []string) (useful, useless []string) {
	useful = []string{}
	useless = []string{}

	for _, p := range declared {
		if t.matches(p) {
			useful = append(useful, p)
		} else {
			useless = append(useless, p)
		}
	}

	return useful, useless
}

func (t *PathTracker) matches(declared string) bool {
	if _, ok := t.encountered[declared]; ok {
		return true
	}

	for encountered := range t.encountered {
		if IsPathPrefix(declared, encountered) {
			return true
		}
	}

	return false
}
