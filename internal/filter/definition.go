package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Definition is the filter declared on one embedding. It is immutable once
// constructed; accessors return copies.
type Definition struct {
	depth        *int
	includePaths []string
	excludePaths []string
}

// NewDefinition creates a Definition.
// A nil depth means unlimited; a negative depth is treated as 0.
// Empty include paths mean "no include restriction".
func NewDefinition(depth *int, includePaths, excludePaths []string) Definition {
	var d *int

	if depth != nil {
		v := max(*depth, 0)
		d = &v
	}

	return Definition{
		depth:        d,
		includePaths: normalizePaths(includePaths),
		excludePaths: normalizePaths(excludePaths),
	}
}

// IncludeAll returns the unrestricted definition.
func IncludeAll() Definition {
	return Definition{}
}

// Depth returns the declared depth and whether one was declared.
func (d Definition) Depth() (int, bool) {
	if d.depth == nil {
		return 0, false
	}

	return *d.depth, true
}

// HasIncludePaths returns true if the definition restricts by include paths.
func (d Definition) HasIncludePaths() bool {
	return d.includePaths != nil
}

// IncludePaths returns the declared include paths, sorted.
func (d Definition) IncludePaths() []string {
	return slices.Clone(d.includePaths)
}

// ExcludePaths returns the declared exclude paths, sorted.
func (d Definition) ExcludePaths() []string {
	return slices.Clone(d.excludePaths)
}

// IsUnrestricted returns true if the definition neither limits depth nor
// restricts paths.
func (d Definition) IsUnrestricted() bool {
	return d.depth == nil && d.includePaths == nil && d.excludePaths == nil
}

// Excludes reports whether path is excluded by this definition's own exclude
// paths, either directly or through an excluded ancestor.
func (d Definition) Excludes(path string) bool {
	for _, e := range d.excludePaths {
		if IsPathPrefix(e, path) {
			return true
		}
	}

	return false
}

// Equal returns true if both definitions declare the same filter.
func (d Definition) Equal(other Definition) bool {
	if (d.depth == nil) != (other.depth == nil) {
		return false
	}

	if d.depth != nil && *d.depth != *other.depth {
		return false
	}

	return slices.Equal(d.includePaths, other.includePaths) &&
		slices.Equal(d.excludePaths, other.excludePaths)
}

// String returns a compact, human-readable form of the definition.
func (d Definition) String() string {
	var parts []string

	if d.depth != nil {
		parts = append(parts, "depth="+strconv.Itoa(*d.depth))
	}

	if d.includePaths != nil {
		parts = append(parts, fmt.Sprintf("include=[%s]", strings.Join(d.includePaths, ",")))
	}

	if d.excludePaths != nil {
		parts = append(parts, fmt.Sprintf("exclude=[%s]", strings.Join(d.excludePaths, ",")))
	}

	if len(parts) == 0 {
		return "all"
	}

	return strings.Join(parts, " ")
}
