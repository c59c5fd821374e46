package nesting

import (
	"strings"

	"tree-nesting/internal/filter"
)

// composition is one accepted embedding on the ancestor chain.
type composition struct {
	parent *composition
	// element is the embedding declaration that produced this composition.
	element MappingElement
	// prefix locates this composition's root in the parent composition's
	// coordinates.
	prefix     string
	definition filter.Definition
	tracker    *filter.PathTracker
}

// NestComposed layers an embedding's filter on top of the current context.
//
// It returns the builder's result and true when the embedded subtree is
// reachable, or the zero value and false when it is not; in the latter case
// the builder is never called and nothing is recorded. An unbounded embedding
// repeating itself on the ancestor chain fails with the error created by
// newCycleErr (DefaultCyclicRecursionError when nil).
//
// relativePrefix is made of object segments followed by an optional flat-name
// prefix: "author." nests fields under an "author" object, "a.b_" nests them
// under an "a" object with a "b_" name prefix.
func NestComposed[T any](
	c *Context,
	element MappingElement,
	relativePrefix string,
	definition filter.Definition,
	tracker *filter.PathTracker,
	builder NestedContextBuilder[T],
	newCycleErr CyclicRecursionErrorFactory,
) (T, bool, error) {
	var zero T

	if newCycleErr == nil {
		newCycleErr = DefaultCyclicRecursionError
	}

	if err := c.checkCycle(element, relativePrefix, definition, newCycleErr); err != nil {
		return zero, false, err
	}

	segments, flat := filter.SplitObjectPrefix(relativePrefix)

	// Walk the object segments under the current filter without recording
	// anything: an inert embedding must leave no trace.
	at := c
	for _, segment := range segments {
		inclusion := at.decide(segment)
		if inclusion == Excluded {
			return zero, false, nil
		}

		at = at.child(segment, inclusion)
	}

	if at.ExcludesEveryPath() {
		return zero, false, nil
	}

	parentInclude := at.include.under(flat)
	if parentInclude != nil && len(parentInclude) == 0 {
		return zero, false, nil
	}

	include := intersectPaths(parentInclude, newPathSet(definition.IncludePaths()))
	if include != nil && len(include) == 0 {
		return zero, false, nil
	}

	names, unconsumed := filter.SplitObjectPrefix(c.flatPrefix + relativePrefix)
	for _, name := range names {
		builder.AppendObject(name)
	}

	nested := &Context{
		depth:   composedDepth(c.depth, definition),
		include: include,
		exclude: unionPaths(at.exclude.under(flat), newPathSet(definition.ExcludePaths())),
		// filterPrefix restarts at the new composition root.
		flatPrefix: unconsumed,
		composition: &composition{
			parent:     c.composition,
			element:    element,
			prefix:     c.filterPrefix + relativePrefix,
			definition: definition,
			tracker:    tracker,
		},
	}

	return builder.Build(nested), true, nil
}

// bounds reports whether composing definition here can only repeat a finite
// number of times, provided every repetition adds to the path. An include
// set, declared or inherited, shrinks under a non-empty prefix and an
// inherited finite depth decays. A declared depth bounds nothing on its own:
// it is applied afresh at every repetition.
func (c *Context) bounds(definition filter.Definition) bool {
	if definition.HasIncludePaths() || c.include != nil {
		return true
	}

	_, declared := definition.Depth()

	return !declared && c.depth != nil
}

// checkCycle fails if element already appears on the ancestor chain and the
// repetition is not bounded. A repetition that adds nothing to the path since
// the previous occurrence is always a cycle: no filter narrows under an empty
// prefix. A context that excludes every path composes nothing, so it never
// fails.
func (c *Context) checkCycle(
	element MappingElement,
	relativePrefix string,
	definition filter.Definition,
	newCycleErr CyclicRecursionErrorFactory,
) error {
	if c.ExcludesEveryPath() {
		return nil
	}

	path := c.filterPrefix + relativePrefix

	for comp := c.composition; comp != nil; comp = comp.parent {
		since := path
		path = comp.prefix + path

		if comp.element != element {
			continue
		}

		if since != "" && c.bounds(definition) {
			return nil
		}

		return newCycleErr(element, path)
	}

	return nil
}

// composedDepth is the definition's depth when declared, otherwise the
// parent's depth minus one (never below zero), otherwise unlimited.
func composedDepth(parent *int, definition filter.Definition) *int {
	if d, ok := definition.Depth(); ok {
		return &d
	}

	if parent == nil {
		return nil
	}

	d := max(*parent-1, 0)

	return &d
}

// AncestorPath returns the concatenated prefixes of the compositions enclosing
// this context, outermost first, e.g. "authors.books.".
func (c *Context) AncestorPath() string {
	var parts []string

	for comp := c.composition; comp != nil; comp = comp.parent {
		parts = append(parts, comp.prefix)
	}

	var sb strings.Builder

	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}

	sb.WriteString(c.filterPrefix)

	return sb.String()
}
