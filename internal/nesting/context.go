package nesting

import (
	"fmt"
	"strings"
)

// Context is the filtering state in effect at one point of the tree.
// It is immutable and safe for concurrent reads; nesting returns new contexts.
type Context struct {
	// depth is the remaining composition depth; nil means unlimited.
	depth *int
	// include and exclude are expressed relative to this context.
	include pathSet
	exclude pathSet
	// excludedSubtree is set below an excluded object: nothing is included.
	excludedSubtree bool
	// filterPrefix is the path from the governing composition root to this
	// context, empty or ending with a dot. Used to record visited paths.
	filterPrefix string
	// flatPrefix is the pending flat-name prefix applied to field names.
	flatPrefix string
	// composition is the nearest enclosing composition; nil at the root.
	composition *composition
}

var root = &Context{}

// Root returns the unrestricted root context: unlimited depth, no include or
// exclude paths, no ancestors.
func Root() *Context {
	return root
}

// NestLeaf decides whether a leaf field is included and creates it.
//
// Decision order: an exact exclude path excludes the field; otherwise, if an
// include set is active, the field is included iff it is an include path or
// the prefix of one; otherwise it is included iff the remaining depth is
// unlimited or positive. The path is recorded in the governing tracker
// whatever the outcome.
func NestLeaf[T any](c *Context, relativeFieldName string, factory LeafFactory[T]) T {
	inclusion := c.decide(relativeFieldName)
	c.record(relativeFieldName)

	return factory(c.flatPrefix+relativeFieldName, inclusion)
}

// NestComposite decides whether an object field is included and creates it
// along with the context for its own fields. The nested context is built even
// when the object is excluded; everything below an excluded object is excluded.
func NestComposite[T any](c *Context, relativeFieldName string, factory CompositeFactory[T]) T {
	inclusion := c.decide(relativeFieldName)
	c.record(relativeFieldName)

	return factory(c.flatPrefix+relativeFieldName, inclusion, c.child(relativeFieldName, inclusion))
}

// NestUnfiltered decides whether a field whose name is not known up front is
// included. Name-based paths cannot match such a field, so it is included
// only when no include set is active and the remaining depth allows it.
func NestUnfiltered[T any](c *Context, factory UnfilteredFactory[T]) T {
	included := !c.excludedSubtree && c.include == nil && c.depthAllows()

	return factory(inclusionOf(included), c.flatPrefix)
}

// Depth returns the remaining composition depth and whether it is limited.
func (c *Context) Depth() (int, bool) {
	if c.depth == nil {
		return 0, false
	}

	return *c.depth, true
}

// IncludePaths returns the include paths in effect, relative to this context,
// sorted. nil means no include restriction.
func (c *Context) IncludePaths() []string {
	return c.include.sorted()
}

// ExcludePaths returns the exclude paths in effect, relative to this context.
func (c *Context) ExcludePaths() []string {
	return c.exclude.sorted()
}

// Prefix returns the pending flat-name prefix applied to field names.
func (c *Context) Prefix() string {
	return c.flatPrefix
}

// ExcludesEveryPath returns true if no field below this context can be
// included, whatever its name.
func (c *Context) ExcludesEveryPath() bool {
	if c.excludedSubtree {
		return true
	}

	if c.include != nil {
		return len(c.include) == 0
	}

	return !c.depthAllows()
}

// String returns a compact description, for debugging.
func (c *Context) String() string {
	var sb strings.Builder

	sb.WriteString("nesting.Context{")

	if c.depth == nil {
		sb.WriteString("depth=unlimited")
	} else {
		fmt.Fprintf(&sb, "depth=%d", *c.depth)
	}

	if c.include != nil {
		fmt.Fprintf(&sb, " include=%v", c.include.sorted())
	}

	if c.exclude != nil {
		fmt.Fprintf(&sb, " exclude=%v", c.exclude.sorted())
	}

	if c.excludedSubtree {
		sb.WriteString(" excluded")
	}

	if c.flatPrefix != "" {
		fmt.Fprintf(&sb, " prefix=%q", c.flatPrefix)
	}

	sb.WriteString("}")

	return sb.String()
}

func (c *Context) depthAllows() bool {
	return c.depth == nil || *c.depth > 0
}

func (c *Context) decide(name string) Inclusion {
	switch {
	case c.excludedSubtree:
		return Excluded
	case c.exclude.has(name):
		return Excluded
	case c.include != nil:
		return inclusionOf(c.include.leadsTo(name))
	default:
		return inclusionOf(c.depthAllows())
	}
}

// child returns the context for the fields of object name. Depth only decays
// across compositions, so it is carried over unchanged.
func (c *Context) child(name string, inclusion Inclusion) *Context {
	objectPrefix := name + "."

	return &Context{
		depth:           c.depth,
		include:         c.include.under(objectPrefix),
		exclude:         c.exclude.under(objectPrefix),
		excludedSubtree: c.excludedSubtree || inclusion == Excluded,
		filterPrefix:    c.filterPrefix + objectPrefix,
		composition:     c.composition,
	}
}

// record reports a visited field to the governing tracker, then to each
// enclosing composition's tracker, translated into its coordinates. It stops
// at the first level whose own exclude paths cut the field.
func (c *Context) record(name string) {
	path := c.filterPrefix + name

	for comp := c.composition; comp != nil; comp = comp.parent {
		if comp.tracker != nil {
			comp.tracker.RecordEncountered(path)
		}

		if comp.definition.Excludes(path) {
			return
		}

		path = comp.prefix + path
	}
}
