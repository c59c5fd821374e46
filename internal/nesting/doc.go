// Package nesting decides, for every field reachable while walking a possibly
// recursive graph of embedded types, whether that field is part of the final
// schema.
//
// A Context is the filtering state in effect at one point of the tree. The
// walk starts from Root; plain fields are decided with NestLeaf, plain object
// fields with NestComposite, fields whose name is unknown up front with
// NestUnfiltered, and each embedding declaration goes through NestComposed,
// which layers the embedding's filter.Definition on top of the current state:
//
//	root := nesting.Root()
//	title := nesting.NestLeaf(root, "title", leafFactory)
//	author, ok, err := nesting.NestComposed(root, element, "author.", def,
//		filter.NewPathTracker(def), builder, nil)
//
// Contexts are immutable; every call returns a new one. The only mutable
// state is the filter.PathTracker handed to NestComposed, which records the
// paths visited below that composition point.
//
// An embedding that repeats itself on its ancestor chain fails with a
// CyclicRecursionError unless include paths or an inherited depth narrow
// every repetition under a non-empty prefix. No other operation fails:
// over-restrictive filters simply yield Excluded or an empty result.
package nesting
