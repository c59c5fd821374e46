package schema

import (
	"fmt"
	"slices"

	"tree-nesting/internal/diagnostic"
	"tree-nesting/internal/match"
)

// Index is the filtered field tree of one root type.
type Index struct {
	// Root is the name of the root type.
	Root string
	// Tree is the unnamed root object.
	Tree *Node

	elements        []*trackedElement
	suggestionLimit int
}

// Fields returns the absolute paths of the value and template nodes, sorted.
func (idx *Index) Fields() []string {
	var paths []string

	idx.Tree.walk(func(n *Node) {
		if n.Kind != NodeObject {
			paths = append(paths, n.Path)
		}
	})

	slices.Sort(paths)

	return paths
}

// Elements returns the embedding declarations visited by the build, in first
// visit order.
func (idx *Index) Elements() []ElementRef {
	refs := make([]ElementRef, len(idx.elements))
	for i, te := range idx.elements {
		refs[i] = te.ref
	}

	return refs
}

// EncounteredPaths returns the paths the given embedding's tracker recorded,
// relative to the embedding's root.
func (idx *Index) EncounteredPaths(ref ElementRef) []string {
	for _, te := range idx.elements {
		if te.ref == ref {
			return te.tracker.EncounteredPaths()
		}
	}

	return nil
}

// Report turns the trackers of the build into diagnostics:
//   - useless_include_path: an include path that never matched a field
//   - useless_exclude_path: an exclude path that never matched a field
//   - inert_embedding: an embedding that no occurrence could reach
//
// Dead paths come with suggestions taken from the paths that were seen.
func (idx *Index) Report() *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	for _, te := range idx.elements {
		element := te.ref.String()

		if te.reached == 0 {
			res.AddInfo("inert_embedding",
				fmt.Sprintf("embedding is filtered out in all %d occurrence(s) under %s", te.visits, idx.Root),
				element, "")

			continue
		}

		seen := te.tracker.EncounteredPaths()

		for _, path := range te.tracker.UselessIncludePaths() {
			res.AddWarning("useless_include_path",
				fmt.Sprintf("include path %q never matched a field", path),
				element, path, match.Suggest(path, seen, idx.suggestionLimit)...)
		}

		for _, path := range te.tracker.UselessExcludePaths() {
			res.AddWarning("useless_exclude_path",
				fmt.Sprintf("exclude path %q never matched a field", path),
				element, path, match.Suggest(path, seen, idx.suggestionLimit)...)
		}
	}

	return res
}
