// Package filter holds the filter declared on a single embedding and the
// tracker recording which of its paths were actually visited.
//
// Key types:
//   - Definition: optional depth, include paths and exclude paths
//   - PathTracker: encountered paths under one Definition, and the declared
//     paths that never matched anything ("useless" paths)
//
// Paths are dot-separated and relative to the embedding's root, e.g.
// "author.name".
package filter
