// Package diagnostic provides structured errors, warnings and infos reported
// while validating a mapping and building its schema.
//
// Key capabilities:
//   - Invalid mapping declarations (unknown types, malformed paths)
//   - Dead filter configuration: include or exclude paths that never matched
//     a visited field, with "did you mean" suggestions
//   - Informational notes about inert embeddings
package diagnostic
