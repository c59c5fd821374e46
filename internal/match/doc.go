// Package match ranks known field paths by their similarity to a filter path
// that never matched anything, producing "did you mean" hints.
//
// Key functions:
//   - NormalizeIdent / NormalizePath: case and separator folding
//   - Distance: edit distance between strings, swaps included
//   - Suggest: ranks candidate paths for a mistyped one
package match
