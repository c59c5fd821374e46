package nesting

import (
	"errors"
	"fmt"
)

// ErrCyclicRecursion is matched by every error reporting an unbounded cycle.
var ErrCyclicRecursion = errors.New("cyclic recursion")

// CyclicRecursionError reports an embedding repeating itself without a bound.
type CyclicRecursionError struct {
	// Element is the embedding found twice on the ancestor chain.
	Element MappingElement
	// Path is the concatenation of the prefixes from the first occurrence of
	// Element down to the repeated one, e.g. "x.x.".
	Path string
}

// DefaultCyclicRecursionError is used by NestComposed when the caller passes
// no factory.
func DefaultCyclicRecursionError(element MappingElement, cyclicPath string) error {
	return &CyclicRecursionError{Element: element, Path: cyclicPath}
}

// Error implements the error interface.
func (e *CyclicRecursionError) Error() string {
	return fmt.Sprintf("cyclic recursion starting from %s on path %q: "+
		"an embedding cannot include itself, even indirectly, unless include paths or an inherited depth "+
		"narrow every repetition under a non-empty prefix (a declared depth is reapplied at each repetition)",
		e.Element, e.Path)
}

// Is makes the error match ErrCyclicRecursion.
func (e *CyclicRecursionError) Is(target error) bool {
	return target == ErrCyclicRecursion
}
