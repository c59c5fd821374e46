package nesting

import "fmt"

// MappingElement identifies which declared embedding produced a composition
// step. The engine only compares elements with == and prints them in
// diagnostics, so implementations must be comparable and should compare
// structurally (same declaring type and field means equal).
type MappingElement interface {
	fmt.Stringer
}

// LeafFactory creates a leaf field.
type LeafFactory[T any] func(prefixedName string, inclusion Inclusion) T

// CompositeFactory creates an object field; nested is the context to use for
// the object's own fields.
type CompositeFactory[T any] func(prefixedName string, inclusion Inclusion, nested *Context) T

// UnfilteredFactory creates a field whose name is not known up front, such as
// a dynamic template. prefix is the pending flat-name prefix.
type UnfilteredFactory[T any] func(inclusion Inclusion, prefix string) T

// NestedContextBuilder materializes the object nodes leading to an embedding
// and receives the composed context.
type NestedContextBuilder[T any] interface {
	// AppendObject is called once per object segment of the prefix, in order.
	AppendObject(name string)
	// Build is called last, with the context governing the embedded fields.
	Build(nested *Context) T
}

// CyclicRecursionErrorFactory creates the error reported when an embedding
// repeats itself on its ancestor chain.
type CyclicRecursionErrorFactory func(element MappingElement, cyclicPath string) error
