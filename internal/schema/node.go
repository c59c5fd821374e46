package schema

import (
	"fmt"
	"strings"

	"tree-nesting/internal/filter"
	"tree-nesting/internal/mapping"
)

// NodeKind tells what a node of the field tree holds.
type NodeKind int

const (
	// NodeValue is a leaf holding a value.
	NodeValue NodeKind = iota
	// NodeObject groups child nodes.
	NodeObject
	// NodeTemplate stands for fields whose names match a pattern.
	NodeTemplate
)

// String returns a human-readable node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeValue:
		return "value"
	case NodeObject:
		return "object"
	case NodeTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Node is one materialized field.
type Node struct {
	// Name is the local name, flat prefixes included, e.g. "publisher_name".
	// For templates it is the name pattern, e.g. "attr_*".
	Name string
	// Path is the absolute dotted path from the root.
	Path string
	Kind NodeKind
	// ValueType is set for values and templates.
	ValueType mapping.ValueType
	Children  []*Node
}

func newRoot() *Node {
	return &Node{Kind: NodeObject}
}

func (n *Node) childPath(name string) string {
	if n.Path == "" {
		return name
	}

	return n.Path + filter.PathSeparator + name
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// Lookup returns the node at a path relative to n, or nil.
func (n *Node) Lookup(path string) *Node {
	at := n

	for _, name := range splitPath(path) {
		if at = at.Child(name); at == nil {
			return nil
		}
	}

	return at
}

// add attaches a value or template node. Two fields landing on the same path
// is an error.
func (n *Node) add(child *Node) error {
	child.Path = n.childPath(child.Name)

	if n.Child(child.Name) != nil {
		return fmt.Errorf("duplicate field path %q", child.Path)
	}

	n.Children = append(n.Children, child)

	return nil
}

// object returns the object child with the given name, creating it if needed.
// Declared objects and the objects leading to embeddings share nodes.
func (n *Node) object(name string) (*Node, error) {
	if existing := n.Child(name); existing != nil {
		if existing.Kind != NodeObject {
			return nil, fmt.Errorf("duplicate field path %q: object collides with a %s", existing.Path, existing.Kind)
		}

		return existing, nil
	}

	obj := &Node{Name: name, Path: n.childPath(name), Kind: NodeObject}
	n.Children = append(n.Children, obj)

	return obj, nil
}

// prune drops objects left without children, bottom-up. Such objects appear
// when every field below them was filtered out.
func (n *Node) prune() {
	kept := n.Children[:0]

	for _, c := range n.Children {
		if c.Kind == NodeObject {
			c.prune()

			if len(c.Children) == 0 {
				continue
			}
		}

		kept = append(kept, c)
	}

	n.Children = kept
}

// walk visits the node's descendants depth-first, in declaration order.
func (n *Node) walk(visit func(*Node)) {
	for _, c := range n.Children {
		visit(c)
		c.walk(visit)
	}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, filter.PathSeparator)
}
