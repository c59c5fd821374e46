package schema

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes the field tree as an indented outline:
//
//	Book
//	  isbn: keyword
//	  details:
//	    pages: integer
//	  attr_*: keyword (template)
func (idx *Index) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, idx.Root); err != nil {
		return err
	}

	return writeNodes(w, idx.Tree.Children, 1)
}

func writeNodes(w io.Writer, nodes []*Node, depth int) error {
	indent := strings.Repeat("  ", depth)

	for _, n := range nodes {
		var err error

		switch n.Kind {
		case NodeObject:
			if _, err = fmt.Fprintf(w, "%s%s:\n", indent, n.Name); err == nil {
				err = writeNodes(w, n.Children, depth+1)
			}
		case NodeTemplate:
			_, err = fmt.Fprintf(w, "%s%s: %s (template)\n", indent, n.Name, n.ValueType)
		default:
			_, err = fmt.Fprintf(w, "%s%s: %s\n", indent, n.Name, n.ValueType)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// WritePaths writes one absolute field path per line.
func (idx *Index) WritePaths(w io.Writer) error {
	for _, path := range idx.Fields() {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}

	return nil
}
