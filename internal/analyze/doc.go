// Package analyze derives a mapping model from annotated Go structs.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of structs and their fields, then converts the structs
// reachable from the root types into a mapping.MappingFile.
//
// Struct tag forms (key "index"):
//   - `index:"-"` skips the field
//   - `index:"name=isbn,type=text"` renames a value field or overrides its type
//   - `index:"embedded,prefix=p_,depth=1,include=a|b.c,exclude=d"` embeds the
//     field's struct type under a prefix with a filter
//   - `index:"dynamic,pattern=attr_*,type=keyword"` declares a map field as a
//     template for fields whose names are unknown up front
//
// A type whose doc comment carries an "index:root" line is a root type.
package analyze
