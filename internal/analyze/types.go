package analyze

import (
	"go/types"
	"reflect"
	"strings"
	"unicode"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "tree-nesting/examples/library"
	Name    string // e.g., "Book"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice or array of another type
	TypeKindMap               // map with string keys
	TypeKindAlias             // named type wrapping a non-struct type
	TypeKindExternal          // type from a package that was not loaded (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For aliases, the underlying type
	ElemType   *TypeInfo   // For pointers, slices and maps, the element type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // The original go/types.Type
	Root       bool        // Declared as a root with an "index:root" doc line
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Deref strips pointers, slices and aliases down to the element type.
func (t *TypeInfo) Deref() *TypeInfo {
	for t != nil {
		switch t.Kind {
		case TypeKindPointer, TypeKindSlice:
			t = t.ElemType
		case TypeKindAlias:
			t = t.Underlying
		default:
			return t
		}
	}

	return nil
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// IndexName returns the name of the field in the mapping: the JSON tag name
// if present, otherwise the Go name with its leading capitals lowercased.
func (f *FieldInfo) IndexName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}

	return lowerCamel(f.Name)
}

// lowerCamel lowercases the leading run of capitals, keeping the last one of
// a run followed by a lowercase letter: "ISBN" -> "isbn", "BirthDate" ->
// "birthDate", "HTTPServer" -> "httpServer".
func lowerCamel(s string) string {
	runes := []rune(s)

	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	if upper > 1 && upper < len(runes) && unicode.IsLower(runes[upper]) {
		upper--
	}

	for i := range upper {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}

// TypePath builds a readable path for error messages, e.g. "library.Book.Authors".
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) TypePath {
	return TypePath{parts: []string{root}}
}

// Field appends a field name to the path.
func (p TypePath) Field(name string) TypePath {
	return TypePath{parts: append(append([]string{}, p.parts...), name)}
}

// String returns the full path string.
func (p TypePath) String() string {
	return strings.Join(p.parts, ".")
}
