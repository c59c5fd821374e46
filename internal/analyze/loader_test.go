package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryPkg = "tree-nesting/examples/library"

func loadLibrary(t *testing.T) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer("").LoadPackages(libraryPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func field(t *testing.T, info *TypeInfo, name string) *FieldInfo {
	t.Helper()

	for i := range info.Fields {
		if info.Fields[i].Name == name {
			return &info.Fields[i]
		}
	}

	require.Failf(t, "field not found", "%s has no field %s", info.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadLibrary(t)

	require.Contains(t, graph.Packages, libraryPkg)
	assert.Equal(t, "library", graph.Packages[libraryPkg].Name)

	for _, name := range []string{"Book", "Details", "Author", "Publisher", "Address", "Audit"} {
		id := TypeID{PkgPath: libraryPkg, Name: name}
		require.Contains(t, graph.Types, id)
		assert.Equal(t, TypeKindStruct, graph.GetType(id).Kind, name)
	}
}

func TestAnalyzer_RootDirective(t *testing.T) {
	graph := loadLibrary(t)

	assert.True(t, graph.GetType(TypeID{PkgPath: libraryPkg, Name: "Book"}).Root)
	assert.False(t, graph.GetType(TypeID{PkgPath: libraryPkg, Name: "Author"}).Root)
}

func TestAnalyzer_Fields(t *testing.T) {
	graph := loadLibrary(t)
	book := graph.GetType(TypeID{PkgPath: libraryPkg, Name: "Book"})

	// Unexported fields are dropped.
	for _, f := range book.Fields {
		assert.NotEqual(t, "etag", f.Name)
	}

	published := field(t, book, "Published")
	assert.Equal(t, TypeKindExternal, published.Type.Kind)
	assert.Equal(t, TypeID{PkgPath: "time", Name: "Time"}, published.Type.ID)
	assert.Equal(t, "published_at", published.IndexName())

	authors := field(t, book, "Authors")
	assert.Equal(t, TypeKindSlice, authors.Type.Kind)
	assert.Equal(t, TypeKindPointer, authors.Type.ElemType.Kind)
	assert.Equal(t, "Author", authors.Type.Deref().ID.Name)
	assert.Equal(t, "embedded,depth=1,include=name|books.title", authors.Tag.Get(TagKey))

	attrs := field(t, book, "Attributes")
	assert.Equal(t, TypeKindMap, attrs.Type.Kind)
	assert.Equal(t, TypeKindBasic, attrs.Type.ElemType.Kind)

	audit := field(t, book, "Audit")
	assert.True(t, audit.Embedded)
}

func TestAnalyzer_RecursiveTypes(t *testing.T) {
	graph := loadLibrary(t)

	book := graph.GetType(TypeID{PkgPath: libraryPkg, Name: "Book"})
	author := field(t, book, "Authors").Type.Deref()
	books := field(t, author, "Books").Type.Deref()

	assert.Same(t, book, books)
}

func TestAnalyzer_MissingPackage(t *testing.T) {
	_, err := NewAnalyzer("").LoadPackages("tree-nesting/examples/does-not-exist")
	require.Error(t, err)
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "tree-nesting/examples/library.Book", TypeID{PkgPath: libraryPkg, Name: "Book"}.String())
	assert.Equal(t, "int", TypeID{Name: "int"}.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestFieldInfo_IndexName(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		expected string
	}{
		{name: "Title", expected: "title"},
		{name: "ISBN", expected: "isbn"},
		{name: "BirthDate", expected: "birthDate"},
		{name: "HTTPServer", expected: "httpServer"},
		{name: "MyField", tag: `json:"my_field,omitempty"`, expected: "my_field"},
		{name: "MyField", tag: `json:",omitempty"`, expected: "myField"},
		{name: "MyField", tag: `json:"-"`, expected: "myField"},
	}

	for _, tt := range tests {
		t.Run(tt.name+tt.tag, func(t *testing.T) {
			f := FieldInfo{Name: tt.name, Tag: reflect.StructTag(tt.tag)}
			assert.Equal(t, tt.expected, f.IndexName())
		})
	}
}

func TestTypePath(t *testing.T) {
	root := NewTypePath("Book")
	authors := root.Field("Authors")

	assert.Equal(t, "Book", root.String())
	assert.Equal(t, "Book.Authors", authors.String())
	assert.Equal(t, "Book.Authors.Name", authors.Field("Name").String())
}
