package schema

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tree-nesting/internal/mapping"
	"tree-nesting/internal/nesting"
)

func TestBuild_Library(t *testing.T) {
	idx, err := NewBuilder(libraryMapping(t), testConfig()).Build("Book")
	require.NoError(t, err)

	expected := []string{
		"attr_*",
		"authors.books.title",
		"authors.name",
		"createdBy",
		"details.languages",
		"details.pages",
		"details.weight",
		"isbn",
		"published_at",
		"publisher_name",
		"revision",
		"title",
	}

	if diff := cmp.Diff(expected, idx.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(idx.Tree))
	}

	assert.Equal(t, []ElementRef{
		{Type: "Book", Field: "authors"},
		{Type: "Author", Field: "books"},
		{Type: "Book", Field: "publisher"},
		{Type: "Book", Field: "audit"},
	}, idx.Elements())

	assert.Equal(t, []string{
		"birthDate",
		"books.createdBy",
		"books.details",
		"books.details.languages",
		"books.details.pages",
		"books.details.weight",
		"books.isbn",
		"books.published_at",
		"books.revision",
		"books.title",
		"name",
	}, idx.EncounteredPaths(ElementRef{Type: "Book", Field: "authors"}))

	assert.Nil(t, idx.EncounteredPaths(ElementRef{Type: "Book", Field: "nothing"}))
}

func TestBuild_Tree(t *testing.T) {
	idx := build(t, `
roots: Doc
types:
  - name: Doc
    fields:
      - name: id
      - name: meta
        fields:
          - name: created
            type: timestamp
      - name: owner
        embedded:
          target: Person
          prefix: "meta.owner_"
          exclude_paths: [secret]
      - name: tags
        dynamic:
          pattern: "tag_*"
  - name: Person
    fields:
      - name: name
      - name: secret
`, "Doc")

	want := &Node{
		Kind: NodeObject,
		Children: []*Node{
			{Name: "id", Path: "id", Kind: NodeValue, ValueType: mapping.ValueTypeKeyword},
			{Name: "meta", Path: "meta", Kind: NodeObject, Children: []*Node{
				{Name: "created", Path: "meta.created", Kind: NodeValue, ValueType: mapping.ValueTypeTimestamp},
				{Name: "owner_name", Path: "meta.owner_name", Kind: NodeValue, ValueType: mapping.ValueTypeKeyword},
			}},
			{Name: "tag_*", Path: "tag_*", Kind: NodeTemplate, ValueType: mapping.ValueTypeKeyword},
		},
	}

	if diff := cmp.Diff(want, idx.Tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	assert.Same(t, idx.Tree.Children[1].Children[1], idx.Tree.Lookup("meta.owner_name"))
	assert.Nil(t, idx.Tree.Lookup("meta.owner_secret"))
	assert.Nil(t, idx.Tree.Lookup("missing.path"))
}

func TestBuild_DepthDecaysAcrossEmbeddings(t *testing.T) {
	idx := build(t, `
roots: Doc
types:
  - name: Doc
    fields:
      - name: tree
        embedded:
          target: Node
          depth: 2
  - name: Node
    fields:
      - name: label
      - name: info
        fields:
          - name: size
            type: long
      - name: children
        embedded:
          target: Node
`, "Doc")

	assert.Equal(t, []string{
		"tree.children.info.size",
		"tree.children.label",
		"tree.info.size",
		"tree.label",
	}, idx.Fields())

	// The depth-0 level is composed but holds nothing, so its object is pruned.
	assert.Nil(t, idx.Tree.Lookup("tree.children.children"))
}

func TestBuild_IncludedObjectWithoutChildrenIsPruned(t *testing.T) {
	idx := build(t, `
roots: Doc
types:
  - name: Doc
    fields:
      - name: author
        embedded:
          target: Person
          include_paths: [address, name]
  - name: Person
    fields:
      - name: name
      - name: address
        fields:
          - name: city
`, "Doc")

	assert.Equal(t, []string{"author.name"}, idx.Fields())
	assert.Nil(t, idx.Tree.Lookup("author.address"))
}

func TestBuild_DuplicatePaths(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "flattened embedding",
			yaml: `
roots: Doc
types:
  - name: Doc
    fields:
      - name: name
      - name: person
        embedded:
          target: Person
          prefix: ""
  - name: Person
    fields:
      - name: name
`,
			wantErr: `duplicate field path "name"`,
		},
		{
			name: "object over value",
			yaml: `
roots: Doc
types:
  - name: Doc
    fields:
      - name: meta
      - name: person
        embedded:
          target: Person
          prefix: "meta."
  - name: Person
    fields:
      - name: name
`,
			wantErr: `duplicate field path "meta": object collides with a value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(parse(t, tt.yaml), testConfig()).Build("Doc")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

const selfEmbedding = `
roots: Doc
types:
  - name: Doc
    fields:
      - name: title
      - name: x
        embedded:
          target: Doc
`

func TestBuild_Cycle(t *testing.T) {
	_, err := NewBuilder(parse(t, selfEmbedding), testConfig()).Build("Doc")
	require.Error(t, err)

	assert.True(t, errors.Is(err, nesting.ErrCyclicRecursion))

	var cyclic *nesting.CyclicRecursionError
	require.True(t, errors.As(err, &cyclic))
	assert.Equal(t, "x.x.", cyclic.Path)
	assert.Equal(t, nesting.MappingElement(ElementRef{Type: "Doc", Field: "x"}), cyclic.Element)
}

const emptyPrefixSelfEmbedding = `
roots: Node
types:
  - name: Node
    fields:
      - name: o
        fields:
          - name: v
      - name: self
        embedded:
          target: Node
          prefix: ""
          include_paths: [o]
`

func TestBuild_EmptyPrefixCycle(t *testing.T) {
	builder := NewBuilder(parse(t, emptyPrefixSelfEmbedding), testConfig())
	done := make(chan error, 1)

	go func() {
		_, err := builder.Build("Node")
		done <- err
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, nesting.ErrCyclicRecursion)

		var cyclic *nesting.CyclicRecursionError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, "", cyclic.Path)
		assert.Equal(t, nesting.MappingElement(ElementRef{Type: "Node", Field: "self"}), cyclic.Element)
	case <-time.After(5 * time.Second):
		t.Fatal("build did not terminate")
	}
}

func TestBuild_CycleWithCustomError(t *testing.T) {
	errLoop := errors.New("loop")

	cfg := testConfig()
	cfg.NewCycleError = func(element nesting.MappingElement, path string) error {
		return fmt.Errorf("%w: %s at %s", errLoop, element, path)
	}

	_, err := NewBuilder(parse(t, selfEmbedding), cfg).Build("Doc")
	require.ErrorIs(t, err, errLoop)
	assert.EqualError(t, err, "build Doc: loop: Doc#x at x.x.")
}

func TestBuild_UnknownRoot(t *testing.T) {
	_, err := NewBuilder(parse(t, selfEmbedding), testConfig()).Build("Missing")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestBuildAll(t *testing.T) {
	mf := parse(t, `
roots: [Book, Author]
types:
  - name: Book
    fields:
      - name: title
      - name: author
        embedded:
          target: Author
          depth: 0
          include_paths: [name]
  - name: Author
    fields:
      - name: name
      - name: books
        embedded:
          target: Book
          include_paths: [title]
`)

	indexes, err := NewBuilder(mf, testConfig()).BuildAll(context.Background())
	require.NoError(t, err)
	require.Len(t, indexes, 2)

	assert.Equal(t, "Book", indexes[0].Root)
	assert.Equal(t, []string{"author.name", "title"}, indexes[0].Fields())
	assert.Equal(t, "Author", indexes[1].Root)
	assert.Equal(t, []string{"books.title", "name"}, indexes[1].Fields())
}

func TestBuildAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(libraryMapping(t), testConfig()).BuildAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBuilder_NilLogger(t *testing.T) {
	b := NewBuilder(libraryMapping(t), Config{})
	require.NotNil(t, b.cfg.Logger)

	_, err := b.Build("Book")
	require.NoError(t, err)
}
