package nesting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tree-nesting/internal/filter"
)

type testElement struct {
	typeName string
	field    string
}

func (e testElement) String() string {
	return e.typeName + "#" + e.field
}

type recordingBuilder struct {
	objects []string
	built   *Context
	calls   int
}

func (b *recordingBuilder) AppendObject(name string) {
	b.objects = append(b.objects, name)
}

func (b *recordingBuilder) Build(nested *Context) *Context {
	b.calls++
	b.built = nested

	return nested
}

func intPtr(v int) *int { return &v }

func leafInclusion(_ string, inclusion Inclusion) Inclusion { return inclusion }

func leafName(prefixedName string, _ Inclusion) string { return prefixedName }

type compositeResult struct {
	name      string
	inclusion Inclusion
	nested    *Context
}

func composite(prefixedName string, inclusion Inclusion, nested *Context) compositeResult {
	return compositeResult{name: prefixedName, inclusion: inclusion, nested: nested}
}

func unfiltered(inclusion Inclusion, _ string) Inclusion { return inclusion }

// compose runs NestComposed with a fresh recording builder and fails the test
// on error.
func compose(
	t *testing.T, c *Context, element MappingElement, prefix string,
	def filter.Definition, tracker *filter.PathTracker,
) (*Context, bool, *recordingBuilder) {
	t.Helper()

	builder := &recordingBuilder{}
	nested, ok, err := NestComposed[*Context](c, element, prefix, def, tracker, builder, nil)
	require.NoError(t, err)

	return nested, ok, builder
}
