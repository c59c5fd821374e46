package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo("inert_embedding", "embedding is never reachable", "Book#editor", "")
	d.AddWarning("useless_include_path", "include path never matched", "Book#author", "nmae", "name")
	d.AddError("unknown_target", `target type "Autor" not found`, "Book#author", "")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	assert.True(t, d.HasWarnings())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticWarning, all[1].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)

	require.Len(t, d.ByCode("useless_include_path"), 1)
	assert.Empty(t, d.ByCode("missing"))

	assert.EqualError(t, d.Error(), `[Book#author]: [unknown_target] target type "Autor" not found`)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name:     "message only",
			diag:     Diagnostic{Message: "no roots declared"},
			expected: "no roots declared",
		},
		{
			name:     "full",
			diag:     Diagnostic{Code: "useless_include_path", Message: "never matched", Element: "Book#author", FieldPath: "nmae", Suggestions: []string{"name"}},
			expected: `[Book#author] nmae: [useless_include_path] never matched (did you mean "name"?)`,
		},
		{
			name:     "path without element",
			diag:     Diagnostic{Code: "duplicate_type", Message: "declared twice", FieldPath: "Book"},
			expected: "Book: [duplicate_type] declared twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning("w", "first", "", "")
	b.AddError("e", "second", "", "")
	b.AddInfo("i", "third", "", "")

	a.Merge(&b)
	a.Merge(nil)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
