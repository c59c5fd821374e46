package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path     string
		expected []string
		wantErr  bool
	}{
		{path: "name", expected: []string{"name"}},
		{path: "books.title", expected: []string{"books", "title"}},
		{path: "_meta.page-count", expected: []string{"_meta", "page-count"}},
		{path: "", wantErr: true},
		{path: "books.", wantErr: true},
		{path: ".title", wantErr: true},
		{path: "books..title", wantErr: true},
		{path: "1st", wantErr: true},
		{path: "books.ti tle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			segments, err := ParsePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, segments)
		})
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{prefix: ""},
		{prefix: "authors."},
		{prefix: "meta.author_"},
		{prefix: "author_"},
		{prefix: "a.b.c."},
		{prefix: ".authors", wantErr: true},
		{prefix: "a..b", wantErr: true},
		{prefix: "9lives.", wantErr: true},
		{prefix: "author$", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			err := ValidatePrefix(tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
