package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates(t *testing.T) {
	list := RankCandidates("autor", []string{"author.name", "author.books.title", "title", "autor"})

	require.NotEmpty(t, list)
	assert.Equal(t, "author", list[0].Path)
	assert.InDelta(t, 5.0/6.0, list[0].Score, 1e-9)

	for _, c := range list {
		assert.NotEqual(t, "autor", c.Path)
	}

	// Every prefix appears once.
	assert.ElementsMatch(t,
		[]string{"author", "author.name", "author.books", "author.books.title", "title"},
		list.Paths())
}

func TestRankCandidates_TieBreak(t *testing.T) {
	list := RankCandidates("b", []string{"c", "a"})
	assert.Equal(t, []string{"a", "c"}, list.Paths())
}

func TestSuggest(t *testing.T) {
	known := []string{"name", "books.title", "books.pages", "birthDate"}

	tests := []struct {
		name     string
		path     string
		limit    int
		expected []string
	}{
		{name: "typo", path: "nam", limit: 3, expected: []string{"name"}},
		{name: "nested swap", path: "books.titel", limit: 3, expected: []string{"books.title"}},
		{name: "swap", path: "nmae", limit: 3, expected: []string{"name"}},
		{name: "case and separators", path: "birth_date", limit: 3, expected: []string{"birthDate"}},
		{name: "prefix", path: "bokos", limit: 1, expected: []string{"books"}},
		{name: "nothing close", path: "publisher", limit: 3, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggest(tt.path, known, tt.limit))
		})
	}
}

func TestCandidateList_Top(t *testing.T) {
	list := CandidateList{{Path: "a", Score: 0.9}, {Path: "b", Score: 0.7}, {Path: "c", Score: 0.2}}

	assert.Len(t, list.Top(2), 2)
	assert.Len(t, list.Top(10), 3)
	assert.Nil(t, list.Top(0))
	assert.Nil(t, list.Top(-1))
	assert.Equal(t, []string{"a", "b"}, list.AboveThreshold(0.6).Paths())
}
