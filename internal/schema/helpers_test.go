package schema

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"tree-nesting/internal/mapping"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	return cfg
}

func parse(t *testing.T, yaml string) *mapping.MappingFile {
	t.Helper()

	mf, err := mapping.Parse([]byte(yaml))
	require.NoError(t, err)

	res := mapping.Validate(mf)
	require.True(t, res.IsValid(), "invalid test mapping: %v", res.Error())

	return mf
}

func build(t *testing.T, yaml, root string) *Index {
	t.Helper()

	idx, err := NewBuilder(parse(t, yaml), testConfig()).Build(root)
	require.NoError(t, err)

	return idx
}

func libraryMapping(t *testing.T) *mapping.MappingFile {
	t.Helper()

	mf, err := mapping.LoadFile("../../examples/library/mapping.yaml")
	require.NoError(t, err)

	return mf
}
