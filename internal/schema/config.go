package schema

import (
	"log/slog"

	"tree-nesting/internal/nesting"
)

// Config holds the builder options.
type Config struct {
	// Logger receives debug records about composition decisions.
	Logger *slog.Logger

	// NewCycleError creates the error reported for cyclic embeddings.
	// nil means nesting.DefaultCyclicRecursionError.
	NewCycleError nesting.CyclicRecursionErrorFactory

	// SuggestionLimit caps the "did you mean" hints per dead filter path.
	SuggestionLimit int
}

// DefaultConfig returns the default builder options.
func DefaultConfig() Config {
	return Config{
		Logger:          slog.Default(),
		SuggestionLimit: 3,
	}
}
