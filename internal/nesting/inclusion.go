package nesting

//go:generate go tool stringer -type=Inclusion -linecomment

// Inclusion is the outcome of evaluating a field against the filtering state.
type Inclusion int

const (
	Excluded Inclusion = iota // EXCLUDED
	Included                  // INCLUDED
)

// IsIncluded returns true for Included.
func (i Inclusion) IsIncluded() bool {
	return i == Included
}

func inclusionOf(included bool) Inclusion {
	if included {
		return Included
	}

	return Excluded
}
