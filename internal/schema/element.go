package schema

// ElementRef identifies an embedding declaration: the type declaring it and
// the dotted path of the embedded field within that type. It is the mapping
// element handed to the nesting engine.
type ElementRef struct {
	Type  string
	Field string
}

// String returns "Type#field.path".
func (r ElementRef) String() string {
	return r.Type + "#" + r.Field
}
