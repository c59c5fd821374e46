package mapping

import (
	"tree-nesting/internal/filter"
)

// MappingFile represents the root of a YAML mapping definition file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Roots lists the types indexed as top-level documents.
	Roots StringOrArray `yaml:"roots"`

	// Types declares every type reachable from the roots.
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one mapped type.
type TypeDef struct {
	// Name identifies the type; embeddings refer to it as their target.
	Name string `yaml:"name"`

	// Fields declared directly on the type, in declaration order.
	Fields []FieldDef `yaml:"fields,omitempty"`
}

// FieldKind tells how a field contributes to the schema.
type FieldKind string

const (
	// FieldKindValue is a leaf field holding a value.
	FieldKindValue FieldKind = "value"
	// FieldKindObject is a plain object field with nested fields.
	FieldKindObject FieldKind = "object"
	// FieldKindEmbedded embeds another type's fields under a prefix.
	FieldKindEmbedded FieldKind = "embedded"
	// FieldKindDynamic is a template for fields whose names are unknown up front.
	FieldKindDynamic FieldKind = "dynamic"
)

// IsValid returns true if the kind is a recognized value.
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindValue, FieldKindObject, FieldKindEmbedded, FieldKindDynamic:
		return true
	default:
		return false
	}
}

// ValueType is the type of a value field.
type ValueType string

const (
	ValueTypeKeyword   ValueType = "keyword"
	ValueTypeText      ValueType = "text"
	ValueTypeInteger   ValueType = "integer"
	ValueTypeLong      ValueType = "long"
	ValueTypeDouble    ValueType = "double"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeDate      ValueType = "date"
	ValueTypeTimestamp ValueType = "timestamp"
)

// IsValid returns true if the value type is a recognized value.
func (v ValueType) IsValid() bool {
	switch v {
	case ValueTypeKeyword, ValueTypeText, ValueTypeInteger, ValueTypeLong,
		ValueTypeDouble, ValueTypeBoolean, ValueTypeDate, ValueTypeTimestamp:
		return true
	default:
		return false
	}
}

// FieldDef declares one field of a type or of an object field.
type FieldDef struct {
	// Name of the field. Optional for dynamic fields.
	Name string `yaml:"name,omitempty"`

	// Kind is inferred by applyDefaults when empty.
	Kind FieldKind `yaml:"kind,omitempty"`

	// Type of a value field.
	Type ValueType `yaml:"type,omitempty"`

	// Fields of an object field.
	Fields []FieldDef `yaml:"fields,omitempty"`

	// Embedded is set for embedding fields.
	Embedded *EmbeddedDef `yaml:"embedded,omitempty"`

	// Dynamic is set for dynamic fields.
	Dynamic *DynamicDef `yaml:"dynamic,omitempty"`
}

// EmbeddedDef declares an embedding: the target type's fields appear under
// Prefix, filtered by Depth, IncludePaths and ExcludePaths.
type EmbeddedDef struct {
	// Target is the name of the embedded type.
	Target string `yaml:"target"`

	// Prefix defaults to the field name followed by a dot.
	Prefix *string `yaml:"prefix,omitempty"`

	// Depth limits how many levels of embeddings include fields by default.
	// Nil means inherited from the enclosing embedding, or unlimited.
	Depth *int `yaml:"depth,omitempty"`

	// IncludePaths restricts the embedded fields to these paths.
	IncludePaths StringOrArray `yaml:"include_paths,omitempty"`

	// ExcludePaths removes these paths from the embedded fields.
	ExcludePaths StringOrArray `yaml:"exclude_paths,omitempty"`
}

// Definition returns the filter declared by this embedding.
func (e *EmbeddedDef) Definition() filter.Definition {
	return filter.NewDefinition(e.Depth, e.IncludePaths, e.ExcludePaths)
}

// RelativePrefix returns the declared prefix, or the default one derived from
// the field name.
func (e *EmbeddedDef) RelativePrefix(fieldName string) string {
	if e.Prefix != nil {
		return *e.Prefix
	}

	return fieldName + filter.PathSeparator
}

// DynamicDef declares a template for fields whose names are unknown up front.
type DynamicDef struct {
	// Pattern matched against field names at indexing time, e.g. "attr_*".
	Pattern string `yaml:"pattern"`

	// Type of the matched fields.
	Type ValueType `yaml:"type,omitempty"`
}

// StringOrArray is a list of strings that can be written in YAML either as a
// single string or as an array.
type StringOrArray []string

// Type returns the type with the given name, or nil.
func (mf *MappingFile) Type(name string) *TypeDef {
	for i := range mf.Types {
		if mf.Types[i].Name == name {
			return &mf.Types[i]
		}
	}

	return nil
}
