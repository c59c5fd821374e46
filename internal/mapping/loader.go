package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	for i := range mf.Types {
		applyFieldDefaults(mf.Types[i].Fields)
	}
}

func applyFieldDefaults(fields []FieldDef) {
	for i := range fields {
		f := &fields[i]

		if f.Kind == "" {
			f.Kind = inferKind(f)
		}

		switch f.Kind {
		case FieldKindValue:
			if f.Type == "" {
				f.Type = ValueTypeKeyword
			}
		case FieldKindDynamic:
			if f.Dynamic != nil && f.Dynamic.Type == "" {
				f.Dynamic.Type = ValueTypeKeyword
			}
		case FieldKindObject:
			applyFieldDefaults(f.Fields)
		case FieldKindEmbedded:
			if f.Embedded != nil && f.Embedded.Prefix == nil {
				prefix := f.Embedded.RelativePrefix(f.Name)
				f.Embedded.Prefix = &prefix
			}
		}
	}
}

func inferKind(f *FieldDef) FieldKind {
	switch {
	case f.Embedded != nil:
		return FieldKindEmbedded
	case f.Dynamic != nil:
		return FieldKindDynamic
	case len(f.Fields) > 0:
		return FieldKindObject
	default:
		return FieldKindValue
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
