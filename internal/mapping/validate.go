package mapping

import (
	"fmt"
	"slices"

	"tree-nesting/internal/diagnostic"
	"tree-nesting/internal/filter"
)

// Validate checks a mapping definition for structural problems: unknown
// types, duplicate declarations, malformed names and filter paths.
// It does not build the schema; dead filter paths are reported by the
// schema builder once the trackers have seen the fields.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if len(mf.Types) == 0 {
		res.AddError("no_types", "mapping declares no types", "", "")
		return res
	}

	seenTypes := map[string]struct{}{}

	for i := range mf.Types {
		name := mf.Types[i].Name
		if name == "" {
			res.AddError("missing_type_name", fmt.Sprintf("type #%d has no name", i), "", "")
			continue
		}

		if _, ok := seenTypes[name]; ok {
			res.AddError("duplicate_type", fmt.Sprintf("duplicate type %q", name), "", name)
			continue
		}

		seenTypes[name] = struct{}{}
	}

	if len(mf.Roots) == 0 {
		res.AddError("no_roots", "mapping declares no root types", "", "")
	}

	for _, root := range mf.Roots {
		if _, ok := seenTypes[root]; !ok {
			res.AddError("unknown_root", fmt.Sprintf("root type %q not found", root), "", root)
		}
	}

	for i := range mf.Types {
		td := &mf.Types[i]
		validateFields(res, td.Name, "", td.Fields, seenTypes)
	}

	return res
}

func validateFields(
	res *diagnostic.Diagnostics,
	typeName, parentPath string,
	fields []FieldDef,
	types map[string]struct{},
) {
	seen := map[string]struct{}{}

	for i := range fields {
		f := &fields[i]
		path := joinPath(parentPath, f.Name)

		if f.Name == "" {
			if f.Kind != FieldKindDynamic {
				res.AddError("missing_field_name",
					fmt.Sprintf("field #%d has no name", i), typeName, parentPath)
			}
		} else {
			if !isValidName(f.Name) {
				res.AddError("invalid_field_name",
					fmt.Sprintf("invalid field name %q", f.Name), typeName, path)
			}

			if _, ok := seen[f.Name]; ok {
				res.AddError("duplicate_field",
					fmt.Sprintf("duplicate field %q", f.Name), typeName, path)
			}

			seen[f.Name] = struct{}{}
		}

		switch f.Kind {
		case FieldKindValue:
			if !f.Type.IsValid() {
				res.AddError("invalid_value_type",
					fmt.Sprintf("invalid value type %q", f.Type), typeName, path)
			}
		case FieldKindObject:
			if len(f.Fields) == 0 {
				res.AddWarning("empty_object", "object field declares no fields", typeName, path)
			}

			validateFields(res, typeName, path, f.Fields, types)
		case FieldKindEmbedded:
			validateEmbedded(res, typeName+"#"+path, f, types)
		case FieldKindDynamic:
			validateDynamic(res, typeName, path, f)
		default:
			res.AddError("invalid_field_kind",
				fmt.Sprintf("invalid field kind %q", f.Kind), typeName, path)
		}
	}
}

func validateEmbedded(res *diagnostic.Diagnostics, element string, f *FieldDef, types map[string]struct{}) {
	e := f.Embedded
	if e == nil {
		res.AddError("missing_embedded", "embedded field has no embedding declaration", element, "")
		return
	}

	if _, ok := types[e.Target]; !ok {
		res.AddError("unknown_target", fmt.Sprintf("target type %q not found", e.Target), element, "")
	}

	if err := ValidatePrefix(e.RelativePrefix(f.Name)); err != nil {
		res.AddError("invalid_prefix", err.Error(), element, "")
	}

	if e.Depth != nil && *e.Depth < 0 {
		res.AddError("negative_depth", fmt.Sprintf("depth must not be negative, got %d", *e.Depth), element, "")
	}

	for _, p := range e.IncludePaths {
		if _, err := ParsePath(p); err != nil {
			res.AddError("invalid_include_path", err.Error(), element, p)
		}
	}

	for _, p := range e.ExcludePaths {
		if _, err := ParsePath(p); err != nil {
			res.AddError("invalid_exclude_path", err.Error(), element, p)
			continue
		}

		// An include entry that sits at or below an excluded path can never
		// produce a field.
		for _, inc := range e.IncludePaths {
			if filter.IsPathPrefix(p, inc) {
				res.AddWarning("conflicting_filter_path",
					fmt.Sprintf("include path %q is excluded by %q", inc, p), element, inc)
			}
		}
	}
}

func validateDynamic(res *diagnostic.Diagnostics, typeName, path string, f *FieldDef) {
	if f.Dynamic == nil || f.Dynamic.Pattern == "" {
		res.AddError("missing_pattern", "dynamic field has no pattern", typeName, path)
		return
	}

	if !f.Dynamic.Type.IsValid() {
		res.AddError("invalid_value_type",
			fmt.Sprintf("invalid value type %q", f.Dynamic.Type), typeName, path)
	}
}

// joinPath appends a field name to a dotted path.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	if name == "" {
		return parent
	}

	return parent + filter.PathSeparator + name
}

// TypeNames returns the declared type names, sorted.
func (mf *MappingFile) TypeNames() []string {
	names := make([]string, 0, len(mf.Types))
	for i := range mf.Types {
		names = append(names, mf.Types[i].Name)
	}

	slices.Sort(names)

	return names
}
