package analyze

import (
	"fmt"
	"go/types"
	"slices"

	"tree-nesting/internal/mapping"
)

// ToMapping converts the structs reachable from the root types into a mapping
// model. Roots are the types carrying the root directive plus the extra type
// names given; names refer to structs of the loaded packages by their bare
// name, which must therefore be unique.
func (g *TypeGraph) ToMapping(extraRoots ...string) (*mapping.MappingFile, error) {
	byName, err := g.structsByName()
	if err != nil {
		return nil, err
	}

	roots := g.rootNames(byName)
	for _, name := range extraRoots {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("root type %q not found in loaded packages", name)
		}

		if !slices.Contains(roots, name) {
			roots = append(roots, name)
		}
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("no root types: mark a type with %q or name one", rootDirective)
	}

	c := &converter{byName: byName}

	mf := &mapping.MappingFile{Version: "1", Roots: roots}

	// Breadth-first over embedding targets so every declared type is reachable.
	queue := append([]string{}, roots...)
	done := map[string]bool{}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if done[name] {
			continue
		}

		done[name] = true

		t := byName[name]

		fields, err := c.convertFields(t, NewTypePath(name), map[*TypeInfo]bool{t: true})
		if err != nil {
			return nil, err
		}

		mf.Types = append(mf.Types, mapping.TypeDef{Name: name, Fields: fields})
		queue = append(queue, c.targets...)
		c.targets = nil
	}

	return mf, nil
}

// structsByName indexes the named structs of the loaded packages.
func (g *TypeGraph) structsByName() (map[string]*TypeInfo, error) {
	byName := make(map[string]*TypeInfo)

	for id, t := range g.Types {
		if t.Kind != TypeKindStruct {
			continue
		}

		if other, ok := byName[id.Name]; ok {
			return nil, fmt.Errorf("type name %q is ambiguous: %s and %s", id.Name, other.ID, id)
		}

		byName[id.Name] = t
	}

	return byName, nil
}

// rootNames returns the directive-marked roots, sorted.
func (g *TypeGraph) rootNames(byName map[string]*TypeInfo) []string {
	var roots []string

	for name, t := range byName {
		if t.Root {
			roots = append(roots, name)
		}
	}

	slices.Sort(roots)

	return roots
}

type converter struct {
	byName  map[string]*TypeInfo
	targets []string
}

// convertFields converts the fields of a struct. visiting holds the structs
// already being converted as plain objects on the current path.
func (c *converter) convertFields(t *TypeInfo, path TypePath, visiting map[*TypeInfo]bool) ([]mapping.FieldDef, error) {
	var fields []mapping.FieldDef

	for i := range t.Fields {
		f := &t.Fields[i]
		fieldPath := path.Field(f.Name)

		tag, err := ParseTag(f.Tag.Get(TagKey))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fieldPath, err)
		}

		if tag.Skip {
			continue
		}

		fd, err := c.convertField(f, tag, fieldPath, visiting)
		if err != nil {
			return nil, err
		}

		fields = append(fields, fd)
	}

	return fields, nil
}

func (c *converter) convertField(f *FieldInfo, tag IndexTag, path TypePath, visiting map[*TypeInfo]bool) (mapping.FieldDef, error) {
	fd := mapping.FieldDef{Name: tag.Name}
	if fd.Name == "" {
		fd.Name = f.IndexName()
	}

	elem := f.Type.Deref()

	switch {
	case tag.Dynamic:
		return c.dynamicField(fd, f, tag, path)

	case tag.Embedded || (f.Embedded && c.isLocalStruct(elem)):
		if !c.isLocalStruct(elem) {
			return fd, fmt.Errorf("%s: embedded field must refer to a struct of the loaded packages", path)
		}

		prefix := fd.Name + "."
		if tag.Prefix != nil {
			prefix = *tag.Prefix
		} else if f.Embedded {
			// Go embedding flattens the fields into the enclosing type.
			prefix = ""
		}

		fd.Kind = mapping.FieldKindEmbedded
		fd.Embedded = &mapping.EmbeddedDef{
			Target:       elem.ID.Name,
			Prefix:       &prefix,
			Depth:        tag.Depth,
			IncludePaths: tag.Include,
			ExcludePaths: tag.Exclude,
		}
		c.targets = append(c.targets, elem.ID.Name)

		return fd, nil
	}

	if vt, ok := valueType(elem); ok {
		fd.Kind = mapping.FieldKindValue
		fd.Type = vt

		if tag.Type != "" {
			fd.Type = tag.Type
		}

		return fd, nil
	}

	if isAnonymousStruct(elem) || c.isLocalStruct(elem) {
		if visiting[elem] {
			return fd, fmt.Errorf("%s: recursive object field, tag it %q", path, "embedded")
		}

		visiting[elem] = true
		defer delete(visiting, elem)

		nested, err := c.convertFields(elem, path, visiting)
		if err != nil {
			return fd, err
		}

		fd.Kind = mapping.FieldKindObject
		fd.Fields = nested

		return fd, nil
	}

	return fd, fmt.Errorf("%s: unsupported field type %s", path, typeString(f.Type))
}

func (c *converter) dynamicField(fd mapping.FieldDef, f *FieldInfo, tag IndexTag, path TypePath) (mapping.FieldDef, error) {
	m := f.Type
	for m != nil && (m.Kind == TypeKindPointer || m.Kind == TypeKindAlias) {
		if m.Kind == TypeKindPointer {
			m = m.ElemType
		} else {
			m = m.Underlying
		}
	}

	if m == nil || m.Kind != TypeKindMap {
		return fd, fmt.Errorf("%s: dynamic field must be a map with string keys", path)
	}

	if tag.Pattern == "" {
		return fd, fmt.Errorf("%s: dynamic field needs a pattern", path)
	}

	vt := tag.Type
	if vt == "" {
		var ok bool
		if vt, ok = valueType(m.ElemType.Deref()); !ok {
			return fd, fmt.Errorf("%s: unsupported map value type %s", path, typeString(m.ElemType))
		}
	}

	fd.Kind = mapping.FieldKindDynamic
	fd.Dynamic = &mapping.DynamicDef{Pattern: tag.Pattern, Type: vt}

	return fd, nil
}

func (c *converter) isLocalStruct(t *TypeInfo) bool {
	return t != nil && t.Kind == TypeKindStruct && t.IsNamed() && c.byName[t.ID.Name] == t
}

func isAnonymousStruct(t *TypeInfo) bool {
	return t != nil && t.Kind == TypeKindStruct && !t.IsNamed()
}

// valueType maps a leaf Go type to a mapping value type.
func valueType(t *TypeInfo) (mapping.ValueType, bool) {
	if t == nil {
		return "", false
	}

	if t.Kind == TypeKindExternal {
		if t.ID == (TypeID{PkgPath: "time", Name: "Time"}) {
			return mapping.ValueTypeTimestamp, true
		}

		return "", false
	}

	if t.Kind != TypeKindBasic {
		return "", false
	}

	basic, ok := t.GoType.(*types.Basic)
	if !ok {
		return "", false
	}

	switch basic.Kind() {
	case types.String:
		return mapping.ValueTypeKeyword, true
	case types.Bool:
		return mapping.ValueTypeBoolean, true
	case types.Int8, types.Int16, types.Int32, types.Uint8, types.Uint16, types.Uint32:
		return mapping.ValueTypeInteger, true
	case types.Int, types.Int64, types.Uint, types.Uint64:
		return mapping.ValueTypeLong, true
	case types.Float32, types.Float64:
		return mapping.ValueTypeDouble, true
	default:
		return "", false
	}
}

// typeString returns a short human-readable form of a type for error messages.
func typeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + typeString(t.ElemType)
	case TypeKindSlice:
		return "[]" + typeString(t.ElemType)
	case TypeKindMap:
		return "map[string]" + typeString(t.ElemType)
	}

	if t.IsNamed() {
		return t.ID.Name
	}

	if t.GoType != nil {
		return t.GoType.String()
	}

	return t.Kind.String()
}
