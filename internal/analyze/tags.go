package analyze

import (
	"fmt"
	"strconv"
	"strings"

	"tree-nesting/internal/mapping"
)

// TagKey is the struct tag key read by the analyzer.
const TagKey = "index"

// IndexTag is a parsed `index` struct tag.
type IndexTag struct {
	Skip     bool
	Embedded bool
	Dynamic  bool

	Name    string
	Type    mapping.ValueType
	Prefix  *string
	Depth   *int
	Include []string
	Exclude []string
	Pattern string
}

// ParseTag parses the value of an `index` struct tag.
// Supports: "-", "name=isbn,type=text", "embedded,prefix=p_,depth=1,include=a|b",
// "dynamic,pattern=attr_*".
func ParseTag(tag string) (IndexTag, error) {
	var it IndexTag

	if tag == "" {
		return it, nil
	}

	if tag == "-" {
		it.Skip = true
		return it, nil
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")

		switch key {
		case "embedded":
			it.Embedded = true
		case "dynamic":
			it.Dynamic = true
		case "name":
			it.Name = value
		case "type":
			it.Type = mapping.ValueType(value)
			if !it.Type.IsValid() {
				return it, fmt.Errorf("invalid type %q", value)
			}
		case "prefix":
			prefix := value
			it.Prefix = &prefix
		case "depth":
			depth, err := strconv.Atoi(value)
			if err != nil || depth < 0 {
				return it, fmt.Errorf("invalid depth %q", value)
			}

			it.Depth = &depth
		case "include":
			it.Include = splitPaths(value)
		case "exclude":
			it.Exclude = splitPaths(value)
		case "pattern":
			it.Pattern = value
		default:
			return it, fmt.Errorf("unknown tag option %q", part)
		}

		if !hasValue && key != "embedded" && key != "dynamic" {
			return it, fmt.Errorf("tag option %q needs a value", key)
		}
	}

	if it.Embedded && it.Dynamic {
		return it, fmt.Errorf("field cannot be both embedded and dynamic")
	}

	if !it.Embedded && (it.Prefix != nil || it.Depth != nil || it.Include != nil || it.Exclude != nil) {
		return it, fmt.Errorf("prefix, depth, include and exclude need the embedded option")
	}

	if !it.Dynamic && it.Pattern != "" {
		return it, fmt.Errorf("pattern needs the dynamic option")
	}

	return it, nil
}

func splitPaths(value string) []string {
	if value == "" {
		return nil
	}

	return strings.Split(value, "|")
}
