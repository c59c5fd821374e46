// Package schema builds the filtered field tree of a root type.
//
// The builder walks a mapping.MappingFile from a root type and asks the
// nesting engine, field by field, whether each field is included:
//   - value fields go through nesting.NestLeaf
//   - object fields go through nesting.NestComposite
//   - dynamic fields go through nesting.NestUnfiltered and become templates
//   - embedded fields go through nesting.NestComposed, with one
//     filter.PathTracker per embedding declaration and build
//
// Only included fields are materialized. Excluded objects are still walked so
// that the trackers see every path; Index.Report turns the trackers into
// diagnostics about include and exclude paths that never matched.
//
// ToArrow and WriteArrowIPC render an Index as an Apache Arrow schema.
package schema
