// Package output renders command results.
//
//   - formatter.go: Formatter interface, format names and factory
//   - table.go: aligned text tables built by reflection or by hand
//   - encode.go: JSON and YAML output
//   - progress.go: a counting progress bar for bulk inserts
//
// Struct fields map to table columns through their json tag; a
// `table:"-"` tag hides a column.
package output
