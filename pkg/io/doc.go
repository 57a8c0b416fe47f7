// Package io reads and writes the file formats the word-cloud tools
// exchange:
//
//   - Word lists: JSON arrays of {text, value} records, the input format
//     for layout runs.
//   - Layouts: the serialized output of a layout run (placed words plus
//     canvas dimensions), used for caching and for the JSON output format.
//   - Configs: TOML files carrying layout options and an optional inline
//     word list, used by the CLI.
package io
