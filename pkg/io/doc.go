// Package io reads chart input from files: datasets in JSON, CSV, TOML and
// YAML, and chart configurations in JSON, TOML and YAML.
//
// # Datasets
//
// Every format yields records whose fields keep the order of the source
// document, since the first field of the first record is the default key:
//
//	JSON  [{"name": "A", "x": 10}, {"name": "B", "x": 30}]
//	CSV   name,x
//	      A,10
//	TOML  [[records]]
//	      name = "A"
//	      x = 10
//	YAML  - name: A
//	        x: 10
//
// Numbers stay numbers. CSV cells that parse as a number become numbers
// and empty cells become absent values, which the layout plots as zero.
// Nested objects and arrays are kept as their JSON text.
//
// Use [ImportRecords] to read a file by extension, or [ReadRecords] to read
// any io.Reader in a named format.
//
// # Configuration
//
// [LoadConfig] decodes a configuration file by extension into a
// [config.Config]. Unset fields stay zero and take defaults when the chart
// validates the configuration. [WriteConfig] writes one back in any of the
// three formats.
//
// # Export
//
// [WriteRecords] and [ExportRecords] write records as a JSON array in field
// order, which [ReadJSON] reads back identically.
package io
