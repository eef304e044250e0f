// Package schema loads YAML schema files declaring keyed types and turns
// them into synthesis input.
//
// Example:
//
//	version: "1"
//	package: models
//	types:
//	  - name: SomeCodable
//	    kind: value
//	    fields:
//	      - name: value
//	        type: string
//	        path: deeply.nested.key
//	        default: some
//	      - name: label
//	        type: string
//	        path: [meta, "display.name"]
//	        optional: true
//
// Paths are dotted strings or segment lists; a list allows segments
// containing dots. A field without path is stored under its own name.
//
// Field types are string, int, float64, bool and any. Defaults are
// converted to the field type when the file is read.
package schema
