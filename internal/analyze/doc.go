// Package analyze reads keyed models from annotated Go source.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of structs and their fields, then Extract turns every
// struct with pathcodec-tagged fields into a schema type:
//
//	//pathcodec:reference
//	type Settings struct {
//		Ratio float64 `pathcodec:"tuning.ratio,default=1"`
//		Label *string `pathcodec:"meta.label"`
//		Phone *string `pathcodec:"contact.phone,implicit"`
//	}
//
// Pointer fields are optional, or implicit with the implicit option. A tag
// without path uses the json name of the field.
package analyze
