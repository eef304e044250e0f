package gen

import "text/template"

var fileTemplate = template.Must(
	template.New("codec").
		Parse(`// Code generated by pathcodec{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.PackageName}}

import {{if .KeyedAlias}}{{.KeyedAlias}} {{end}}"{{.KeyedImport}}"
{{with .Type}}
{{- if .Keys}}
// Keys of {{.Name}}.
const (
{{- range .Keys}}
	{{.Const}} = {{printf "%q" .Key}}
{{- end}}
)
{{end}}
// {{.Name}} is stored in a nested keyed container.
type {{.Name}} struct {
{{- range .Fields}}
	{{.Ident}} {{.GoType}}{{if $.Comments}} // {{.Comment}}{{end}}
{{- end}}
}
{{if .Reference}}
// New{{.Name}} returns a {{.Name}} holding the given values.
func New{{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Ident}} {{$p.GoType}}{{end}}) *{{.Name}} {
	return &{{.Name}}{
{{- range .Inits}}
		{{.Field}}: {{.Expr}},
{{- end}}
	}
}

// Decode{{.Name}} decodes a {{.Name}} from d.
func Decode{{.Name}}(d keyed.Decoder) (*{{.Name}}, error) {
	s := new({{.Name}})
	if err := s.DecodeFrom(d); err != nil {
		return nil, err
	}

	return s, nil
}

// DecodeFrom decodes the fields of s from d.
func (s *{{.Name}}) DecodeFrom(d keyed.Decoder) error {
{{- range .Decode}}
	{{.}}
{{- end}}
}

// Encode{{.Name}} encodes s into e.
func Encode{{.Name}}(e keyed.Encoder, s *{{.Name}}) error {
	return s.EncodeTo(e)
}

// EncodeTo encodes the fields of s into e.
func (s *{{.Name}}) EncodeTo(e keyed.Encoder) error {
{{- range .Encode}}
	{{.}}
{{- end}}
}
{{else}}
// New{{.Name}} returns a {{.Name}}; fields with a default start from it.
func New{{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Ident}} {{$p.GoType}}{{end}}) {{.Name}} {
	return {{.Name}}{
{{- range .Inits}}
		{{.Field}}: {{.Expr}},
{{- end}}
	}
}

// Decode{{.Name}} decodes a {{.Name}} from d.
func Decode{{.Name}}(d keyed.Decoder) ({{.Name}}, error) {
{{- range .Decode}}
	{{.}}
{{- end}}
}

// Encode{{.Name}} encodes v into e.
func Encode{{.Name}}(e keyed.Encoder, v {{.Name}}) error {
{{- range .Encode}}
	{{.}}
{{- end}}
}
{{end}}
{{- end}}
`))
