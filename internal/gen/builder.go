package gen

import (
	"fmt"
	"strconv"

	"pathcodec/internal/common"
	"pathcodec/internal/field"
	"pathcodec/internal/plan"
	"pathcodec/internal/tree"
	"pathcodec/keyed"
)

// keyedAlias is the name generated code refers to the keyed runtime by.
const keyedAlias = "keyed"

// fileData holds all data needed for the file template.
type fileData struct {
	PackageName string
	Source      string
	KeyedImport string
	// KeyedAlias is set when the import path does not end in "keyed".
	KeyedAlias string
	Comments   bool
	Type       typeData
}

type typeData struct {
	Name      string
	Reference bool
	Fields    []fieldData
	Keys      []keyData
	Params    []paramData
	Inits     []initData
	Decode    []string
	Encode    []string
}

type fieldData struct {
	Ident   string
	GoType  string
	Comment string
}

type keyData struct {
	Const string
	Key   string
}

type paramData struct {
	Ident  string
	GoType string
}

type initData struct {
	Field string
	Expr  string
}

// typeBuilder renders the parts of one plan.
type typeBuilder struct {
	p      *plan.Plan
	fields map[string]string
	keys   map[string]string
}

func buildTypeData(p *plan.Plan) typeData {
	b := &typeBuilder{
		p:      p,
		fields: make(map[string]string, len(p.Fields)),
		keys:   make(map[string]string, p.Keys.Len()),
	}

	out := typeData{
		Name:      p.Type,
		Reference: p.Kind == plan.KindReference,
	}

	idents := common.NewNamespace()
	for _, f := range p.Fields {
		id := idents.Take(common.Exported(f.Name))
		b.fields[f.Name] = id

		out.Fields = append(out.Fields, fieldData{
			Ident:   id,
			GoType:  goType(f),
			Comment: fieldComment(f),
		})
	}

	consts := common.NewNamespace()
	prefix := common.Unexported(p.Type) + "Key"

	for _, e := range p.Keys.Entries() {
		c := consts.Take(prefix + common.Exported(common.Camel(e.Name)))
		b.keys[e.Name] = c

		out.Keys = append(out.Keys, keyData{Const: c, Key: e.Key})
	}

	out.Params, out.Inits = b.initializer()

	if out.Reference {
		out.Decode = b.decode("s", "return err", "return nil")
		out.Encode = b.encode("s")
	} else {
		out.Decode = append([]string{"var out " + p.Type}, b.decode("out", "return out, err", "return out, nil")...)
		out.Encode = b.encode("v")
	}

	return out
}

func (b *typeBuilder) initializer() ([]paramData, []initData) {
	var (
		params []paramData
		inits  []initData
	)

	names := common.NewNamespace(keyedAlias)

	for i, prm := range b.p.Initializer.Params {
		f := b.p.Fields[i]
		id := b.fields[prm.Name]

		if prm.HasDefault {
			if prm.Default != nil {
				inits = append(inits, initData{Field: id, Expr: valueExpr(f, prm.Default)})
			}

			continue
		}

		arg := names.Take(common.Ident(prm.Name, "arg"))
		params = append(params, paramData{Ident: arg, GoType: goType(f)})
		inits = append(inits, initData{Field: id, Expr: arg})
	}

	return params, inits
}

// locals holds the names a function body may not shadow: its parameters,
// the keyed import, the type and the key constants.
func (b *typeBuilder) locals() *common.Namespace {
	names := common.NewNamespace("d", "e", "s", "v", "out", "err", keyedAlias, b.p.Type)
	for _, c := range b.keys {
		names.Reserve(c)
	}

	return names
}

func (b *typeBuilder) scopeKey(id tree.NodeID) string {
	return b.keys[b.p.Keys.Name(id)]
}

func (b *typeBuilder) decode(recv, fail, done string) []string {
	if len(b.p.Decode) == 0 {
		return []string{done}
	}

	lines := []string{"var err error"}
	check := []string{"if err != nil {", fail, "}"}

	names := b.locals()
	vars := map[tree.NodeID]string{tree.Root: "d"}

	for _, op := range b.p.Decode {
		switch op.Kind {
		case plan.OpOpenScope:
			if op.Parent == tree.None {
				continue
			}

			v := names.Take(common.Ident(op.Key, "scope"))
			vars[op.Scope] = v

			lines = append(lines, fmt.Sprintf("%s, err := %s.Nested(%s)", v, vars[op.Parent], b.scopeKey(op.Scope)))
			lines = append(lines, check...)
		case plan.OpProbeAbsence:
			v := names.Take(common.Ident(op.Key, "scope"))
			vars[op.Scope] = v

			lines = append(lines, fmt.Sprintf("%s, err := keyed.Probe(%s, %s)", v, vars[op.Parent], b.scopeKey(op.Scope)))
			lines = append(lines, check...)
		case plan.OpIfPresent:
			lines = append(lines, fmt.Sprintf("if %s != nil {", vars[op.Scope]))
		case plan.OpElse:
			lines = append(lines, "} else {")
		case plan.OpEndIf:
			lines = append(lines, "}")
		case plan.OpDecodeInto:
			f := b.field(op.Field)
			lines = append(lines, fmt.Sprintf("%s.%s, err = %s", recv, b.fields[op.Field], b.decodeExpr(f, op, vars[op.Scope])))
			lines = append(lines, check...)
		case plan.OpAssignFallback:
			f := b.field(op.Field)
			lines = append(lines, fmt.Sprintf("%s.%s = %s", recv, b.fields[op.Field], valueExpr(f, op.Fallback)))
		}
	}

	return append(lines, done)
}

func (b *typeBuilder) decodeExpr(f field.Descriptor, op plan.Op, scope string) string {
	key := b.keys[f.Name]
	base := baseType(f.Type)

	if op.Mode == plan.ModeRequired {
		return fmt.Sprintf("keyed.Decode[%s](%s, %s)", base, scope, key)
	}

	if op.Fallback == nil {
		return fmt.Sprintf("keyed.DecodeIfPresent[%s](%s, %s)", base, scope, key)
	}

	helper := "DecodeOr"
	if f.Policy.Nilable() {
		helper = "DecodePtrOr"
	}

	return fmt.Sprintf("keyed.%s[%s](%s, %s, %s)", helper, base, scope, key, literal(op.Fallback))
}

func (b *typeBuilder) encode(recv string) []string {
	names := b.locals()
	vars := map[tree.NodeID]string{tree.Root: "e"}

	var lines []string

	for _, op := range b.p.Encode {
		switch op.Kind {
		case plan.OpOpenWriteScope:
			if op.Parent == tree.None {
				continue
			}

			v := names.Take(common.Ident(op.Key, "scope"))
			vars[op.Scope] = v

			lines = append(lines, fmt.Sprintf("%s := %s.Nested(%s)", v, vars[op.Parent], b.scopeKey(op.Scope)))
		case plan.OpWriteField:
			value := recv + "." + b.fields[op.Field]
			key := b.keys[op.Field]

			call := fmt.Sprintf("%s.Encode(%s, %s)", vars[op.Scope], key, value)
			if op.Mode == plan.ModeIfPresent {
				call = fmt.Sprintf("keyed.EncodeIfPresent(%s, %s, %s)", vars[op.Scope], key, value)
			}

			lines = append(lines, "if err := "+call+"; err != nil {", "return err", "}")
		}
	}

	return append(lines, "return nil")
}

func (b *typeBuilder) field(name string) field.Descriptor {
	return b.p.Fields[b.p.Field(name)]
}

func baseType(name string) string {
	if k, ok := keyed.KindOf(name); ok {
		return k.String()
	}

	return "any"
}

func goType(f field.Descriptor) string {
	if f.Policy.Nilable() {
		return "*" + baseType(f.Type)
	}

	return baseType(f.Type)
}

// valueExpr renders v as a value of the field's Go type.
func valueExpr(f field.Descriptor, v any) string {
	if v == nil {
		return "nil"
	}

	if f.Policy.Nilable() {
		return fmt.Sprintf("keyed.Ptr[%s](%s)", baseType(f.Type), literal(v))
	}

	return literal(v)
}

func literal(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%#v", x)
	}
}

func fieldComment(f field.Descriptor) string {
	c := f.PathString()

	switch f.Policy.Kind() {
	case field.PolicyRequired:
		c += ", required"
	case field.PolicyDefaulted:
		d, _ := f.Policy.Default()
		c += ", defaults to " + literal(d)
	default:
		c += ", nil when absent"
	}

	return c
}
