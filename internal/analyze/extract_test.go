package analyze

import (
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathcodec/internal/common"
	"pathcodec/internal/plan"
	"pathcodec/internal/schema"
)

func ptr(s string) *string { return &s }

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want Tag
	}{
		{in: "", want: Tag{}},
		{in: "id", want: Tag{Path: schema.Path{"id"}}},
		{in: "a.b.c", want: Tag{Path: schema.Path{"a", "b", "c"}}},
		{in: "a,implicit", want: Tag{Path: schema.Path{"a"}, Implicit: true}},
		{in: ",default=x", want: Tag{Default: ptr("x")}},
		{in: "a,implicit,default=1,2", want: Tag{Path: schema.Path{"a"}, Implicit: true, Default: ptr("1,2")}},
		{in: "a,default=", want: Tag{Path: schema.Path{"a"}, Default: ptr("")}},
		{in: "a..b", want: Tag{Path: schema.Path{"a", "", "b"}}},
	}

	for _, tt := range tests {
		got, err := ParseTag(tt.in)
		require.NoError(t, err, tt.in)

		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseTag(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	_, err := ParseTag("a,optional")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tag option "optional"`)
}

func extractStore(t *testing.T) *schema.File {
	t.Helper()

	f, err := Extract(loadStore(t))
	require.NoError(t, err)

	return f
}

func schemaType(t *testing.T, f *schema.File, name string) schema.Type {
	t.Helper()

	for _, typ := range f.Types {
		if typ.Name == name {
			return typ
		}
	}

	require.Failf(t, "type not found", "%s", name)

	return schema.Type{}
}

type fieldShape struct {
	Name     string
	Type     string
	Path     string
	Optional bool
	Implicit bool
	Default  any
}

func shapes(t *testing.T, typ schema.Type) []fieldShape {
	t.Helper()

	out := make([]fieldShape, 0, len(typ.Fields))

	for i := range typ.Fields {
		fl := &typ.Fields[i]

		d, err := fl.DefaultValue()
		require.NoError(t, err)

		out = append(out, fieldShape{
			Name:     fl.Name,
			Type:     fl.Type,
			Path:     fl.Path.String(),
			Optional: fl.Optional,
			Implicit: fl.Implicit,
			Default:  d,
		})
	}

	return out
}

func TestExtract_Store(t *testing.T) {
	f := extractStore(t)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "store", f.Package)

	var names []string
	for _, typ := range f.Types {
		names = append(names, typ.Name)
	}

	assert.Equal(t, []string{"Product", "Customer", "Order"}, names)

	want := []fieldShape{
		{Name: "ID", Type: "int", Path: "id"},
		{Name: "SKU", Type: "string", Path: "sku"},
		{Name: "Name", Type: "string", Path: "details.name"},
		{Name: "Description", Type: "string", Path: "details.description", Optional: true},
		{Name: "PriceCents", Type: "int", Path: "pricing.amount_cents"},
		{Name: "Currency", Type: "string", Path: "pricing.currency", Default: "EUR"},
		{Name: "Inventory", Type: "int", Path: "stock.count", Default: 0},
	}
	if diff := cmp.Diff(want, shapes(t, schemaType(t, f, "Product"))); diff != "" {
		t.Errorf("Product mismatch (-want +got):\n%s", diff)
	}

	customer := schemaType(t, f, "Customer")
	assert.Equal(t, "reference", customer.Kind)

	want = []fieldShape{
		{Name: "ID", Type: "int", Path: "id"},
		{Name: "Email", Type: "string", Path: "contact.email"},
		{Name: "Phone", Type: "string", Path: "contact.phone", Implicit: true},
		{Name: "FullName", Type: "string", Path: "profile.full_name"},
		{Name: "Address", Type: "string", Path: "profile.address.line1", Optional: true},
		{Name: "IsActive", Type: "bool", Path: "flags.active", Optional: true, Default: true},
	}
	if diff := cmp.Diff(want, shapes(t, customer)); diff != "" {
		t.Errorf("Customer mismatch (-want +got):\n%s", diff)
	}

	want = []fieldShape{
		{Name: "ID", Type: "int", Path: "id"},
		{Name: "CustomerID", Type: "int", Path: "customer.id"},
		{Name: "Status", Type: "string", Path: "state.status", Default: "PENDING"},
		{Name: "Note", Type: "string", Path: "state.note", Default: "no note, left blank"},
		{Name: "TotalCents", Type: "float64", Path: "totals.amount"},
		{Name: "Meta", Type: "any", Path: "meta"},
	}
	if diff := cmp.Diff(want, shapes(t, schemaType(t, f, "Order"))); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_StoreSynthesizes(t *testing.T) {
	f := extractStore(t)

	diags := schema.Validate(f)
	require.False(t, diags.HasErrors(), diags.Error())

	specs, err := schema.TypeSpecs(f)
	require.NoError(t, err)

	plans, err := plan.SynthesizeAll(specs)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, plan.KindReference, plans[1].Kind)
}

func TestExtract_FieldErrors(t *testing.T) {
	_, _, err := extractType(&TypeInfo{
		ID:   TypeID{PkgPath: "x", Name: "Bad"},
		Kind: TypeKindStruct,
		Fields: []FieldInfo{
			{
				Name: "List",
				Tag:  `pathcodec:"list"`,
				Type: &TypeInfo{Kind: TypeKindSlice, GoType: types.NewSlice(types.Typ[types.Int])},
			},
			{
				Name: "Plain",
				Tag:  `pathcodec:"plain,implicit"`,
				Type: &TypeInfo{Kind: TypeKindBasic, GoType: types.Typ[types.String]},
			},
			{
				Name:     "Base",
				Tag:      `pathcodec:"base"`,
				Embedded: true,
				Type:     &TypeInfo{Kind: TypeKindStruct},
			},
			{
				Name: "Opt",
				Tag:  `pathcodec:"opt,sometimes"`,
				Type: &TypeInfo{Kind: TypeKindBasic, GoType: types.Typ[types.String]},
			},
		},
	})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "field List: unsupported field type []int (slice)")
	assert.Contains(t, msg, "field Plain: implicit requires a pointer field, found string")
	assert.Contains(t, msg, "field Base: embedded fields cannot be coded")
	assert.Contains(t, msg, `field Opt: unknown tag option "sometimes"`)
}

func TestExtract_ErrorsSortedByType(t *testing.T) {
	plain := func(pkg, name string) *TypeInfo {
		return &TypeInfo{
			ID:   TypeID{PkgPath: pkg, Name: name},
			Kind: TypeKindStruct,
			Fields: []FieldInfo{{
				Name: "Plain",
				Tag:  `pathcodec:"plain,implicit"`,
				Type: &TypeInfo{Kind: TypeKindBasic, GoType: types.Typ[types.String]},
			}},
		}
	}

	graph := NewTypeGraph()
	for _, info := range []*TypeInfo{plain("p", "Zed"), plain("p", "Alpha")} {
		graph.Types[info.ID] = info
	}

	graph.Packages["p"] = &PackageInfo{Path: "p", Name: "p", Types: []TypeID{{"p", "Zed"}, {"p", "Alpha"}}}
	graph.Order = []string{"p"}

	_, err := Extract(graph)
	require.Error(t, err)

	var errs *common.ErrorMap
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"p.Alpha", "p.Zed"}, errs.Keys())
	assert.Equal(t,
		"p.Alpha: field Plain: implicit requires a pointer field, found string; "+
			"p.Zed: field Plain: implicit requires a pointer field, found string",
		err.Error())
}

func TestExtract_UnsupportedBasicLeftToValidation(t *testing.T) {
	typ, ok, err := extractType(&TypeInfo{
		ID:   TypeID{Name: "Wide"},
		Kind: TypeKindStruct,
		Fields: []FieldInfo{{
			Name: "N",
			Tag:  `pathcodec:"n"`,
			Type: &TypeInfo{Kind: TypeKindBasic, GoType: types.Typ[types.Int64]},
		}},
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "int64", typ.Fields[0].Type)

	diags := schema.Validate(&schema.File{Version: "1", Package: "p", Types: []schema.Type{typ}})
	assert.Contains(t, diags.Codes(), "unknown_type")
}

func TestDefaultNode(t *testing.T) {
	n := defaultNode("0", "string")
	assert.Equal(t, "!!str", n.Tag)
	assert.Equal(t, "0", n.Value)

	n = defaultNode("0", "int")
	assert.Equal(t, "!!int", n.ShortTag())

	n = defaultNode("[1, 2]", "int")
	assert.Equal(t, "!!str", n.Tag, "non scalar defaults stay strings")

	n = defaultNode("null", "bool")
	assert.Equal(t, "!!null", n.ShortTag())
}
