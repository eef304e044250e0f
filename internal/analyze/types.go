package analyze

import (
	"go/types"
	"reflect"
	"slices"
	"strings"

	"pathcodec/internal/common"
)

// TypeID names a declared type within its package.
type TypeID struct {
	PkgPath string // "pathcodec/store"
	Name    string // "Order"
}

func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind classifies a type by how Extract can treat it.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // string, int, float64, bool and the other predeclared types
	TypeKindStruct            // candidate codable type
	TypeKindPointer           // optional or implicit field
	TypeKindSlice             // never codable
	TypeKindAlias             // named type over a non-struct, such as OrderStatus
	TypeKindExternal          // named type from a package outside the scan, such as time.Time
	TypeKindAny               // the empty interface
)

var typeKindNames = [...]string{
	TypeKindUnknown:  common.UnknownStr,
	TypeKindBasic:    "basic",
	TypeKindStruct:   "struct",
	TypeKindPointer:  "pointer",
	TypeKindSlice:    "slice",
	TypeKindAlias:    "alias",
	TypeKindExternal: "external",
	TypeKindAny:      "any",
}

func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return common.UnknownStr
	}

	return typeKindNames[k]
}

// TypeInfo is one node of the type graph. Unnamed types such as *string
// have a zero ID and are not registered in TypeGraph.Types.
type TypeInfo struct {
	ID         TypeID
	Kind       TypeKind
	Underlying *TypeInfo // alias target
	ElemType   *TypeInfo // pointer and slice element
	Fields     []FieldInfo
	GoType     types.Type
	// Directives holds the //pathcodec: lines of the declaration's doc
	// comment with the prefix stripped.
	Directives []string
}

// HasDirective reports whether the declaration carries //pathcodec:name.
func (t *TypeInfo) HasDirective(name string) bool {
	return slices.Contains(t.Directives, name)
}

// FieldInfo is an exported struct field.
type FieldInfo struct {
	Name     string
	Type     *TypeInfo
	Tag      reflect.StructTag
	Embedded bool
}

// JSONName is the field's json tag name, or the Go name without one.
func (f *FieldInfo) JSONName() string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}

	return name
}

// CodecTag returns the raw pathcodec tag. A field tagged "-" or not
// tagged at all is not coded.
func (f *FieldInfo) CodecTag() (string, bool) {
	raw, ok := f.Tag.Lookup(TagKey)
	if !ok || raw == "-" {
		return "", false
	}

	return raw, true
}

// TypeGraph holds the declared types of the loaded packages.
type TypeGraph struct {
	Types    map[TypeID]*TypeInfo
	Packages map[string]*PackageInfo
	// Order lists package paths as the loader returned them; the first one
	// names the extracted schema.
	Order []string
}

func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns nil for unknown ids.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo lists a package's exported types in declaration order.
type PackageInfo struct {
	Path  string
	Name  string
	Types []TypeID
}
