package analyze

import (
	"go/types"
	"reflect"

	"struct-mapper/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "struct-mapper/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the package-name qualified form, matching reflect.Type.String.
func (t TypeID) Short() string {
	if alias := common.PkgAlias(t.PkgPath); alias != "" {
		return alias + "." + t.Name
	}

	return t.Name
}

// TypeKind represents the kind of a field type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type, resolved at runtime
	TypeKindNamed              // named type over a basic type (e.g., enums)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindNamed:
		return "named"
	default:
		return "unknown"
	}
}

// KindOf classifies t.
func KindOf(t types.Type) TypeKind {
	t = types.Unalias(t)

	if named, ok := t.(*types.Named); ok {
		if _, ok := named.Underlying().(*types.Basic); ok {
			return TypeKindNamed
		}
	}

	switch t.Underlying().(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Interface:
		return TypeKindInterface
	default:
		return TypeKindUnknown
	}
}

// TypeString formats t like reflect.Type.String, qualifying names by package name.
func TypeString(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string { return p.Name() })
}

// StructInfo describes a named struct type.
type StructInfo struct {
	ID     TypeID      // Unique identifier
	GoType types.Type  // The named go/types.Type
	Fields []FieldInfo // Visible exported fields in declaration order
}

// Lookup returns the field named name the way descriptor providers resolve it:
// writable fields first, then an exact match over the first case-insensitive one.
func (s *StructInfo) Lookup(name string) (FieldInfo, bool) {
	return common.MatchName(s.Fields, name,
		func(f FieldInfo) string { return f.Name },
		func(f FieldInfo) bool { return f.Writable })
}

// FieldInfo describes a visible struct field.
type FieldInfo struct {
	Name        string            // Go field name
	Type        types.Type        // Declared field type
	Tag         reflect.StructTag // Raw struct tag
	Index       []int             // Index path, as reflect.Value.FieldByIndex expects
	Readable    bool              // Whether the mapper may read the field
	Writable    bool              // Whether the mapper may assign the field
	Unreachable bool              // Promoted through an unexported embedded pointer
}

// Promoted returns true if the field is reached through an embedded struct.
func (f *FieldInfo) Promoted() bool {
	return len(f.Index) > 1
}

// TypeGraph holds all struct types of the loaded packages.
type TypeGraph struct {
	// Types maps TypeID to StructInfo for all named struct types.
	Types map[TypeID]*StructInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*StructInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the StructInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *StructInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named struct types defined in this package
}
