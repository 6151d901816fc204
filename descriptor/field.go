package descriptor

import (
	"reflect"
	"strings"
)

// DefaultTagKey is the struct tag consulted for field access rules.
const DefaultTagKey = "map"

// Field describes one data member of a struct type.
type Field struct {
	Name     string       // Go field name
	Type     reflect.Type // Declared field type
	Index    []int        // Index sequence for reflect.Value.FieldByIndex
	Readable bool         // Whether the mapper may read the field as a source
	Writable bool         // Whether the mapper may assign the field as a target
}

// Promoted returns true if the field is reached through an embedded struct.
func (f Field) Promoted() bool {
	return len(f.Index) > 1
}

// Provider enumerates field descriptors of runtime types.
//
// Fields returns the descriptors of t (or of the struct t points to) in declaration
// order, nil for non-struct types. Lookup returns the field named name. Writable
// fields are preferred, then an exact match over the first case-insensitive one.
// Returned values are shared and must not be modified.
type Provider interface {
	Fields(t reflect.Type) []Field
	Lookup(t reflect.Type, name string) (Field, bool)
}

// Access is the parsed value of a field access tag.
type Access int

const (
	AccessReadWrite Access = iota
	AccessReadOnly
	AccessWriteOnly
	AccessNone
)

// String returns the tag spelling of the access level.
func (a Access) String() string {
	switch a {
	case AccessReadWrite:
		return ""
	case AccessReadOnly:
		return "readonly"
	case AccessWriteOnly:
		return "writeonly"
	default:
		return "-"
	}
}

// Readable returns true if fields with this access may be read.
func (a Access) Readable() bool {
	return a == AccessReadWrite || a == AccessReadOnly
}

// Writable returns true if fields with this access may be written.
func (a Access) Writable() bool {
	return a == AccessReadWrite || a == AccessWriteOnly
}

// ParseAccess reads the access rule stored under key in tag.
// Unknown values are treated as read-write.
func ParseAccess(tag reflect.StructTag, key string) Access {
	value := tag.Get(key)
	// trim options
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		value = value[:idx]
	}

	switch strings.TrimSpace(value) {
	case "-":
		return AccessNone
	case "readonly":
		return AccessReadOnly
	case "writeonly":
		return AccessWriteOnly
	default:
		return AccessReadWrite
	}
}

// Base strips pointers from t and returns the pointed-to type with the pointer depth.
func Base(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Ptr {
		depth++
		base = base.Elem()
	}

	return
}
