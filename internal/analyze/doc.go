// Package analyze provides static field descriptors for struct types.
//
// It uses golang.org/x/tools/go/packages with go/types to describe struct types
// without running them, applying the same rules as descriptor.Reflect: exported
// fields only, embedded structs flattened with Go's promotion and shadowing rules,
// access read from the mapper tag and names matched case-insensitively.
//
// Key types:
//   - TypeID: package import path + type name
//   - StructInfo: a named struct type and its visible fields
//   - FieldInfo: field name, type, tag, index path and access
package analyze
