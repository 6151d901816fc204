// Package descriptor provides runtime type introspection for the structural mapper.
//
// A Provider turns a reflect.Type into Field descriptors: the exported data members
// of a struct type, with promoted fields of embedded structs flattened into the
// parent. The mapper depends only on the Provider interface, so alternative
// introspection (static analysis, generated tables) can be plugged in.
//
// Access can be narrowed per field with the `map` struct tag:
//
//	type Account struct {
//	    ID       int64  `map:"readonly"`  // copied out, never written
//	    Password string `map:"-"`         // ignored entirely
//	    Token    string `map:"writeonly"` // written, never copied out
//	}
package descriptor
