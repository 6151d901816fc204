package analyze

import (
	"go/types"
	"reflect"
	"slices"

	"struct-mapper/descriptor"
)

type walkedField struct {
	v           *types.Var
	tag         reflect.StructTag
	index       []int
	depth       int
	unreachable bool
}

// visibleFields mirrors reflect.VisibleFields followed by descriptor.Reflect's
// filtering: a name is visible at its shallowest depth unless it is ambiguous there.
func visibleFields(st *types.Struct, tagKey string) []FieldInfo {
	type rank struct {
		depth int
		count int
	}

	ranks := make(map[string]*rank)
	walkFields(st, nil, 0, false, make(map[*types.Struct]bool), func(wf walkedField) {
		r, ok := ranks[wf.v.Name()]
		switch {
		case !ok || wf.depth < r.depth:
			ranks[wf.v.Name()] = &rank{depth: wf.depth, count: 1}
		case wf.depth == r.depth:
			r.count++
		}
	})

	var res []FieldInfo
	walkFields(st, nil, 0, false, make(map[*types.Struct]bool), func(wf walkedField) {
		if r := ranks[wf.v.Name()]; r.depth != wf.depth || r.count > 1 {
			return
		}

		if !wf.v.Exported() {
			return
		}

		if wf.v.Embedded() {
			if base, _ := embeddedStruct(wf.v.Type()); base != nil {
				return
			}
		}

		access := descriptor.ParseAccess(wf.tag, tagKey)
		res = append(res, FieldInfo{
			Name:        wf.v.Name(),
			Type:        wf.v.Type(),
			Tag:         wf.tag,
			Index:       wf.index,
			Readable:    access.Readable(),
			Writable:    access.Writable(),
			Unreachable: wf.unreachable,
		})
	})

	return res
}

// walkFields visits fields depth-first, descending into embedded structs right after
// the embedding field. Types already on the current path are not entered again.
func walkFields(st *types.Struct, index []int, depth int, unreachable bool, path map[*types.Struct]bool, visit func(walkedField)) {
	if path[st] {
		return
	}

	path[st] = true
	defer delete(path, st)

	for i := range st.NumFields() {
		f := st.Field(i)
		fieldIndex := append(slices.Clone(index), i)

		visit(walkedField{
			v:           f,
			tag:         reflect.StructTag(st.Tag(i)),
			index:       fieldIndex,
			depth:       depth,
			unreachable: unreachable,
		})

		if !f.Embedded() {
			continue
		}

		if base, ptr := embeddedStruct(f.Type()); base != nil {
			walkFields(base, fieldIndex, depth+1, unreachable || (ptr && !f.Exported()), path, visit)
		}
	}
}

// embeddedStruct returns the struct an embedded field promotes fields from.
func embeddedStruct(t types.Type) (*types.Struct, bool) {
	ptr := false
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		t = p.Elem()
		ptr = true
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return nil, false
	}

	return st, ptr
}
