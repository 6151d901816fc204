package mapper

import (
	"errors"
	"fmt"
	"reflect"

	"struct-mapper/diagnostic"
	"struct-mapper/options"
	"struct-mapper/primitive"
)

// assign produces a value of type dst from v, trying in order: Go assignability,
// unwrapping interface values, pointer lifting and the enabled primitive conversions.
func (m *Mapper) assign(v reflect.Value, dst reflect.Type) (reflect.Value, *fieldError) {
	src := v.Type()

	if src.AssignableTo(dst) {
		return v, nil
	}

	if src.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, nilValue(src, dst)
		}

		return m.assign(v.Elem(), dst)
	}

	if m.conversions.Has(options.CategoryPointer) {
		switch {
		case src.Kind() == reflect.Ptr && dst.Kind() == reflect.Ptr:
			if v.IsNil() {
				return reflect.Zero(dst), nil
			}

			return m.lift(v.Elem(), dst)
		case src.Kind() == reflect.Ptr:
			if v.IsNil() {
				return reflect.Value{}, nilValue(src, dst)
			}

			return m.assign(v.Elem(), dst)
		case dst.Kind() == reflect.Ptr:
			return m.lift(v, dst)
		}
	}

	out, err := primitive.Convert(v, dst, m.conversions)
	if err != nil {
		if errors.Is(err, primitive.ErrNotAllowed) {
			return reflect.Value{}, &fieldError{reason: diagnostic.ReasonIncompatible}
		}

		return reflect.Value{}, &fieldError{reason: diagnostic.ReasonRejected, err: err}
	}

	return out, nil
}

// lift assigns v into a freshly allocated dst.Elem() and returns the pointer.
func (m *Mapper) lift(v reflect.Value, dst reflect.Type) (reflect.Value, *fieldError) {
	inner, fe := m.assign(v, dst.Elem())
	if fe != nil {
		return reflect.Value{}, fe
	}

	ptr := reflect.New(dst.Elem())
	ptr.Elem().Set(inner)

	return ptr, nil
}

func nilValue(src, dst reflect.Type) *fieldError {
	return &fieldError{
		reason: diagnostic.ReasonNilValue,
		err:    fmt.Errorf("nil %s cannot be stored into %s", src, dst),
	}
}
