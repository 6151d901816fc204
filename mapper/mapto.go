package mapper

import "reflect"

// MapTo creates a zero T and copies the fields of source into it. T must be a struct
// or a pointer to a struct; for pointers a new struct is allocated.
func MapTo[T any](m *Mapper, source any, exclude ...string) (T, error) {
	return MapToWith[T](m, source, nil, exclude...)
}

// MapToWith is MapTo with a customize callback invoked on the populated target
// before it is returned. A nil callback is ignored.
func MapToWith[T any](m *Mapper, source any, customize func(*T), exclude ...string) (T, error) {
	var target T

	ptr, err := construct(&target)
	if err != nil {
		return target, err
	}

	if err := m.MapInto(source, ptr, exclude...); err != nil {
		var zero T
		return zero, err
	}

	if customize != nil {
		customize(&target)
	}

	return target, nil
}

// MapInto copies the fields of source into the existing target, leaving fields that
// are not copied untouched. target must be a non-nil pointer to a struct.
func (m *Mapper) MapInto(source, target any, exclude ...string) error {
	_, err := m.Transfer(source, target, exclude...)
	return err
}

// construct prepares target for a transfer and returns the struct pointer to write into.
func construct[T any](target *T) (any, error) {
	t := reflect.TypeFor[T]()

	switch {
	case t.Kind() == reflect.Struct:
		return target, nil
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		ptr := reflect.New(t.Elem())
		reflect.ValueOf(target).Elem().Set(ptr)

		return ptr.Interface(), nil
	}

	return nil, &ConstructionError{Type: t}
}
