package mapper

import "fmt"

// MapToList maps every element of sources to a new T, preserving order. Empty or nil
// input yields an empty, non-nil slice. The first failing element aborts the batch.
func MapToList[T, S any](m *Mapper, sources []S) ([]T, error) {
	return MapToListWith[S, T](m, sources, nil)
}

// MapToListWith is MapToList with a customize callback receiving each source
// element and its populated target.
func MapToListWith[S, T any](m *Mapper, sources []S, customize func(S, *T)) ([]T, error) {
	res := make([]T, 0, len(sources))

	for i, source := range sources {
		var each func(*T)
		if customize != nil {
			each = func(target *T) { customize(source, target) }
		}

		target, err := MapToWith[T](m, source, each)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		res = append(res, target)
	}

	return res, nil
}
