package common

import "golang.org/x/text/cases"

// FoldName returns the case-folded form of an identifier. Two names match
// case-insensitively exactly when their folded forms are equal.
func FoldName(name string) string {
	// cases.Caser keeps state between calls, so every call gets its own.
	return cases.Fold().String(name)
}

// FoldSet builds a lookup set of folded names.
func FoldSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[FoldName(name)] = struct{}{}
	}

	return set
}

// MatchName picks the item named name. Writable items rank first, then within a rank
// an exact name wins over the first case-insensitive match.
func MatchName[T any](items []T, name string, nameOf func(T) string, writable func(T) bool) (T, bool) {
	folded := FoldName(name)

	var fallback *T

	for _, rankWritable := range []bool{true, false} {
		for i := range items {
			if writable(items[i]) != rankWritable {
				continue
			}

			switch itemName := nameOf(items[i]); {
			case itemName == name:
				return items[i], true
			case fallback == nil && FoldName(itemName) == folded:
				fallback = &items[i]
			}
		}

		if fallback != nil {
			return *fallback, true
		}
	}

	var zero T

	return zero, false
}
