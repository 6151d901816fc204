package options

import (
	"fmt"
	"strings"
)

// CategoryEnum selects conversions the mapper may apply when a source value is not
// directly assignable to the target field.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum: textual representation of an enum type (uses String/IsValid methods)
	CategoryEnumNumber                            // int <-> enum: integer enum types and their plain integer counterparts
	CategoryPointer                               // *T <-> T: dereference non-nil pointers, take address of a copy

	CategoryAll     CategoryEnum = (1 << iota) - 1                      // all categories combined
	CategoryNone    CategoryEnum = 0                                    // no categories selected
	CategoryDefault CategoryEnum = CategorySafeNumber | CategoryPointer // what a mapper allows unless configured
)

var categoryNames = []struct {
	name     string
	category CategoryEnum
}{
	{"safe_number", CategorySafeNumber},
	{"unsafe_number", CategoryUnsafeNumber},
	{"text_number", CategoryTextNumber},
	{"numeric_bool", CategoryNumericBool},
	{"textual_bool", CategoryTextualBool},
	{"datetime", CategoryDatetime},
	{"timestamp", CategoryTimestamp},
	{"duration", CategoryDuration},
	{"nanoseconds", CategoryNanoseconds},
	{"seconds", CategorySeconds},
	{"enum_string", CategoryEnumString},
	{"enum_number", CategoryEnumNumber},
	{"pointer", CategoryPointer},
}

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return other != CategoryNone && c&other == other
}

// String renders the enabled categories as a "|" separated list of names.
func (c CategoryEnum) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryAll:
		return "all"
	}

	var parts []string
	for _, entry := range categoryNames {
		if c&entry.category != 0 {
			parts = append(parts, entry.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseCategory resolves a single category name. Besides the per-category names,
// "all", "none" and "default" are accepted.
func ParseCategory(name string) (CategoryEnum, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all":
		return CategoryAll, nil
	case "none":
		return CategoryNone, nil
	case "default":
		return CategoryDefault, nil
	}

	for _, entry := range categoryNames {
		if strings.EqualFold(entry.name, strings.TrimSpace(name)) {
			return entry.category, nil
		}
	}

	return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
}

// ParseCategories combines several category names into one mask.
func ParseCategories(names []string) (CategoryEnum, error) {
	var res CategoryEnum

	for _, name := range names {
		category, err := ParseCategory(name)
		if err != nil {
			return CategoryNone, err
		}

		res |= category
	}

	return res, nil
}
