package match

import (
	"go/types"
	"testing"

	"struct-mapper/options"
)

func TestTypeCompatibility_String(t *testing.T) {
	tests := []struct {
		compat   TypeCompatibility
		expected string
	}{
		{TypeIdentical, "identical"},
		{TypeAssignable, "assignable"},
		{TypeConvertible, "convertible"},
		{TypeDynamic, "dynamic"},
		{TypeIncompatible, "incompatible"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.compat.String(); got != tt.expected {
				t.Errorf("TypeCompatibility.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTypeCompatibility_Score(t *testing.T) {
	// Verify ordering
	if TypeIncompatible.Score() >= TypeDynamic.Score() {
		t.Error("TypeIncompatible should have lower score than TypeDynamic")
	}
	if TypeDynamic.Score() >= TypeConvertible.Score() {
		t.Error("TypeDynamic should have lower score than TypeConvertible")
	}
	if TypeConvertible.Score() >= TypeAssignable.Score() {
		t.Error("TypeConvertible should have lower score than TypeAssignable")
	}
	if TypeAssignable.Score() >= TypeIdentical.Score() {
		t.Error("TypeAssignable should have lower score than TypeIdentical")
	}
}

func TestScoreTypeCompatibility(t *testing.T) {
	// Create basic types for testing
	intType := types.Typ[types.Int]
	int32Type := types.Typ[types.Int32]
	int64Type := types.Typ[types.Int64]
	stringType := types.Typ[types.String]

	pkg := types.NewPackage("example.com/shop", "shop")
	status := types.NewNamed(types.NewTypeName(0, pkg, "Status", nil), stringType, nil)
	level := types.NewNamed(types.NewTypeName(0, pkg, "Level", nil), intType, nil)
	stringer := types.NewInterfaceType([]*types.Func{
		types.NewFunc(0, pkg, "String", types.NewSignatureType(nil, nil, nil, nil,
			types.NewTuple(types.NewVar(0, pkg, "", stringType)), false)),
	}, nil).Complete()
	empty := types.NewInterfaceType(nil, nil).Complete()

	weekday := types.NewNamed(types.NewTypeName(0, pkg, "Weekday", nil), intType, nil)
	weekday.AddMethod(types.NewFunc(0, pkg, "String", types.NewSignatureType(
		types.NewVar(0, pkg, "d", weekday), nil, nil, nil,
		types.NewTuple(types.NewVar(0, pkg, "", stringType)), false)))

	tests := []struct {
		name     string
		source   types.Type
		target   types.Type
		allowed  options.CategoryEnum
		expected TypeCompatibility
		category options.CategoryEnum
	}{
		{"identical int", intType, intType, options.CategoryNone, TypeIdentical, 0},
		{"identical named", status, status, options.CategoryNone, TypeIdentical, 0},
		{"int to any", intType, empty, options.CategoryNone, TypeAssignable, 0},
		{"any to int", empty, intType, options.CategoryNone, TypeDynamic, 0},
		{"stringer to string", stringer, stringType, options.CategoryAll, TypeDynamic, 0},
		{"int32 widens", int32Type, int64Type, options.CategoryDefault, TypeConvertible, options.CategorySafeNumber},
		{"int64 narrows", int64Type, int32Type, options.CategoryDefault, TypeIncompatible, 0},
		{"int64 narrows unsafe", int64Type, int32Type, options.CategoryUnsafeNumber, TypeConvertible, options.CategoryUnsafeNumber},
		{"string to int", stringType, intType, options.CategoryDefault, TypeIncompatible, 0},
		{"string to int as text", stringType, intType, options.CategoryTextNumber, TypeConvertible, options.CategoryTextNumber},
		{"named string to string", status, stringType, options.CategoryEnumString, TypeConvertible, options.CategoryEnumString},
		{"int to enum", intType, level, options.CategoryEnumNumber, TypeConvertible, options.CategoryEnumNumber},
		{"text enum to int", status, intType, options.CategoryEnumNumber, TypeIncompatible, 0},
		{"int to text enum", intType, status, options.CategoryEnumNumber, TypeIncompatible, 0},
		{"int enum to string", level, stringType, options.CategoryEnumString, TypeIncompatible, 0},
		{"string to int enum", stringType, level, options.CategoryEnumString, TypeIncompatible, 0},
		{"stringer enum to string", weekday, stringType, options.CategoryEnumString, TypeConvertible, options.CategoryEnumString},
		{"stringer enum to text enum", weekday, status, options.CategoryEnumString, TypeConvertible, options.CategoryEnumString},
		{"int enum to int enum", level, weekday, options.CategoryEnumString, TypeConvertible, options.CategoryEnumString},
		{"pointer deref", types.NewPointer(stringType), stringType, options.CategoryDefault, TypeConvertible, options.CategoryPointer},
		{"pointer deref disabled", types.NewPointer(stringType), stringType, options.CategorySafeNumber, TypeIncompatible, 0},
		{"pointer lift widening", int32Type, types.NewPointer(int64Type), options.CategoryDefault, TypeConvertible,
			options.CategoryPointer | options.CategorySafeNumber},
		{"pointer to pointer", types.NewPointer(intType), types.NewPointer(int64Type), options.CategoryDefault, TypeConvertible,
			options.CategoryPointer | options.CategorySafeNumber},
		{"pointer to incompatible", types.NewPointer(stringType), intType, options.CategoryDefault, TypeIncompatible, 0},
		{"slices", types.NewSlice(intType), types.NewSlice(int64Type), options.CategoryAll, TypeIncompatible, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTypeCompatibility(tt.source, tt.target, tt.allowed)
			if result.Compatibility != tt.expected {
				t.Errorf("ScoreTypeCompatibility() = %v, want %v (reason: %s)",
					result.Compatibility, tt.expected, result.Reason)
			}

			if result.Category != tt.category {
				t.Errorf("ScoreTypeCompatibility() category = %v, want %v", result.Category, tt.category)
			}

			if result.SourceType != tt.source.String() || result.TargetType != tt.target.String() {
				t.Errorf("ScoreTypeCompatibility() types = %s -> %s", result.SourceType, result.TargetType)
			}
		})
	}
}
