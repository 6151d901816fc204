package match

import (
	"go/types"

	"struct-mapper/options"
	"struct-mapper/primitive"
)

// TypeCompatibility represents how a source field type reaches a target field type.
type TypeCompatibility int

const (
	// TypeIncompatible means no assignment or enabled conversion applies.
	TypeIncompatible TypeCompatibility = iota
	// TypeDynamic means the source is an interface and the outcome depends on its value.
	TypeDynamic
	// TypeConvertible means an enabled conversion category applies.
	TypeConvertible
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictConvertible  = "convertible"
	VerdictDynamic      = "dynamic"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeDynamic:
		return VerdictDynamic
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Category      options.CategoryEnum // Categories used when Compatibility is TypeConvertible
	Reason        string               // Human-readable explanation
	SourceType    string               // String representation of source type
	TargetType    string               // String representation of target type
}

// ScoreTypeCompatibility determines how the mapper assigns a source value of type
// source into a target of type target when only the allowed categories are enabled.
func ScoreTypeCompatibility(source, target types.Type, allowed options.CategoryEnum) TypeCompatibilityResult {
	res := scoreTypes(source, target, allowed)
	res.SourceType = source.String()
	res.TargetType = target.String()

	return res
}

func scoreTypes(source, target types.Type, allowed options.CategoryEnum) TypeCompatibilityResult {
	// Check for identical types
	if types.Identical(source, target) {
		return TypeCompatibilityResult{Compatibility: TypeIdentical, Reason: "types are identical"}
	}

	// Check for assignability (includes interface satisfaction)
	if types.AssignableTo(source, target) {
		return TypeCompatibilityResult{Compatibility: TypeAssignable, Reason: "source is assignable to target"}
	}

	if types.IsInterface(source) {
		return TypeCompatibilityResult{Compatibility: TypeDynamic, Reason: "depends on the dynamic value"}
	}

	if allowed.Has(options.CategoryPointer) {
		if res, ok := scorePointers(source, target, allowed); ok {
			return res
		}
	}

	if category, ok := primitive.LookupGoType(source, target, allowed); ok {
		return TypeCompatibilityResult{
			Compatibility: TypeConvertible,
			Category:      category,
			Reason:        "converted as " + category.String(),
		}
	}

	return TypeCompatibilityResult{Compatibility: TypeIncompatible, Reason: "types are not compatible"}
}

// scorePointers checks pointer lifting. It reports false when neither side is a pointer.
func scorePointers(source, target types.Type, allowed options.CategoryEnum) (TypeCompatibilityResult, bool) {
	sourcePtr, sourceIsPtr := types.Unalias(source).(*types.Pointer)
	targetPtr, targetIsPtr := types.Unalias(target).(*types.Pointer)

	var inner TypeCompatibilityResult

	switch {
	case sourceIsPtr && targetIsPtr:
		inner = scoreTypes(sourcePtr.Elem(), targetPtr.Elem(), allowed)
	case sourceIsPtr:
		// *T -> T fails at runtime for nil values
		inner = scoreTypes(sourcePtr.Elem(), target, allowed)
	case targetIsPtr:
		inner = scoreTypes(source, targetPtr.Elem(), allowed)
	default:
		return TypeCompatibilityResult{}, false
	}

	if inner.Compatibility < TypeConvertible {
		return inner, true
	}

	return TypeCompatibilityResult{
		Compatibility: TypeConvertible,
		Category:      options.CategoryPointer | inner.Category,
		Reason:        "requires pointer lifting",
	}, true
}
