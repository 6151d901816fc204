package primitive

import (
	"go/types"
	"reflect"

	"struct-mapper/options"
)

// Endpoint classifies one side of a conversion. Enum endpoints keep their backing
// so textual and numeric enum rules can tell them apart.
type Endpoint struct {
	Kind     KindEnum
	Textual  bool // string backed enum
	Stringer bool // has a value receiver String() string method
}

// EndpointOf classifies a runtime type.
func EndpointOf(t reflect.Type) Endpoint {
	e := Endpoint{Kind: FromReflectType(t)}
	if e.Kind == KindPrimitiveEnum {
		e.Textual = t.Kind() == reflect.String
		e.Stringer = t.Implements(stringerType)
	}

	return e
}

// EndpointOfGoType classifies a go/types type the same way EndpointOf classifies
// its runtime counterpart.
func EndpointOfGoType(t types.Type) Endpoint {
	e := Endpoint{Kind: FromGoType(t)}
	if e.Kind != KindPrimitiveEnum {
		return e
	}

	if basic, ok := t.Underlying().(*types.Basic); ok {
		e.Textual = basic.Info()&types.IsString != 0
	}

	obj, _, _ := types.LookupFieldOrMethod(t, false, nil, "String")
	if fn, ok := obj.(*types.Func); ok {
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() == 0 && sig.Results().Len() == 1 &&
			types.Identical(sig.Results().At(0).Type(), types.Typ[types.String]) {
			e.Stringer = true
		}
	}

	return e
}

func (e Endpoint) intEnum() bool {
	return e.Kind == KindPrimitiveEnum && !e.Textual
}

// text reports whether a value of e has a textual form.
func (e Endpoint) text() bool {
	return e.Kind == KindString || e.Kind == KindPrimitiveEnum && (e.Textual || e.Stringer)
}

// width returns the narrowest and widest bit size a number kind may have. int and
// uint are 32 or 64 bits depending on the platform.
func width(k KindEnum) (lo, hi int) {
	if k == KindInt || k == KindUint {
		return 32, 64
	}

	return k.Bits(), k.Bits()
}

// mantissa is the count of integer bits a float represents exactly.
func mantissa(k KindEnum) int {
	if k == KindFloat32 {
		return 24
	}

	return 53
}

// widens reports whether every value of from is representable in to.
func widens(from, to KindEnum) bool {
	if from == to {
		return true
	}

	_, fromHi := width(from)
	toLo, _ := width(to)

	switch {
	case to.IsFloat():
		if from.IsFloat() {
			return fromHi <= toLo
		}

		return fromHi <= mantissa(to)
	case from.IsFloat():
		return false
	case from.IsSigned() == to.IsSigned():
		return fromHi <= toLo
	case from.IsUnsigned():
		// the sign bit is lost to the unsigned range
		return fromHi < toLo
	}

	return false
}

func either(from, to KindEnum, a, b func(KindEnum) bool) bool {
	return a(from) && b(to) || b(from) && a(to)
}

func is(kind KindEnum) func(KindEnum) bool {
	return func(k KindEnum) bool { return k == kind }
}

func isNanosecondInteger(k KindEnum) bool {
	return k.IsInteger() && k != KindUint64
}

type rule struct {
	category options.CategoryEnum
	accepts  func(from, to Endpoint) bool
}

// rules are ordered by category bit, the first enabled match wins.
var rules = []rule{
	{options.CategorySafeNumber, func(from, to Endpoint) bool {
		return from.Kind.IsNumber() && to.Kind.IsNumber() && widens(from.Kind, to.Kind)
	}},
	{options.CategoryUnsafeNumber, func(from, to Endpoint) bool {
		return from.Kind.IsNumber() && to.Kind.IsNumber() && !widens(from.Kind, to.Kind)
	}},
	{options.CategoryTextNumber, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, KindEnum.IsNumber, is(KindString))
	}},
	{options.CategoryNumericBool, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, KindEnum.IsInteger, is(KindBool))
	}},
	{options.CategoryTextualBool, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, is(KindString), is(KindBool))
	}},
	{options.CategoryDatetime, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, is(KindString), is(KindTime))
	}},
	{options.CategoryTimestamp, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, KindEnum.IsInteger, is(KindTime))
	}},
	{options.CategoryDuration, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, is(KindString), is(KindDuration))
	}},
	{options.CategoryNanoseconds, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, isNanosecondInteger, is(KindDuration))
	}},
	{options.CategorySeconds, func(from, to Endpoint) bool {
		return either(from.Kind, to.Kind, KindEnum.IsFloat, is(KindDuration))
	}},
	{options.CategoryEnumString, func(from, to Endpoint) bool {
		if from.Kind != KindPrimitiveEnum && to.Kind != KindPrimitiveEnum {
			return false
		}

		if from.intEnum() && to.intEnum() {
			return true
		}

		return from.text() && (to.Kind == KindString || to.Kind == KindPrimitiveEnum && to.Textual)
	}},
	{options.CategoryEnumNumber, func(from, to Endpoint) bool {
		return from.intEnum() && to.Kind.IsInteger() || from.Kind.IsInteger() && to.intEnum()
	}},
}

// Lookup returns the first enabled category that converts from into to.
// CategoryPointer has no rule, it is handled by the callers.
func Lookup(from, to Endpoint, allowed options.CategoryEnum) (options.CategoryEnum, bool) {
	if from.Kind == 0 || to.Kind == 0 {
		return options.CategoryNone, false
	}

	for _, r := range rules {
		if allowed&r.category != 0 && r.accepts(from, to) {
			return r.category, true
		}
	}

	return options.CategoryNone, false
}

// LookupType is Lookup over runtime types.
func LookupType(from, to reflect.Type, allowed options.CategoryEnum) (options.CategoryEnum, bool) {
	return Lookup(EndpointOf(from), EndpointOf(to), allowed)
}

// LookupGoType is Lookup over go/types types.
func LookupGoType(from, to types.Type, allowed options.CategoryEnum) (options.CategoryEnum, bool) {
	return Lookup(EndpointOfGoType(from), EndpointOfGoType(to), allowed)
}
