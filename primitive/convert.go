package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"struct-mapper/options"
)

var (
	ErrNotAllowed  = errors.New("conversion is not allowed")
	ErrOverflow    = errors.New("value overflows target type")
	ErrInvalidBool = errors.New("value has no boolean representation")
	ErrInvalidEnum = errors.New("value is not valid for enum type")

	errUnsupportedPair = errors.New("no runtime converter for kind pair")
)

var (
	stringerType  = reflect.TypeFor[fmt.Stringer]()
	validatorType = reflect.TypeFor[interface{ IsValid() bool }]()
)

// Convert converts v into a value of type dst using the first category in allowed
// that covers the kind pair. It never panics on supported pairs; parse failures,
// overflows and invalid enum values are returned as errors.
func Convert(v reflect.Value, dst reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	src := v.Type()
	srcKind, dstKind := FromReflectType(src), FromReflectType(dst)

	category, ok := LookupType(src, dst, allowed)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, src, dst)
	}

	switch category {
	case options.CategorySafeNumber, options.CategoryUnsafeNumber:
		return v.Convert(dst), nil
	case options.CategoryTextNumber:
		return convertTextNumber(v, dst, srcKind, dstKind)
	case options.CategoryNumericBool:
		return convertNumericBool(v, dst, dstKind)
	case options.CategoryTextualBool:
		return convertTextualBool(v, dst, dstKind)
	case options.CategoryDatetime:
		if dstKind == KindTime {
			t, err := time.Parse(time.RFC3339Nano, v.String())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(t), nil
		}

		return reflect.ValueOf(v.Interface().(time.Time).Format(time.RFC3339Nano)).Convert(dst), nil
	case options.CategoryTimestamp:
		if dstKind == KindTime {
			n, err := integerOf(v)
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(time.Unix(n, 0).UTC()), nil
		}

		return fromInteger(dst, v.Interface().(time.Time).Unix())
	case options.CategoryDuration:
		if dstKind == KindDuration {
			d, err := time.ParseDuration(v.String())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(d), nil
		}

		return reflect.ValueOf(time.Duration(v.Int()).String()).Convert(dst), nil
	case options.CategoryNanoseconds:
		if dstKind == KindDuration {
			n, err := integerOf(v)
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(time.Duration(n)), nil
		}

		return fromInteger(dst, v.Int())
	case options.CategorySeconds:
		if dstKind == KindDuration {
			return secondsToDuration(v.Float())
		}

		out := reflect.New(dst).Elem()
		out.SetFloat(time.Duration(v.Int()).Seconds())

		return out, nil
	case options.CategoryEnumString:
		return convertEnumString(v, dst, srcKind, dstKind)
	case options.CategoryEnumNumber:
		n, err := integerOf(v)
		if err != nil {
			return reflect.Value{}, err
		}

		return fromInteger(dst, n)
	}

	return reflect.Value{}, fmt.Errorf("%w: %s to %s", errUnsupportedPair, srcKind, dstKind)
}

func convertTextNumber(v reflect.Value, dst reflect.Type, srcKind, dstKind KindEnum) (reflect.Value, error) {
	if dstKind == KindString {
		var text string

		switch {
		case srcKind.IsSigned():
			text = strconv.FormatInt(v.Int(), 10)
		case srcKind.IsUnsigned():
			text = strconv.FormatUint(v.Uint(), 10)
		default:
			text = strconv.FormatFloat(v.Float(), 'f', -1, srcKind.Bits())
		}

		return reflect.ValueOf(text).Convert(dst), nil
	}

	text := strings.TrimSpace(v.String())
	out := reflect.New(dst).Elem()

	switch {
	case dstKind.IsSigned():
		n, err := strconv.ParseInt(text, 10, dstKind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(n)
	case dstKind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, dstKind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(n)
	default:
		f, err := strconv.ParseFloat(text, dstKind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	}

	return out, nil
}

// 0, 1 - valid, other numbers is error
func convertNumericBool(v reflect.Value, dst reflect.Type, dstKind KindEnum) (reflect.Value, error) {
	if dstKind == KindBool {
		n, err := integerOf(v)
		if err != nil {
			return reflect.Value{}, err
		}

		switch n {
		case 0:
			return reflect.ValueOf(false), nil
		case 1:
			return reflect.ValueOf(true), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %d", ErrInvalidBool, n)
		}
	}

	if v.Bool() {
		return fromInteger(dst, 1)
	}

	return fromInteger(dst, 0)
}

func convertTextualBool(v reflect.Value, dst reflect.Type, dstKind KindEnum) (reflect.Value, error) {
	if dstKind == KindString {
		return reflect.ValueOf(strconv.FormatBool(v.Bool())).Convert(dst), nil
	}

	switch strings.ToLower(strings.TrimSpace(v.String())) {
	default:
		return reflect.Value{}, fmt.Errorf("%w: only strings true/false, yes/no, on/off are allowed for bool, got: %q",
			ErrInvalidBool, v.String())
	case "true", "yes", "on":
		return reflect.ValueOf(true), nil
	case "false", "no", "off":
		return reflect.ValueOf(false), nil
	}
}

// convertEnumString routes enum values through their textual form: String() when
// the source implements fmt.Stringer, the underlying string otherwise. String backed
// target enums are checked with IsValid() when they implement it.
func convertEnumString(v reflect.Value, dst reflect.Type, srcKind, dstKind KindEnum) (reflect.Value, error) {
	src := v.Type()

	// integer enums to integer enums keep their numeric value
	if srcKind == KindPrimitiveEnum && dstKind == KindPrimitiveEnum &&
		isIntegerKind(src.Kind()) && isIntegerKind(dst.Kind()) {
		n, err := integerOf(v)
		if err != nil {
			return reflect.Value{}, err
		}

		return fromInteger(dst, n)
	}

	var text string

	switch {
	case srcKind == KindString:
		text = v.String()
	case src.Implements(stringerType):
		text = v.Interface().(fmt.Stringer).String()
	case src.Kind() == reflect.String:
		text = v.String()
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", errUnsupportedPair, src, dst)
	}

	out := reflect.ValueOf(text).Convert(dst)
	if dstKind == KindPrimitiveEnum && dst.Implements(validatorType) {
		if !out.Interface().(interface{ IsValid() bool }).IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: %q is not a valid value for %s", ErrInvalidEnum, text, dst)
		}
	}

	return out, nil
}

// maxSeconds bounds the float seconds a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func secondsToDuration(secs float64) (reflect.Value, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs >= maxSeconds || secs <= -maxSeconds {
		return reflect.Value{}, fmt.Errorf("%w: %v seconds does not fit time.Duration", ErrOverflow, secs)
	}

	return reflect.ValueOf(time.Duration(secs * float64(time.Second))), nil
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}

	return false
}

// integerOf reads any integer kinded value as int64.
func integerOf(v reflect.Value) (int64, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := v.Uint()
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d does not fit int64", ErrOverflow, n)
		}

		return int64(n), nil
	}

	return 0, fmt.Errorf("%w: %s is not an integer", errUnsupportedPair, v.Type())
}

// fromInteger builds a dst typed integer value, rejecting values that do not fit.
func fromInteger(dst reflect.Type, n int64) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, n, dst)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, n, dst)
		}
		out.SetUint(uint64(n))
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s is not an integer", errUnsupportedPair, dst)
	}

	return out, nil
}
