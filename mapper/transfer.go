package mapper

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"struct-mapper/descriptor"
	"struct-mapper/diagnostic"
	"struct-mapper/internal/common"
)

// Transfer copies every readable source field that is not excluded into the
// same-named writable field of target. target must be a non-nil pointer to a struct;
// source may be a struct or a pointer to one. Exclusion names match
// case-insensitively.
//
// Only a nil source or an unusable target fail the call. Per-field failures are
// reported to the mapper's sink and listed in Outcome.Skipped; the remaining fields
// are still copied.
func (m *Mapper) Transfer(source, target any, exclude ...string) (diagnostic.Outcome, error) {
	src, err := sourceValue(source)
	if err != nil {
		return diagnostic.Outcome{}, err
	}

	dst, err := targetValue(target)
	if err != nil {
		return diagnostic.Outcome{}, err
	}

	outcome := m.transfer(src, dst, common.FoldSet(exclude))

	m.logger.Debug("Transfer completed",
		zap.String("types", outcome.TypePair()),
		zap.Int("considered", outcome.Considered),
		zap.Int("copied", outcome.Copied),
		zap.Int("skipped", len(outcome.Skipped)),
		zap.Int("excluded", len(outcome.Excluded)))

	return outcome, nil
}

func sourceValue(source any) (reflect.Value, error) {
	if source == nil {
		return reflect.Value{}, ErrNilSource
	}

	v := reflect.ValueOf(source)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, ErrNilSource
		}

		v = v.Elem()
	}

	return v, nil
}

func targetValue(target any) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, ErrNilTarget
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return reflect.Value{}, fmt.Errorf("%w: got %s", ErrTargetNotStruct, v.Type())
	}

	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, ErrNilTarget
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: got %T", ErrTargetNotStruct, target)
	}

	return v, nil
}

func (m *Mapper) transfer(src, dst reflect.Value, excluded map[string]struct{}) diagnostic.Outcome {
	outcome := diagnostic.Outcome{
		Source: src.Type().String(),
		Target: dst.Type().String(),
	}

	if src.Kind() != reflect.Struct {
		return outcome
	}

	for _, sf := range m.provider.Fields(src.Type()) {
		if !sf.Readable {
			continue
		}

		if _, ok := excluded[common.FoldName(sf.Name)]; ok {
			outcome.Excluded = append(outcome.Excluded, sf.Name)
			continue
		}

		outcome.Considered++

		df, ok := m.provider.Lookup(dst.Type(), sf.Name)
		if !ok {
			outcome.Skipped = append(outcome.Skipped, diagnostic.Skip{Field: sf.Name, Reason: diagnostic.ReasonNoTarget})
			continue
		}

		if !df.Writable {
			outcome.Skipped = append(outcome.Skipped, diagnostic.Skip{Field: sf.Name, Reason: diagnostic.ReasonReadOnly})
			continue
		}

		if fe := m.copyField(src, dst, sf, df); fe != nil {
			outcome.Skipped = append(outcome.Skipped, diagnostic.Skip{Field: sf.Name, Reason: fe.reason})
			m.report(diagnostic.Diagnostic{
				TypePair:   outcome.TypePair(),
				Field:      sf.Name,
				SourceType: sf.Type.String(),
				TargetType: df.Type.String(),
				Reason:     fe.reason,
				Err:        fe.err,
			})

			continue
		}

		outcome.Copied++
	}

	return outcome
}

// fieldError is a per-field failure that skips the field without failing the transfer.
type fieldError struct {
	reason diagnostic.Reason
	err    error
}

func (m *Mapper) copyField(src, dst reflect.Value, sf, df descriptor.Field) (fe *fieldError) {
	defer func() {
		if r := recover(); r != nil {
			fe = &fieldError{reason: diagnostic.ReasonPanic, err: fmt.Errorf("recovered: %v", r)}
		}
	}()

	value, err := src.FieldByIndexErr(sf.Index)
	if err != nil {
		return &fieldError{reason: diagnostic.ReasonUnreadable, err: err}
	}

	if sf.Type != df.Type {
		if value, fe = m.assign(value, df.Type); fe != nil {
			return fe
		}
	}

	field, fe := settableField(dst, df.Index)
	if fe != nil {
		return fe
	}

	field.Set(value)

	return nil
}

// settableField walks index like reflect.Value.FieldByIndex, allocating nil embedded
// struct pointers on the way.
func settableField(v reflect.Value, index []int) (reflect.Value, *fieldError) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, &fieldError{
						reason: diagnostic.ReasonUnreachable,
						err:    fmt.Errorf("cannot allocate unexported embedded %s", v.Type()),
					}
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	if !v.CanSet() {
		return reflect.Value{}, &fieldError{
			reason: diagnostic.ReasonUnreachable,
			err:    fmt.Errorf("field of type %s is not settable", v.Type()),
		}
	}

	return v, nil
}

func (m *Mapper) report(d diagnostic.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Diagnostic sink panicked", zap.String("types", d.TypePair), zap.Any("panic", r))
		}
	}()

	m.sink.Report(d)
}
