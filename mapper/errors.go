package mapper

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNilSource       = errors.New("mapping source is nil")
	ErrNilTarget       = errors.New("mapping target is nil")
	ErrTargetNotStruct = errors.New("mapping target is not a pointer to a struct")
)

// ConstructionError is returned when the requested target type cannot be constructed.
type ConstructionError struct {
	Type reflect.Type
}

// Error implements error.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct mapping target of type %s: want a struct or a pointer to a struct", e.Type)
}
