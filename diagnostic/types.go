package diagnostic

import (
	"fmt"
	"strings"
)

// Reason explains why a source field was not copied.
type Reason int

const (
	// ReasonNoTarget means the target type has no field with that name.
	ReasonNoTarget Reason = iota
	// ReasonReadOnly means the target field exists but may not be written.
	ReasonReadOnly
	// ReasonIncompatible means no assignment or enabled conversion applies.
	ReasonIncompatible
	// ReasonNilValue means a nil pointer would be stored into a non-pointer field.
	ReasonNilValue
	// ReasonRejected means a conversion applied but failed for this value.
	ReasonRejected
	// ReasonUnreadable means the source field sits behind a nil embedded pointer.
	ReasonUnreadable
	// ReasonUnreachable means the target field sits behind an embedded pointer that cannot be allocated.
	ReasonUnreachable
	// ReasonPanic means the assignment panicked and was recovered.
	ReasonPanic
)

// String returns the snake case name of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNoTarget:
		return "no_target"
	case ReasonReadOnly:
		return "read_only"
	case ReasonIncompatible:
		return "incompatible"
	case ReasonNilValue:
		return "nil_value"
	case ReasonRejected:
		return "rejected"
	case ReasonUnreadable:
		return "unreadable"
	case ReasonUnreachable:
		return "unreachable"
	case ReasonPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Silent returns true for skips that are expected between loosely related types
// and therefore never reported to a Sink.
func (r Reason) Silent() bool {
	return r == ReasonNoTarget || r == ReasonReadOnly
}

// Diagnostic represents a single non-fatal per-field failure.
type Diagnostic struct {
	// TypePair identifies the mapped types, e.g. "store.Order -> warehouse.Order".
	TypePair string
	// Field is the source field name.
	Field string
	// SourceType is the declared type of the source field.
	SourceType string
	// TargetType is the declared type of the target field.
	TargetType string
	// Reason classifies the failure.
	Reason Reason
	// Err carries the underlying conversion error or recovered panic, if any.
	Err error
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypePair != "" {
		prefix = append(prefix, "["+d.TypePair+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := fmt.Sprintf("[%s] cannot set field of type %s from %s", d.Reason, d.TargetType, d.SourceType)
	if d.Err != nil {
		msg += ": " + d.Err.Error()
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Skip records one source field that was not copied.
type Skip struct {
	Field  string
	Reason Reason
}

// Outcome summarizes one transfer.
type Outcome struct {
	Source     string   // Source runtime type
	Target     string   // Target runtime type
	Considered int      // Readable, non-excluded source fields
	Copied     int      // Fields written into the target
	Excluded   []string // Source fields skipped by the exclusion set
	Skipped    []Skip   // Considered fields that were not copied
}

// Rejected returns the skips that were reported as diagnostics.
func (o Outcome) Rejected() []Skip {
	var res []Skip

	for _, s := range o.Skipped {
		if !s.Reason.Silent() {
			res = append(res, s)
		}
	}

	return res
}

// TypePair returns the "source -> target" label used in diagnostics.
func (o Outcome) TypePair() string {
	return o.Source + " -> " + o.Target
}
