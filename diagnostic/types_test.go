package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReason_String(t *testing.T) {
	tests := []struct {
		reason   Reason
		expected string
		silent   bool
	}{
		{ReasonNoTarget, "no_target", true},
		{ReasonReadOnly, "read_only", true},
		{ReasonIncompatible, "incompatible", false},
		{ReasonNilValue, "nil_value", false},
		{ReasonRejected, "rejected", false},
		{ReasonUnreadable, "unreadable", false},
		{ReasonUnreachable, "unreachable", false},
		{ReasonPanic, "panic", false},
		{Reason(99), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
			assert.Equal(t, tt.silent, tt.reason.Silent())
		})
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		TypePair:   "store.Customer -> warehouse.Customer",
		Field:      "ID",
		SourceType: "uuid.UUID",
		TargetType: "int",
		Reason:     ReasonIncompatible,
	}
	assert.Equal(t,
		"[store.Customer -> warehouse.Customer] ID: [incompatible] cannot set field of type int from uuid.UUID",
		d.String())

	d.TypePair, d.Field = "", ""
	d.Reason, d.Err = ReasonRejected, errors.New("boom")
	assert.Equal(t, "[rejected] cannot set field of type int from uuid.UUID: boom", d.String())
}

func TestOutcome_Rejected(t *testing.T) {
	o := Outcome{
		Source: "store.Order",
		Target: "warehouse.Order",
		Skipped: []Skip{
			{Field: "Notes", Reason: ReasonNoTarget},
			{Field: "ID", Reason: ReasonIncompatible},
			{Field: "Total", Reason: ReasonReadOnly},
			{Field: "Placed", Reason: ReasonNilValue},
		},
	}

	assert.Equal(t, []Skip{{"ID", ReasonIncompatible}, {"Placed", ReasonNilValue}}, o.Rejected())
	assert.Equal(t, "store.Order -> warehouse.Order", o.TypePair())
	assert.Nil(t, Outcome{}.Rejected())
}
