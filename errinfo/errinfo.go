// Package errinfo turns error chains into serializable reports.
package errinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"struct-mapper/textcodec"
)

// Info is the serializable form of one error in a chain.
type Info struct {
	Type       string `json:"type"                  yaml:"type"`
	Message    string `json:"message"               yaml:"message"`
	Source     string `json:"source,omitempty"      yaml:"source,omitempty"`
	StackTrace string `json:"stack_trace,omitempty" yaml:"stack_trace,omitempty"`
	Inner      *Info  `json:"inner,omitempty"       yaml:"inner,omitempty"`
}

type settings struct {
	inner      bool
	stackTrace bool
}

// Option configures New.
type Option func(s *settings)

// WithInner controls whether wrapped errors are reported as Inner. Enabled by default.
func WithInner(enabled bool) Option {
	return func(s *settings) { s.inner = enabled }
}

// WithStackTrace controls whether StackTrace is filled from errors that carry one.
// Disabled by default.
func WithStackTrace(enabled bool) Option {
	return func(s *settings) { s.stackTrace = enabled }
}

// stackTracer is implemented by errors that record where they were created.
type stackTracer interface {
	StackTrace() string
}

// New describes err and, unless disabled, the errors it wraps. For errors wrapping
// several others only the first one is followed. New returns nil for a nil error.
func New(err error, opts ...Option) *Info {
	if err == nil {
		return nil
	}

	s := settings{inner: true}
	for _, opt := range opts {
		opt(&s)
	}

	return build(err, &s)
}

func build(err error, s *settings) *Info {
	info := &Info{
		Type:    typeName(err),
		Message: err.Error(),
		Source:  sourceOf(err),
	}

	if s.stackTrace {
		if st, ok := err.(stackTracer); ok {
			info.StackTrace = st.StackTrace()
		}
	}

	if s.inner {
		if next := unwrap(err); next != nil {
			info.Inner = build(next, s)
		}
	}

	return info
}

func unwrap(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}

	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, next := range multi.Unwrap() {
			if next != nil {
				return next
			}
		}
	}

	return nil
}

func typeName(err error) string {
	return reflect.TypeOf(err).String()
}

// sourceOf returns the import path of the package declaring the error type.
func sourceOf(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.PkgPath()
}

// ToJSON returns the indented JSON form of the report.
func (i *Info) ToJSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal error info: %w", err)
	}

	return string(data), nil
}

// ToJSONBytes returns ToJSON as UTF-8 bytes.
func (i *Info) ToJSONBytes() ([]byte, error) {
	text, err := i.ToJSON()
	if err != nil {
		return nil, err
	}

	return textcodec.UTF8Bytes(text, false), nil
}

// ToYAML returns the YAML form of the report.
func (i *Info) ToYAML() (string, error) {
	data, err := yaml.Marshal(i)
	if err != nil {
		return "", fmt.Errorf("failed to marshal error info: %w", err)
	}

	return string(data), nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (i *Info) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", i.Type)
	enc.AddString("message", i.Message)

	if i.Source != "" {
		enc.AddString("source", i.Source)
	}

	if i.StackTrace != "" {
		enc.AddString("stack_trace", i.StackTrace)
	}

	if i.Inner != nil {
		return enc.AddObject("inner", i.Inner)
	}

	return nil
}
