package diagnostic

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapSink writes one log entry per diagnostic.
type ZapSink struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewZapSink creates a sink logging at warn level. A nil logger discards.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapSink{logger: logger, level: zapcore.WarnLevel}
}

// WithLevel returns a copy of the sink logging at level.
func (s *ZapSink) WithLevel(level zapcore.Level) *ZapSink {
	return &ZapSink{logger: s.logger, level: level}
}

// Report implements Sink.
func (s *ZapSink) Report(d Diagnostic) {
	ce := s.logger.Check(s.level, "Cannot set field")
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("types", d.TypePair),
		zap.String("field", d.Field),
		zap.String("target_type", d.TargetType),
		zap.String("source_type", d.SourceType),
		zap.Stringer("reason", d.Reason),
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}

	ce.Write(fields...)
}
