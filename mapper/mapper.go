package mapper

import (
	"go.uber.org/zap"

	"struct-mapper/descriptor"
	"struct-mapper/diagnostic"
	"struct-mapper/options"
)

// Mapper is the structural mapping engine. Build it once with New and share it.
type Mapper struct {
	provider    descriptor.Provider
	sink        diagnostic.Sink
	logger      *zap.Logger
	conversions options.CategoryEnum
}

type settings struct {
	provider    descriptor.Provider
	tagKey      string
	cache       bool
	logger      *zap.Logger
	conversions options.CategoryEnum
}

func (s *settings) apply(opts ...Option) *settings {
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Option configures a Mapper.
type Option func(s *settings)

// WithProvider replaces the reflect based descriptor provider. Tag key and cache
// options are ignored when a provider is supplied.
func WithProvider(p descriptor.Provider) Option {
	return func(s *settings) { s.provider = p }
}

// WithTagKey selects the struct tag read for field access rules.
func WithTagKey(key string) Option {
	return func(s *settings) { s.tagKey = key }
}

// WithCache toggles descriptor memoization. Enabled by default.
func WithCache(enabled bool) Option {
	return func(s *settings) { s.cache = enabled }
}

// WithLogger sets the logger for transfer summaries.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConversions sets the conversions applied to non-assignable fields.
func WithConversions(allowed options.CategoryEnum) Option {
	return func(s *settings) { s.conversions = allowed }
}

// New creates a Mapper reporting per-field failures to sink. The sink is required:
// pass diagnostic.Discard to drop diagnostics deliberately.
func New(sink diagnostic.Sink, opts ...Option) *Mapper {
	if sink == nil {
		panic("mapper diagnostic sink cannot be nil, use diagnostic.Discard to drop diagnostics")
	}

	s := (&settings{
		tagKey:      descriptor.DefaultTagKey,
		cache:       true,
		logger:      zap.NewNop(),
		conversions: options.CategoryDefault,
	}).apply(opts...)

	provider := s.provider
	if provider == nil {
		provider = descriptor.NewReflect(s.tagKey)
		if s.cache {
			provider = descriptor.NewCache(provider)
		}
	}

	return &Mapper{
		provider:    provider,
		sink:        sink,
		logger:      s.logger,
		conversions: s.conversions,
	}
}

// Conversions returns the enabled conversion categories.
func (m *Mapper) Conversions() options.CategoryEnum {
	return m.conversions
}

// Provider returns the descriptor provider the mapper introspects types with.
func (m *Mapper) Provider() descriptor.Provider {
	return m.provider
}
