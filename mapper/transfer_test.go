package mapper_test

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"struct-mapper/descriptor"
	"struct-mapper/diagnostic"
	"struct-mapper/mapper"
	"struct-mapper/options"
	"struct-mapper/primitive"
)

type Person struct {
	Name string
	Age  int
}

type PersonView struct {
	Name string
	Age  int
}

type Tagged struct {
	Name string
	Id   uuid.UUID
}

type TaggedView struct {
	Name string
	Id   int
}

func TestTransfer_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("same shape", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink)

		view, err := mapper.MapTo[PersonView](m, Person{Name: "Ada", Age: 36})
		require.NoError(t, err)
		assert.Equal(t, PersonView{Name: "Ada", Age: 36}, view)
		assert.Zero(t, sink.Len())
	})

	t.Run("excluded field is never attempted", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink)

		var view PersonView
		outcome, err := m.Transfer(Person{Name: "Ada", Age: 36}, &view, "age")
		require.NoError(t, err)

		assert.Equal(t, PersonView{Name: "Ada"}, view)
		assert.Equal(t, []string{"Age"}, outcome.Excluded)
		assert.Equal(t, 1, outcome.Considered)
		assert.Equal(t, 1, outcome.Copied)
		assert.Empty(t, outcome.Skipped)
		assert.Zero(t, sink.Len())
	})

	t.Run("incompatible field is reported and skipped", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink)

		view, err := mapper.MapTo[TaggedView](m, Tagged{Name: "Ada", Id: uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, TaggedView{Name: "Ada"}, view)

		records := sink.Diagnostics()
		require.Len(t, records, 1, spew.Sdump(records))
		assert.Equal(t, "Id", records[0].Field)
		assert.Equal(t, diagnostic.ReasonIncompatible, records[0].Reason)
		assert.Equal(t, "uuid.UUID", records[0].SourceType)
		assert.Equal(t, "int", records[0].TargetType)
		assert.Equal(t, "mapper_test.Tagged -> mapper_test.TaggedView", records[0].TypePair)
	})
}

func TestTransfer_Errors(t *testing.T) {
	t.Parallel()

	m := mapper.New(diagnostic.Discard)

	var (
		nilPerson *Person
		nilView   *PersonView
		number    int
	)

	tests := []struct {
		name   string
		source any
		target any
		err    error
	}{
		{"nil source", nil, &PersonView{}, mapper.ErrNilSource},
		{"typed nil source", nilPerson, &PersonView{}, mapper.ErrNilSource},
		{"nil target", Person{}, nil, mapper.ErrNilTarget},
		{"typed nil target", Person{}, nilView, mapper.ErrNilTarget},
		{"nil target behind pointer", Person{}, &nilView, mapper.ErrNilTarget},
		{"target by value", Person{}, PersonView{}, mapper.ErrTargetNotStruct},
		{"target is not a struct", Person{}, &number, mapper.ErrTargetNotStruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Transfer(tt.source, tt.target)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTransfer_PointerSources(t *testing.T) {
	t.Parallel()

	m := mapper.New(diagnostic.Discard)
	source := &Person{Name: "Ada", Age: 36}

	var view PersonView
	require.NoError(t, m.MapInto(&source, &view))
	assert.Equal(t, PersonView{Name: "Ada", Age: 36}, view)

	// non-struct sources have no fields
	outcome, err := m.Transfer(42, &view)
	require.NoError(t, err)
	assert.Zero(t, outcome.Considered)
	assert.Equal(t, "int -> mapper_test.PersonView", outcome.TypePair())
}

type Account struct {
	ID       int64
	EMAIL    string
	Nickname string
	Secret   string `map:"-"`
	Token    string `map:"writeonly"`
	Extra    bool
}

type Profile struct {
	ID       int64 `map:"readonly"`
	Email    string
	Nickname string
	Secret   string
	Token    string
}

func TestTransfer_Outcome(t *testing.T) {
	t.Parallel()

	var sink diagnostic.Collector
	m := mapper.New(&sink)

	source := Account{ID: 7, EMAIL: "ada@example.com", Nickname: "ada", Secret: "s", Token: "t", Extra: true}
	target := Profile{ID: 1, Secret: "keep", Token: "keep"}

	outcome, err := m.Transfer(source, &target)
	require.NoError(t, err)

	assert.Equal(t, Profile{ID: 1, Email: "ada@example.com", Nickname: "ada", Secret: "keep", Token: "keep"}, target)

	want := diagnostic.Outcome{
		Source:     "mapper_test.Account",
		Target:     "mapper_test.Profile",
		Considered: 4,
		Copied:     2,
		Skipped: []diagnostic.Skip{
			{Field: "ID", Reason: diagnostic.ReasonReadOnly},
			{Field: "Extra", Reason: diagnostic.ReasonNoTarget},
		},
	}
	if diff := cmp.Diff(want, outcome); diff != "" {
		t.Errorf("Transfer() outcome mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, outcome.Rejected())
	assert.Zero(t, sink.Len(), "silent skips never reach the sink")
}

type Author struct {
	Name string
}

type Contact struct {
	Name string `map:"readonly"`
	NAME string
}

func TestTransfer_PrefersWritableMatch(t *testing.T) {
	t.Parallel()

	var sink diagnostic.Collector
	m := mapper.New(&sink)

	target := Contact{Name: "keep"}
	outcome, err := m.Transfer(Author{Name: "Ada"}, &target)
	require.NoError(t, err)

	assert.Equal(t, Contact{Name: "keep", NAME: "Ada"}, target)
	assert.Equal(t, 1, outcome.Copied)
	assert.Empty(t, outcome.Skipped)
}

type Timing struct {
	Label   string
	Seconds float64
}

type Interval struct {
	Label   string
	Seconds time.Duration
}

func TestTransfer_SecondsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, secs := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e12} {
		t.Run(fmt.Sprint(secs), func(t *testing.T) {
			var sink diagnostic.Collector
			m := mapper.New(&sink, mapper.WithConversions(options.CategoryAll))

			target := Interval{Seconds: time.Minute}
			outcome, err := m.Transfer(Timing{Label: "warmup", Seconds: secs}, &target)
			require.NoError(t, err)

			assert.Equal(t, Interval{Label: "warmup", Seconds: time.Minute}, target)
			assert.Equal(t, 1, outcome.Copied)

			diags := sink.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, "Seconds", diags[0].Field)
			assert.Equal(t, diagnostic.ReasonRejected, diags[0].Reason)
			assert.ErrorIs(t, diags[0].Err, primitive.ErrOverflow)
		})
	}
}

type Measurement struct {
	Count    int32
	Ratio    float32
	Label    *string
	Missing  *string
	Weight   int
	Code     string
	Duration string
	Payload  any
	Empty    any
}

type MeasurementView struct {
	Count    int64
	Ratio    float64
	Label    string
	Missing  string
	Weight   *int
	Code     int
	Duration time.Duration
	Payload  int
	Empty    int
}

func TestTransfer_Conversions(t *testing.T) {
	t.Parallel()

	label := "primary"
	source := Measurement{
		Count: 3, Ratio: 0.5, Label: &label, Weight: 80, Code: "abc", Duration: "1m", Payload: 9,
	}

	t.Run("defaults", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink)

		var view MeasurementView
		outcome, err := m.Transfer(source, &view)
		require.NoError(t, err)

		assert.Equal(t, int64(3), view.Count)
		assert.Equal(t, float64(0.5), view.Ratio)
		assert.Equal(t, "primary", view.Label)
		require.NotNil(t, view.Weight)
		assert.Equal(t, 80, *view.Weight)
		assert.Equal(t, 9, view.Payload)
		assert.Zero(t, view.Code)
		assert.Zero(t, view.Duration)

		reasons := make(map[string]diagnostic.Reason)
		for _, d := range sink.Diagnostics() {
			reasons[d.Field] = d.Reason
		}

		assert.Equal(t, map[string]diagnostic.Reason{
			"Missing":  diagnostic.ReasonNilValue,
			"Code":     diagnostic.ReasonIncompatible,
			"Duration": diagnostic.ReasonIncompatible,
			"Empty":    diagnostic.ReasonNilValue,
		}, reasons)
		assert.Equal(t, 5, outcome.Copied)
		assert.Len(t, outcome.Rejected(), 4)
	})

	t.Run("opt-in categories", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink, mapper.WithConversions(
			options.CategoryDefault|options.CategoryTextNumber|options.CategoryDuration))

		var view MeasurementView
		_, err := m.Transfer(source, &view)
		require.NoError(t, err)

		assert.Equal(t, time.Minute, view.Duration)

		var rejected *diagnostic.Diagnostic
		for _, d := range sink.Diagnostics() {
			if d.Field == "Code" {
				rejected = &d
			}
		}

		require.NotNil(t, rejected, spew.Sdump(sink.Diagnostics()))
		assert.Equal(t, diagnostic.ReasonRejected, rejected.Reason)
		assert.Error(t, rejected.Err)
	})

	t.Run("pointer lifting disabled", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink, mapper.WithConversions(options.CategorySafeNumber))

		var view MeasurementView
		_, err := m.Transfer(source, &view)
		require.NoError(t, err)

		assert.Empty(t, view.Label)
		assert.Nil(t, view.Weight)
		assert.Equal(t, int64(3), view.Count)
	})
}

type Audit struct {
	CreatedAt time.Time
}

type revision struct {
	Revision int
}

type Document struct {
	*Audit
	*revision

	Title string
}

type DocumentRecord struct {
	CreatedAt time.Time
	Revision  int
	Title     string
}

func TestTransfer_EmbeddedPointers(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("target allocates exported embeds", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink)

		doc, err := mapper.MapTo[Document](m, DocumentRecord{CreatedAt: created, Revision: 3, Title: "memo"})
		require.NoError(t, err)

		require.NotNil(t, doc.Audit)
		assert.Equal(t, created, doc.CreatedAt)
		assert.Nil(t, doc.revision)
		assert.Equal(t, "memo", doc.Title)

		records := sink.Diagnostics()
		require.Len(t, records, 1)
		assert.Equal(t, "Revision", records[0].Field)
		assert.Equal(t, diagnostic.ReasonUnreachable, records[0].Reason)
	})

	t.Run("failed conversions do not allocate", func(t *testing.T) {
		type Stamp struct {
			CreatedAt string
		}

		doc, err := mapper.MapTo[Document](mapper.New(diagnostic.Discard), Stamp{CreatedAt: "yesterday"})
		require.NoError(t, err)
		assert.Nil(t, doc.Audit)
	})

	t.Run("source behind nil embed is unreadable", func(t *testing.T) {
		var sink diagnostic.Collector
		m := mapper.New(&sink)

		record, err := mapper.MapTo[DocumentRecord](m, Document{Title: "memo"})
		require.NoError(t, err)
		assert.Equal(t, DocumentRecord{Title: "memo"}, record)

		reasons := make(map[string]diagnostic.Reason)
		for _, d := range sink.Diagnostics() {
			reasons[d.Field] = d.Reason
		}

		assert.Equal(t, map[string]diagnostic.Reason{
			"CreatedAt": diagnostic.ReasonUnreadable,
			"Revision":  diagnostic.ReasonUnreadable,
		}, reasons)
	})
}

// skewed reports the Label field at the index of Count to force a failing assignment.
type skewed struct {
	descriptor.Provider
}

func (s skewed) Lookup(t reflect.Type, name string) (descriptor.Field, bool) {
	f, ok := s.Provider.Lookup(t, name)
	if ok && f.Name == "Label" {
		f.Index = []int{0}
	}

	return f, ok
}

func TestTransfer_RecoversPanics(t *testing.T) {
	t.Parallel()

	type Row struct {
		Count int
		Label string
	}

	var sink diagnostic.Collector
	m := mapper.New(&sink, mapper.WithProvider(skewed{descriptor.NewReflect("")}))

	var row Row
	outcome, err := m.Transfer(Row{Count: 2, Label: "x"}, &row)
	require.NoError(t, err)

	assert.Equal(t, 2, row.Count)
	assert.Equal(t, 1, outcome.Copied)

	records := sink.Diagnostics()
	require.Len(t, records, 1)
	assert.Equal(t, diagnostic.ReasonPanic, records[0].Reason)
	assert.ErrorContains(t, records[0].Err, "recovered")
}

func TestTransfer_SinkPanicIsContained(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	sink := diagnostic.Func(func(diagnostic.Diagnostic) { panic("sink is broken") })
	m := mapper.New(sink, mapper.WithLogger(zap.New(core)))

	view, err := mapper.MapTo[TaggedView](m, Tagged{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", view.Name)

	assert.Equal(t, 1, logs.FilterMessage("Diagnostic sink panicked").Len())
}

func TestTransfer_LogsSummary(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	m := mapper.New(diagnostic.Discard, mapper.WithLogger(zap.New(core)))

	_, err := m.Transfer(Account{EMAIL: "a"}, &Profile{}, "nickname")
	require.NoError(t, err)

	entries := logs.FilterMessage("Transfer completed").All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "mapper_test.Account -> mapper_test.Profile", ctx["types"])
	assert.Equal(t, int64(3), ctx["considered"])
	assert.Equal(t, int64(1), ctx["copied"])
	assert.Equal(t, int64(2), ctx["skipped"])
	assert.Equal(t, int64(1), ctx["excluded"])
}

func TestNew_NilSinkPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { mapper.New(nil) })
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	m := mapper.New(diagnostic.Discard)
	assert.Equal(t, options.CategoryDefault, m.Conversions())
	assert.IsType(t, &descriptor.Cache{}, m.Provider())

	m = mapper.New(diagnostic.Discard, mapper.WithCache(false), mapper.WithTagKey("db"))
	require.IsType(t, &descriptor.Reflect{}, m.Provider())
	assert.Equal(t, "db", m.Provider().(*descriptor.Reflect).TagKey())
}
