package diagnostic

import "sync"

// Sink receives per-field diagnostics. Implementations must not block and must be
// safe for concurrent use when the mapper is shared.
type Sink interface {
	Report(d Diagnostic)
}

// Func adapts a plain function to Sink.
type Func func(d Diagnostic)

// Report implements Sink.
func (f Func) Report(d Diagnostic) { f(d) }

type discard struct{}

func (discard) Report(Diagnostic) {}

// Discard drops every diagnostic. Passing it is the explicit way to opt out.
var Discard Sink = discard{}

// Collector keeps every reported diagnostic in memory.
type Collector struct {
	mu      sync.Mutex
	records []Diagnostic
}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, d)
}

// Diagnostics returns a copy of the collected diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Diagnostic(nil), c.records...)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}

// Reset drops the collected diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = nil
}

type tee []Sink

func (t tee) Report(d Diagnostic) {
	for _, s := range t {
		s.Report(d)
	}
}

// Tee fans every diagnostic out to all sinks in order. Nil sinks are dropped.
func Tee(sinks ...Sink) Sink {
	var res tee

	for _, s := range sinks {
		if s != nil {
			res = append(res, s)
		}
	}

	return res
}
