// Package diagnostic provides the per-field failure records of the structural
// mapper, the Sink contract that receives them and the Outcome summary of a
// single transfer.
//
// Key capabilities:
//   - Rejected field records (incompatible types, nil into non-pointer, failed conversions)
//   - Outcome bookkeeping: considered, copied, excluded and skipped fields
//   - Sinks: Discard, Collector, Func, zap logger, OpenTelemetry counter and span events
package diagnostic
