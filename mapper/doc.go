// Package mapper copies same-named fields between loosely related struct types.
//
// A Mapper walks the exported fields of a source value and, for every field the
// target type also declares (matched case-insensitively), assigns the value into the
// target. Fields that are missing on the target are skipped silently. Fields whose
// types cannot be reconciled are skipped too, and reported to the diagnostic.Sink
// the mapper was built with; a single bad field never aborts the transfer.
//
// Beyond Go assignability, the mapper applies the conversions enabled through
// options.CategoryEnum (lossless numeric widening and pointer lifting by default).
//
// Basic usage:
//
//	m := mapper.New(diagnostic.NewZapSink(logger))
//	view, err := mapper.MapTo[warehouse.Customer](m, record)
//	views, err := mapper.MapToList[warehouse.Customer](m, records)
//
// A Mapper is immutable and safe for concurrent use. It performs one read pass over
// the source and one write pass over the target and does not synchronize access to
// either.
package mapper
