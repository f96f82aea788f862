// Package export serializes tabular dashboard data to JSON, CSV, XLSX and PDF.
//
// A [Request] names the file, its columns and its records; [Encoder.Encode]
// validates it and returns a [File] whose name is the request name plus the
// format extension. Callers own the request: encoding never modifies it.
package export
