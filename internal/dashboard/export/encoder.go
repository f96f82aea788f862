package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
)

// File is a generated export ready to be written to disk or sent over HTTP.
type File struct {
	name        string
	contentType string
	body        []byte
}

// Filename is the request name plus the format extension.
func (f File) Filename() string { return f.name }

// ContentType is the MIME type of the format.
func (f File) ContentType() string { return f.contentType }

// Bytes is the encoded document.
func (f File) Bytes() []byte { return f.body }

// Option configures an Encoder.
type Option func(*Encoder)

// WithLayout overrides the PDF page layout.
func WithLayout(l Layout) Option {
	return func(e *Encoder) { e.layout = l }
}

// WithMetrics records every export outcome on m.
func WithMetrics(m *pkgmetric.Recorder) Option {
	return func(e *Encoder) { e.metrics = m }
}

// Encoder turns export requests into files of the requested format.
type Encoder struct {
	layout  Layout
	metrics *pkgmetric.Recorder
}

// NewEncoder returns an Encoder using DefaultLayout for PDF output.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{layout: DefaultLayout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode validates req and renders it in format. Invalid requests and
// unsupported formats are InvalidExportRequest errors; writer failures are
// server errors.
func (e *Encoder) Encode(ctx context.Context, format entity.Format, req Request) (File, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		e.metrics.RecordExport(string(format), pkgmetric.OutcomeRejected, 0, time.Since(start))
		slog.WarnContext(ctx, "export request rejected", "name", req.Name, "format", string(format), "error", err)
		return File{}, pkgerror.NewInvalidExportRequest(err)
	}

	var (
		body []byte
		err  error
	)
	switch format {
	case entity.FormatJSON:
		body, err = JSON(req)
	case entity.FormatCSV:
		body, err = CSV(req)
	case entity.FormatXLSX:
		body, err = XLSX(req)
	case entity.FormatPDF:
		body, _, err = PDF(req, e.layout)
	default:
		e.metrics.RecordExport(string(format), pkgmetric.OutcomeRejected, 0, time.Since(start))
		return File{}, pkgerror.NewInvalidExportRequest(fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		e.metrics.RecordExport(string(format), pkgmetric.OutcomeError, 0, time.Since(start))
		slog.ErrorContext(ctx, "failed to encode export", "name", req.Name, "format", string(format), "error", err)
		return File{}, pkgerror.NewServer(err)
	}

	e.metrics.RecordExport(string(format), pkgmetric.OutcomeOK, len(body), time.Since(start))
	slog.InfoContext(ctx, "export generated", "name", req.Name, "format", string(format), "bytes", len(body))

	return File{
		name:        req.Name + format.Extension(),
		contentType: format.ContentType(),
		body:        body,
	}, nil
}
