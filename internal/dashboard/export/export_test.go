package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
)

func taxonomyRequest() Request {
	return Request{
		Name:    "Taxonomic_Classification",
		Sheet:   "Taxonomy",
		Title:   "Taxonomy Data",
		Columns: []string{"name", "value"},
		Records: []Record{
			{"name": "Kingdom", "value": 400},
			{"name": "Phylum", "value": 300},
		},
	}
}

func errCode(t *testing.T, err error) pkgerror.Code {
	t.Helper()
	var perr *pkgerror.Error
	require.True(t, errors.As(err, &perr), "expected *pkgerror.Error, got %T", err)
	return perr.Code()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{name: "ok", req: taxonomyRequest()},
		{name: "no records is fine", req: Request{Name: "x", Columns: []string{"a"}}},
		{name: "blank name", req: Request{Name: "  ", Columns: []string{"a"}}, wantErr: "name is required"},
		{name: "no columns", req: Request{Name: "x"}, wantErr: "columns must not be empty"},
		{name: "blank column", req: Request{Name: "x", Columns: []string{"a", ""}}, wantErr: "blank"},
		{name: "duplicate column", req: Request{Name: "x", Columns: []string{"a", "a"}}, wantErr: "listed twice"},
		{
			name:    "record missing column",
			req:     Request{Name: "x", Columns: []string{"a", "b"}, Records: []Record{{"a": 1}}},
			wantErr: `record 0 has no column "b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCSV(t *testing.T) {
	body, err := CSV(taxonomyRequest())
	require.NoError(t, err)
	assert.Equal(t, "name,value\nKingdom,400\nPhylum,300", string(body))
}

func TestCSVQuotesDelimiters(t *testing.T) {
	req := Request{
		Name:    "sites",
		Columns: []string{"location", "note"},
		Records: []Record{{"location": "Bay of Bengal, East", "note": `say "hi"`}},
	}

	body, err := CSV(req)
	require.NoError(t, err)
	assert.Equal(t, "location,note\n\"Bay of Bengal, East\",\"say \"\"hi\"\"\"", string(body))
}

func TestCSVQuotesLeadingSpace(t *testing.T) {
	req := Request{
		Name:    "ranks",
		Columns: []string{"name"},
		Records: []Record{{"name": " Kingdom"}, {"name": "Phylum "}},
	}

	body, err := CSV(req)
	require.NoError(t, err)
	assert.Equal(t, "name\n\" Kingdom\"\nPhylum ", string(body))
}

func TestCSVHeaderOnly(t *testing.T) {
	body, err := CSV(Request{Name: "empty", Columns: []string{"name", "value"}})
	require.NoError(t, err)
	assert.Equal(t, "name,value", string(body))
}

func TestJSONRoundTrip(t *testing.T) {
	body, err := JSON(taxonomyRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "[\n  {"), "expected two-space indent, got %q", body)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []map[string]any{
		{"name": "Kingdom", "value": 400.0},
		{"name": "Phylum", "value": 300.0},
	}, got)
}

func TestJSONPrefersPayload(t *testing.T) {
	req := taxonomyRequest()
	req.Payload = map[string]any{"fastaFileName": "a.fasta"}

	body, err := JSON(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fastaFileName":"a.fasta"}`, string(body))
}

func TestJSONEmptyRecords(t *testing.T) {
	body, err := JSON(Request{Name: "x", Columns: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestXLSX(t *testing.T) {
	body, err := XLSX(taxonomyRequest())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Taxonomy"}, f.GetSheetList())

	rows, err := f.GetRows("Taxonomy")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "value"},
		{"Kingdom", "400"},
		{"Phylum", "300"},
	}, rows)
}

func TestSheetName(t *testing.T) {
	tests := map[string]string{
		"Taxonomy":                          "Taxonomy",
		"a/b:c":                             "a_b_c",
		"'quoted'":                          "quoted",
		"":                                  "Sheet1",
		"[]":                                "__",
		strings.Repeat("x", maxSheetName+5): strings.Repeat("x", maxSheetName),
	}
	for in, want := range tests {
		assert.Equal(t, want, SheetName(in), "SheetName(%q)", in)
	}
}

func TestLayoutPlace(t *testing.T) {
	l := Layout{Top: 10, Step: 10, Bottom: 10}

	got := l.place(3, 30)
	assert.Equal(t, []placement{{page: 1, y: 10}, {page: 1, y: 20}, {page: 2, y: 10}}, got)

	assert.Empty(t, l.place(0, 30))
}

func TestPDFLines(t *testing.T) {
	layout := DefaultLayout
	layout.Compress = false

	body, pages, err := PDF(taxonomyRequest(), layout)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	assert.Equal(t, 1, pages)
	assert.Equal(t, 3, bytes.Count(body, []byte("Tj ET")), "title plus one line per record")
	assert.Contains(t, string(body), "(name: Kingdom, value: 400) Tj")
}

func TestPDFPageBreaks(t *testing.T) {
	layout := DefaultLayout
	layout.Compress = false

	req := Request{Name: "many", Columns: []string{"n"}}
	for i := 0; i < 40; i++ {
		req.Records = append(req.Records, Record{"n": i})
	}

	body, pages, err := PDF(req, layout)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Equal(t, 41, bytes.Count(body, []byte("Tj ET")))
}

func TestEncode(t *testing.T) {
	enc := NewEncoder()
	ctx := context.Background()

	for _, format := range entity.Formats {
		t.Run(string(format), func(t *testing.T) {
			file, err := enc.Encode(ctx, format, taxonomyRequest())
			require.NoError(t, err)
			assert.Equal(t, "Taxonomic_Classification"+format.Extension(), file.Filename())
			assert.Equal(t, format.ContentType(), file.ContentType())
			assert.NotEmpty(t, file.Bytes())
		})
	}
}

func TestEncodeWithLayout(t *testing.T) {
	layout := DefaultLayout
	layout.PageSize = "Letter"
	layout.Step = 100
	enc := NewEncoder(WithLayout(layout))
	require.Equal(t, layout, enc.layout)

	req := Request{Name: "tall", Columns: []string{"n"}}
	for i := 0; i < 5; i++ {
		req.Records = append(req.Records, Record{"n": i})
	}

	file, err := enc.Encode(context.Background(), entity.FormatPDF, req)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Bytes(), []byte("%PDF-")))

	_, pages, err := PDF(req, enc.layout)
	require.NoError(t, err)
	assert.Equal(t, 2, pages, "three 100mm lines fit on a Letter page")
}

func TestEncodeRejectsInvalidRequest(t *testing.T) {
	rec := pkgmetric.NewRecorder()
	enc := NewEncoder(WithMetrics(rec))

	_, err := enc.Encode(context.Background(), entity.FormatCSV, Request{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeInvalidExportRequest, errCode(t, err))

	_, err = enc.Encode(context.Background(), entity.Format("docx"), taxonomyRequest())
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeInvalidExportRequest, errCode(t, err))

	_, err = enc.Encode(context.Background(), entity.FormatCSV, taxonomyRequest())
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(rec.Gatherer(), "godna_exports_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "csv/rejected, docx/rejected and csv/ok series")
}

func TestEncodeDoesNotMutateInput(t *testing.T) {
	req := taxonomyRequest()
	before := fmt.Sprint(req.Columns, req.Records)

	for _, format := range entity.Formats {
		_, err := NewEncoder().Encode(context.Background(), format, req)
		require.NoError(t, err)
	}

	assert.Equal(t, before, fmt.Sprint(req.Columns, req.Records))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "x", want: "x"},
		{in: 400, want: "400"},
		{in: int64(7), want: "7"},
		{in: 0.87, want: "0.87"},
		{in: 400.0, want: "400"},
		{in: true, want: "true"},
		{in: json.Number("12.5"), want: "12.5"},
		{in: []string{"a"}, want: "[a]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in), "formatValue(%#v)", tt.in)
	}
}
