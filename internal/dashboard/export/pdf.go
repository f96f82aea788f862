package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// Layout positions text lines on fixed-size pages, in millimetres.
type Layout struct {
	PageSize string
	FontSize float64
	Left     float64
	Top      float64 // baseline of the first line on a page
	Step     float64 // distance between baselines
	Bottom   float64 // no baseline may go below PageHeight-Bottom
	Compress bool
}

// DefaultLayout matches the dashboard's A4 report: 16pt text, 10mm spacing.
var DefaultLayout = Layout{
	PageSize: "A4",
	FontSize: 16,
	Left:     10,
	Top:      10,
	Step:     10,
	Bottom:   10,
	Compress: true,
}

type placement struct {
	page int
	y    float64
}

// place assigns a page and baseline to each of n lines, starting a new page
// whenever the next baseline would pass the bottom margin.
func (l Layout) place(n int, pageHeight float64) []placement {
	out := make([]placement, 0, n)
	page, y := 1, l.Top
	limit := pageHeight - l.Bottom

	for i := 0; i < n; i++ {
		if y > limit && y != l.Top {
			page++
			y = l.Top
		}
		out = append(out, placement{page: page, y: y})
		y += l.Step
	}
	return out
}

// PDF renders the title and one "col: value, ..." line per record.
func PDF(req Request, layout Layout) ([]byte, int, error) {
	doc := fpdf.New("P", "mm", layout.PageSize, "")
	doc.SetCompression(layout.Compress)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(req.title(), true)
	doc.SetCreator("godna", false)

	tr := doc.UnicodeTranslatorFromDescriptor("")

	lines := make([]string, 0, len(req.Records)+1)
	lines = append(lines, req.title())
	for _, rec := range req.Records {
		lines = append(lines, req.line(rec))
	}

	_, pageHeight := doc.GetPageSize()
	page := 0
	for i, p := range layout.place(len(lines), pageHeight) {
		if p.page != page {
			doc.AddPage()
			doc.SetFont("Helvetica", "", layout.FontSize)
			page = p.page
		}
		doc.Text(layout.Left, p.y, tr(lines[i]))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), doc.PageCount(), nil
}
