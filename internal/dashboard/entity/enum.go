package entity

import (
	"fmt"
	"strings"
)

type SampleStatus string

const (
	SampleStatusConfirmed SampleStatus = "Confirmed"
	SampleStatusReview    SampleStatus = "Review"
)

func (s SampleStatus) Valid() bool {
	return s == SampleStatusConfirmed || s == SampleStatusReview
}

// View names one of the visualization tabs.
type View int

const (
	ViewTaxonomy View = iota
	ViewPhylogeny
	ViewBiodiversity
)

// Views lists every view in tab order.
var Views = []View{ViewTaxonomy, ViewPhylogeny, ViewBiodiversity}

func (v View) String() string {
	switch v {
	case ViewTaxonomy:
		return "taxonomy"
	case ViewPhylogeny:
		return "phylogeny"
	case ViewBiodiversity:
		return "biodiversity"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// ParseView resolves a view key. "phylo" is accepted for phylogeny.
func ParseView(key string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "taxonomy":
		return ViewTaxonomy, true
	case "phylogeny", "phylo":
		return ViewPhylogeny, true
	case "biodiversity":
		return ViewBiodiversity, true
	default:
		return 0, false
	}
}

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists every export format.
var Formats = []Format{FormatJSON, FormatCSV, FormatXLSX, FormatPDF}

// ParseFormat resolves a format name; "excel" is accepted for xlsx.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, true
	case "csv":
		return FormatCSV, true
	case "xlsx", "excel":
		return FormatXLSX, true
	case "pdf":
		return FormatPDF, true
	default:
		return "", false
	}
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

type Role string

const (
	RoleResearcher Role = "researcher"
	RoleUser       Role = "user"
)

func ParseRole(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "researcher":
		return RoleResearcher, true
	case "user":
		return RoleUser, true
	default:
		return "", false
	}
}

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)
