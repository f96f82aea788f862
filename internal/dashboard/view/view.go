// Package view adapts the fixture collections into the label, column and
// record triple the visualization tabs and their exports share.
package view

import (
	"strings"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

// Collections holds the data backing every view.
type Collections struct {
	Taxonomy     []entity.TaxonomyRow
	Phylogeny    []entity.PhyloRow
	Biodiversity []entity.BiodiversityRow
}

// Visualization is one dashboard tab: its label, columns and chart rows.
type Visualization struct {
	View    entity.View
	Label   string
	Columns []string
	Records []export.Record
}

// ExportName is the label with whitespace replaced by underscores.
func (v Visualization) ExportName() string {
	return strings.Join(strings.Fields(v.Label), "_")
}

// Request builds the export request for the visualization. Label doubles
// as the sheet name and the document title.
func (v Visualization) Request() export.Request {
	return export.Request{
		Name:    v.ExportName(),
		Sheet:   v.Label,
		Title:   v.Label,
		Columns: v.Columns,
		Records: v.Records,
	}
}

// Adapt selects the rows behind view v. A view outside the known set is an
// UnknownViewKey error.
func Adapt(v entity.View, c Collections) (Visualization, error) {
	switch v {
	case entity.ViewTaxonomy:
		records := make([]export.Record, 0, len(c.Taxonomy))
		for _, row := range c.Taxonomy {
			records = append(records, export.Record{"name": row.Name, "value": row.Value})
		}
		return Visualization{
			View:    v,
			Label:   "Taxonomic Classification",
			Columns: []string{"name", "value"},
			Records: records,
		}, nil

	case entity.ViewPhylogeny:
		records := make([]export.Record, 0, len(c.Phylogeny))
		for _, row := range c.Phylogeny {
			records = append(records, export.Record{"group": row.Group, "value": row.Value})
		}
		return Visualization{
			View:    v,
			Label:   "Phylogenetic Analysis",
			Columns: []string{"group", "value"},
			Records: records,
		}, nil

	case entity.ViewBiodiversity:
		records := make([]export.Record, 0, len(c.Biodiversity))
		for _, row := range c.Biodiversity {
			records = append(records, export.Record{"location": row.Location, "metric": row.Metric})
		}
		return Visualization{
			View:    v,
			Label:   "Biodiversity Metric",
			Columns: []string{"location", "metric"},
			Records: records,
		}, nil

	default:
		return Visualization{}, pkgerror.NewUnknownViewKey(v.String())
	}
}

// SampleColumns is the column order of the sample results table.
var SampleColumns = []string{"sampleId", "species", "confidence", "location", "geneticMarkers", "status", "date"}

// Samples builds the export request for the sample results table.
func Samples(results []entity.SampleResult) export.Request {
	records := make([]export.Record, 0, len(results))
	for _, r := range results {
		records = append(records, export.Record{
			"sampleId":       r.SampleID,
			"species":        r.Species,
			"confidence":     r.Confidence,
			"location":       r.Location,
			"geneticMarkers": r.GeneticMarkers,
			"status":         string(r.Status),
			"date":           r.Date,
		})
	}

	return export.Request{
		Name:    "Sample_Results",
		Sheet:   "Samples",
		Title:   "Sample Results",
		Columns: SampleColumns,
		Records: records,
	}
}
