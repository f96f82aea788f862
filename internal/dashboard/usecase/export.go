package usecase

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
	"github.com/shandysiswandi/godna/internal/dashboard/view"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

const (
	dashboardExportName  = "dashboard_data"
	dashboardExportSheet = "Taxonomy"
	dashboardExportTitle = "Taxonomy Data"
)

func parseFormat(value string) (entity.Format, error) {
	format, ok := entity.ParseFormat(value)
	if !ok {
		return "", pkgerror.NewInvalidExportRequest(fmt.Errorf("unsupported format %q", value))
	}
	return format, nil
}

// View adapts the collection behind key for display.
func (u *Usecase) View(ctx context.Context, key string) (view.Visualization, error) {
	v, ok := entity.ParseView(key)
	if !ok {
		return view.Visualization{}, pkgerror.NewUnknownViewKey(key)
	}

	c, err := u.collections(ctx)
	if err != nil {
		return view.Visualization{}, normalizeErr(err)
	}

	return view.Adapt(v, c)
}

// ExportView exports the records of one visualization tab.
func (u *Usecase) ExportView(ctx context.Context, key, format string) (export.File, error) {
	f, err := parseFormat(format)
	if err != nil {
		return export.File{}, err
	}

	vis, err := u.View(ctx, key)
	if err != nil {
		return export.File{}, err
	}

	return u.encoder.Encode(ctx, f, vis.Request())
}

func (u *Usecase) ExportSamples(ctx context.Context, format string) (export.File, error) {
	f, err := parseFormat(format)
	if err != nil {
		return export.File{}, err
	}

	samples, err := u.fixtures.Samples(ctx)
	if err != nil {
		return export.File{}, normalizeErr(err)
	}

	return u.encoder.Encode(ctx, f, view.Samples(samples))
}

// ExportCustom exports rows supplied by the caller.
func (u *Usecase) ExportCustom(ctx context.Context, in CustomExportInput) (export.File, error) {
	f, err := parseFormat(in.Format)
	if err != nil {
		return export.File{}, err
	}

	records := make([]export.Record, len(in.Data))
	for i, row := range in.Data {
		records[i] = export.Record(row)
	}

	return u.encoder.Encode(ctx, f, export.Request{
		Name:    in.Name,
		Sheet:   in.Sheet,
		Title:   in.Name,
		Columns: in.Columns,
		Records: records,
	})
}

// ExportDashboard is the "Export All" download. JSON carries the whole
// dashboard state of the session; the tabular formats carry the taxonomy.
func (u *Usecase) ExportDashboard(ctx context.Context, sessionID, format string) (export.File, error) {
	f, err := parseFormat(format)
	if err != nil {
		return export.File{}, err
	}

	history, err := u.store.ListHistory(ctx, sessionID)
	if err != nil {
		return export.File{}, mapStoreErr(err)
	}
	selected, err := u.store.SelectedFile(ctx, sessionID)
	if err != nil {
		return export.File{}, mapStoreErr(err)
	}

	taxonomy, err := u.fixtures.Taxonomy(ctx)
	if err != nil {
		return export.File{}, normalizeErr(err)
	}
	steps, err := u.fixtures.PipelineSteps(ctx)
	if err != nil {
		return export.File{}, normalizeErr(err)
	}
	sites, err := u.fixtures.Sites(ctx)
	if err != nil {
		return export.File{}, normalizeErr(err)
	}

	payload := dashboardPayload{
		TaxonomyData:          make([]taxonomyItem, len(taxonomy)),
		PipelineSteps:         steps,
		BiodiversityLocations: make([]siteItem, len(sites)),
		History:               make([]historyItem, len(history)),
	}
	if selected != "" {
		payload.FastaFileName = &selected
	}

	records := make([]export.Record, len(taxonomy))
	for i, row := range taxonomy {
		payload.TaxonomyData[i] = taxonomyItem{Name: row.Name, Value: row.Value}
		records[i] = export.Record{"name": row.Name, "value": row.Value}
	}
	for i, s := range sites {
		payload.BiodiversityLocations[i] = siteItem{Lat: s.Lat, Lng: s.Lng, Name: s.Name, Species: s.Species}
	}
	for i, h := range history {
		payload.History[i] = historyItem{FileName: h.FileName, Date: h.Date, Time: h.Time, ProcessTime: h.ProcessTime}
	}

	return u.encoder.Encode(ctx, f, export.Request{
		Name:    dashboardExportName,
		Sheet:   dashboardExportSheet,
		Title:   dashboardExportTitle,
		Columns: []string{"name", "value"},
		Records: records,
		Payload: payload,
	})
}

func (u *Usecase) collections(ctx context.Context) (view.Collections, error) {
	taxonomy, err := u.fixtures.Taxonomy(ctx)
	if err != nil {
		return view.Collections{}, err
	}
	phylogeny, err := u.fixtures.Phylogeny(ctx)
	if err != nil {
		return view.Collections{}, err
	}
	biodiversity, err := u.fixtures.Biodiversity(ctx)
	if err != nil {
		return view.Collections{}, err
	}

	return view.Collections{
		Taxonomy:     taxonomy,
		Phylogeny:    phylogeny,
		Biodiversity: biodiversity,
	}, nil
}
