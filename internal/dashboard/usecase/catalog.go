package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/fixture"
	"github.com/shandysiswandi/godna/internal/dashboard/insight"
	"github.com/shandysiswandi/godna/internal/dashboard/stepper"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

func (u *Usecase) Taxonomy(ctx context.Context) ([]entity.TaxonomyRow, error) {
	rows, err := u.fixtures.Taxonomy(ctx)
	return rows, wrapFixtureErr(err)
}

func (u *Usecase) Phylogeny(ctx context.Context) ([]entity.PhyloRow, error) {
	rows, err := u.fixtures.Phylogeny(ctx)
	return rows, wrapFixtureErr(err)
}

func (u *Usecase) Biodiversity(ctx context.Context) ([]entity.BiodiversityRow, error) {
	rows, err := u.fixtures.Biodiversity(ctx)
	return rows, wrapFixtureErr(err)
}

func (u *Usecase) Sites(ctx context.Context) ([]entity.GeoSite, error) {
	sites, err := u.fixtures.Sites(ctx)
	return sites, wrapFixtureErr(err)
}

func (u *Usecase) Samples(ctx context.Context) ([]entity.SampleResult, error) {
	samples, err := u.fixtures.Samples(ctx)
	return samples, wrapFixtureErr(err)
}

func (u *Usecase) PipelineSteps(ctx context.Context) ([]string, error) {
	steps, err := u.fixtures.PipelineSteps(ctx)
	return steps, wrapFixtureErr(err)
}

func (u *Usecase) Species(ctx context.Context) ([]entity.Species, error) {
	species, err := u.fixtures.Species(ctx)
	return species, wrapFixtureErr(err)
}

func (u *Usecase) FAQ(ctx context.Context) ([]entity.FAQItem, error) {
	faq, err := u.fixtures.FAQ(ctx)
	return faq, wrapFixtureErr(err)
}

func (u *Usecase) Strings(ctx context.Context, lang string) (map[string]string, error) {
	strs, err := u.fixtures.Strings(ctx, entity.Language(lang))
	if errors.Is(err, fixture.ErrUnknownLanguage) {
		return nil, pkgerror.NewBusiness("unknown language", pkgerror.CodeNotFound)
	}
	return strs, wrapFixtureErr(err)
}

// Insights aggregates the sample results for the key insight card and the
// abundance chart.
func (u *Usecase) Insights(ctx context.Context) (Insights, error) {
	samples, err := u.fixtures.Samples(ctx)
	if err != nil {
		return Insights{}, normalizeErr(err)
	}

	return Insights{
		Summary:   insight.Summarize(samples),
		Abundance: insight.SpeciesAbundance(samples),
	}, nil
}

func (u *Usecase) PipelineStatus(ctx context.Context) (stepper.Snapshot, error) {
	if u.pipeline == nil {
		return stepper.Snapshot{}, pkgerror.NewServer(errors.New("pipeline stepper is not running"))
	}
	return u.pipeline.Snapshot(), nil
}

func wrapFixtureErr(err error) error {
	if err == nil {
		return nil
	}
	return normalizeErr(err)
}
