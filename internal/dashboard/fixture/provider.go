// Package fixture serves the dashboard's reference datasets.
//
// The data ships embedded as YAML and can be replaced with a file on disk.
// Every getter returns a fresh copy, so callers may sort or trim freely.
package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
)

//go:embed fixtures.yaml
var embedded []byte

// ErrUnknownLanguage is returned by Strings for a language without a table.
var ErrUnknownLanguage = errors.New("unknown language")

type document struct {
	Taxonomy []struct {
		Name  string `yaml:"name"`
		Value int    `yaml:"value"`
	} `yaml:"taxonomy"`
	Phylogeny []struct {
		Group string `yaml:"group"`
		Value int    `yaml:"value"`
	} `yaml:"phylogeny"`
	Biodiversity []struct {
		Location string `yaml:"location"`
		Metric   int    `yaml:"metric"`
	} `yaml:"biodiversity"`
	Sites []struct {
		Lat     float64 `yaml:"lat"`
		Lng     float64 `yaml:"lng"`
		Name    string  `yaml:"name"`
		Species int     `yaml:"species"`
	} `yaml:"sites"`
	Samples []struct {
		SampleID       string  `yaml:"sampleId"`
		Species        string  `yaml:"species"`
		Confidence     float64 `yaml:"confidence"`
		Location       string  `yaml:"location"`
		GeneticMarkers string  `yaml:"geneticMarkers"`
		Status         string  `yaml:"status"`
		Date           string  `yaml:"date"`
	} `yaml:"samples"`
	PipelineSteps []string `yaml:"pipelineSteps"`
	Species       []struct {
		ID          int    `yaml:"id"`
		Name        string `yaml:"name"`
		Class       string `yaml:"class"`
		Description string `yaml:"description"`
		ImageURL    string `yaml:"imageUrl"`
	} `yaml:"species"`
	FAQ []struct {
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"faq"`
	Strings map[string]map[string]string `yaml:"strings"`
}

// Provider holds the decoded datasets. It is safe for concurrent use.
type Provider struct {
	taxonomy     []entity.TaxonomyRow
	phylogeny    []entity.PhyloRow
	biodiversity []entity.BiodiversityRow
	sites        []entity.GeoSite
	samples      []entity.SampleResult
	steps        []string
	species      []entity.Species
	faq          []entity.FAQItem
	strings      map[entity.Language]map[string]string
}

// New loads fixtures from path, or the embedded set when path is empty.
func New(path string) (*Provider, error) {
	data := embedded
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fixture: read %q: %w", path, err)
		}
		data = raw
	}

	return Parse(data)
}

// Parse decodes a fixture document and checks the sample invariants.
func Parse(data []byte) (*Provider, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}

	p := &Provider{
		steps:   doc.PipelineSteps,
		strings: make(map[entity.Language]map[string]string, len(doc.Strings)),
	}

	for _, r := range doc.Taxonomy {
		p.taxonomy = append(p.taxonomy, entity.TaxonomyRow{Name: r.Name, Value: r.Value})
	}
	for _, r := range doc.Phylogeny {
		p.phylogeny = append(p.phylogeny, entity.PhyloRow{Group: r.Group, Value: r.Value})
	}
	for _, r := range doc.Biodiversity {
		p.biodiversity = append(p.biodiversity, entity.BiodiversityRow{Location: r.Location, Metric: r.Metric})
	}
	for _, s := range doc.Sites {
		p.sites = append(p.sites, entity.GeoSite{Lat: s.Lat, Lng: s.Lng, Name: s.Name, Species: s.Species})
	}
	for i, s := range doc.Samples {
		status := entity.SampleStatus(s.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("fixture: sample %d (%s): invalid status %q", i, s.SampleID, s.Status)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			return nil, fmt.Errorf("fixture: sample %d (%s): confidence %v outside [0,1]", i, s.SampleID, s.Confidence)
		}
		p.samples = append(p.samples, entity.SampleResult{
			SampleID:       s.SampleID,
			Species:        s.Species,
			Confidence:     s.Confidence,
			Location:       s.Location,
			GeneticMarkers: s.GeneticMarkers,
			Status:         status,
			Date:           s.Date,
		})
	}
	for _, s := range doc.Species {
		p.species = append(p.species, entity.Species{
			ID:          s.ID,
			Name:        s.Name,
			Class:       s.Class,
			Description: s.Description,
			ImageURL:    s.ImageURL,
		})
	}
	for _, f := range doc.FAQ {
		p.faq = append(p.faq, entity.FAQItem{Question: f.Question, Answer: f.Answer})
	}
	for lang, table := range doc.Strings {
		p.strings[entity.Language(lang)] = table
	}

	return p, nil
}

func (p *Provider) Taxonomy(context.Context) ([]entity.TaxonomyRow, error) {
	return clone(p.taxonomy), nil
}

func (p *Provider) Phylogeny(context.Context) ([]entity.PhyloRow, error) {
	return clone(p.phylogeny), nil
}

func (p *Provider) Biodiversity(context.Context) ([]entity.BiodiversityRow, error) {
	return clone(p.biodiversity), nil
}

func (p *Provider) Sites(context.Context) ([]entity.GeoSite, error) {
	return clone(p.sites), nil
}

func (p *Provider) Samples(context.Context) ([]entity.SampleResult, error) {
	return clone(p.samples), nil
}

func (p *Provider) PipelineSteps(context.Context) ([]string, error) {
	return clone(p.steps), nil
}

func (p *Provider) Species(context.Context) ([]entity.Species, error) {
	return clone(p.species), nil
}

func (p *Provider) FAQ(context.Context) ([]entity.FAQItem, error) {
	return clone(p.faq), nil
}

// Strings returns the UI string table for lang.
func (p *Provider) Strings(_ context.Context, lang entity.Language) (map[string]string, error) {
	table, ok := p.strings[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}

	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out, nil
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
