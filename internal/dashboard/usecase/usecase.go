package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
	"github.com/shandysiswandi/godna/internal/dashboard/stepper"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

type Store interface {
	CreateSession(ctx context.Context, sess entity.Session) error
	GetSession(ctx context.Context, sessionID string) (entity.Session, error)
	PrependHistory(ctx context.Context, sessionID string, entry entity.UploadHistoryEntry) error
	ListHistory(ctx context.Context, sessionID string) ([]entity.UploadHistoryEntry, error)
	SetSelectedFile(ctx context.Context, sessionID, fileName string) error
	SelectedFile(ctx context.Context, sessionID string) (string, error)
	AppendChat(ctx context.Context, sessionID string, msg entity.ChatMessage) error
	ListChat(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)
	AddContribution(ctx context.Context, sessionID string, c entity.Contribution) error
	ListContributions(ctx context.Context, sessionID string) ([]entity.Contribution, error)
}

type Fixtures interface {
	Taxonomy(ctx context.Context) ([]entity.TaxonomyRow, error)
	Phylogeny(ctx context.Context) ([]entity.PhyloRow, error)
	Biodiversity(ctx context.Context) ([]entity.BiodiversityRow, error)
	Sites(ctx context.Context) ([]entity.GeoSite, error)
	Samples(ctx context.Context) ([]entity.SampleResult, error)
	PipelineSteps(ctx context.Context) ([]string, error)
	Species(ctx context.Context) ([]entity.Species, error)
	FAQ(ctx context.Context) ([]entity.FAQItem, error)
	Strings(ctx context.Context, lang entity.Language) (map[string]string, error)
}

type Encoder interface {
	Encode(ctx context.Context, format entity.Format, req export.Request) (export.File, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.ChatEvent) error
}

type Pipeline interface {
	Snapshot() stepper.Snapshot
}

type Clock interface {
	Now() time.Time
}

// UploadConfig bounds the simulated processing time, in whole seconds.
type UploadConfig struct {
	MinProcessSeconds int
	MaxProcessSeconds int
}

type Dependency struct {
	Store    Store
	Fixtures Fixtures
	Encoder  Encoder
	Events   EventPublisher
	Pipeline Pipeline
	Clock    Clock
	ID       pkguid.StringID
	Numbers  pkguid.NumberID
	Metrics  *pkgmetric.Recorder
	Upload   UploadConfig
	// RandIntn returns a uniform int in [0,n). Defaults to math/rand/v2.
	RandIntn func(n int) int
}

type Usecase struct {
	store    Store
	fixtures Fixtures
	encoder  Encoder
	events   EventPublisher
	pipeline Pipeline
	clock    Clock
	id       pkguid.StringID
	numbers  pkguid.NumberID
	metrics  *pkgmetric.Recorder
	upload   UploadConfig
	randIntn func(n int) int
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	randIntn := dep.RandIntn
	if randIntn == nil {
		randIntn = rand.Intn
	}

	upload := dep.Upload
	if upload.MinProcessSeconds <= 0 {
		upload.MinProcessSeconds = 2
	}
	if upload.MaxProcessSeconds < upload.MinProcessSeconds {
		upload.MaxProcessSeconds = max(10, upload.MinProcessSeconds)
	}

	encoder := dep.Encoder
	if encoder == nil {
		encoder = export.NewEncoder(export.WithMetrics(dep.Metrics))
	}

	return &Usecase{
		store:    dep.Store,
		fixtures: dep.Fixtures,
		encoder:  encoder,
		events:   dep.Events,
		pipeline: dep.Pipeline,
		clock:    clock,
		id:       dep.ID,
		numbers:  dep.Numbers,
		metrics:  dep.Metrics,
		upload:   upload,
		randIntn: randIntn,
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("session not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	return pkgerror.From(err)
}
