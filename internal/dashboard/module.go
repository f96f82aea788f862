package dashboard

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/dashboard/event"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
	"github.com/shandysiswandi/godna/internal/dashboard/fixture"
	"github.com/shandysiswandi/godna/internal/dashboard/inbound"
	"github.com/shandysiswandi/godna/internal/dashboard/stepper"
	"github.com/shandysiswandi/godna/internal/dashboard/store"
	"github.com/shandysiswandi/godna/internal/dashboard/usecase"
	"github.com/shandysiswandi/godna/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
	"github.com/shandysiswandi/godna/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/godna/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
	Numbers   pkguid.NumberID
	Metrics   *pkgmetric.Recorder
	Clock     clockwork.Clock
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}
	if dep.Numbers == nil {
		numbers, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, fmt.Errorf("dashboard: snowflake: %w", err)
		}
		dep.Numbers = numbers
	}
	if dep.Clock == nil {
		dep.Clock = clockwork.NewRealClock()
	}

	fixtures, err := fixture.New(dep.Config.GetString("dashboard.fixtures.path"))
	if err != nil {
		return nil, err
	}

	steps, err := fixtures.PipelineSteps(dep.Context)
	if err != nil {
		return nil, err
	}
	pipeline := stepper.New(steps, dep.Config.GetDuration("dashboard.pipeline.interval"),
		stepper.WithClock(dep.Clock),
		stepper.WithMetrics(dep.Metrics),
	)
	dep.Goroutine.Go(dep.Context, "pipeline-stepper", pipeline.Run)

	storage := store.NewInMemoryStore()
	bus := event.NewBus(int(dep.Config.GetInt("dashboard.chat.queue_size")))
	dep.Metrics.ObserveChatQueue(bus.Pending)
	responder := event.NewBotResponder(event.ResponderConfig{
		Store:   storage,
		Clock:   dep.Clock,
		ID:      dep.Numbers,
		Delay:   dep.Config.GetDuration("dashboard.chat.reply_delay"),
		Metrics: dep.Metrics,
	})
	consumer := event.NewChatConsumer(bus, responder, chatConfig(dep.Config, dep.Clock))
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Store:    storage,
		Fixtures: fixtures,
		Encoder:  export.NewEncoder(export.WithLayout(pdfLayout(dep.Config)), export.WithMetrics(dep.Metrics)),
		Events:   bus,
		Pipeline: pipeline,
		Clock:    dep.Clock,
		ID:       dep.ID,
		Numbers:  dep.Numbers,
		Metrics:  dep.Metrics,
		Upload: usecase.UploadConfig{
			MinProcessSeconds: int(dep.Config.GetInt("dashboard.upload.min_process_seconds")),
			MaxProcessSeconds: int(dep.Config.GetInt("dashboard.upload.max_process_seconds")),
		},
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return consumer.Stop, nil
}

func chatConfig(cfg pkgconfig.Config, clock clockwork.Clock) event.ConsumerConfig {
	return event.ConsumerConfig{
		Workers:     int(cfg.GetInt("dashboard.chat.workers")),
		MaxRetries:  int(cfg.GetInt("dashboard.chat.max_retries")),
		BaseBackoff: cfg.GetDuration("dashboard.chat.base_backoff"),
		DedupWindow: int(cfg.GetInt("dashboard.chat.dedup_window")),
		Clock:       clock,
	}
}

// pdfLayout is DefaultLayout with the configured page size and font size.
func pdfLayout(cfg pkgconfig.Config) export.Layout {
	layout := export.DefaultLayout
	if size := cfg.GetString("dashboard.export.pdf.page_size"); size != "" {
		layout.PageSize = size
	}
	if font := cfg.GetInt("dashboard.export.pdf.font_size"); font > 0 {
		layout.FontSize = float64(font)
	}
	return layout
}
