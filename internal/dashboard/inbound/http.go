package inbound

import (
	"context"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
	"github.com/shandysiswandi/godna/internal/dashboard/stepper"
	"github.com/shandysiswandi/godna/internal/dashboard/usecase"
	"github.com/shandysiswandi/godna/internal/dashboard/view"
	"github.com/shandysiswandi/godna/internal/pkg/pkgrouter"
)

type uc interface {
	Taxonomy(ctx context.Context) ([]entity.TaxonomyRow, error)
	Phylogeny(ctx context.Context) ([]entity.PhyloRow, error)
	Biodiversity(ctx context.Context) ([]entity.BiodiversityRow, error)
	Sites(ctx context.Context) ([]entity.GeoSite, error)
	Samples(ctx context.Context) ([]entity.SampleResult, error)
	PipelineSteps(ctx context.Context) ([]string, error)
	Species(ctx context.Context) ([]entity.Species, error)
	FAQ(ctx context.Context) ([]entity.FAQItem, error)
	Strings(ctx context.Context, lang string) (map[string]string, error)

	Insights(ctx context.Context) (usecase.Insights, error)
	View(ctx context.Context, key string) (view.Visualization, error)
	PipelineStatus(ctx context.Context) (stepper.Snapshot, error)

	ExportView(ctx context.Context, key, format string) (export.File, error)
	ExportSamples(ctx context.Context, format string) (export.File, error)
	ExportCustom(ctx context.Context, in usecase.CustomExportInput) (export.File, error)
	ExportDashboard(ctx context.Context, sessionID, format string) (export.File, error)

	Login(ctx context.Context, in usecase.LoginInput) (entity.Session, error)
	Signup(ctx context.Context, in usecase.SignupInput) (entity.Session, error)

	Upload(ctx context.Context, sessionID, fileName string) (usecase.UploadResult, error)
	History(ctx context.Context, sessionID string) ([]entity.UploadHistoryEntry, error)
	SelectedFile(ctx context.Context, sessionID string) (string, error)
	SubmitUserData(ctx context.Context, sessionID string, in usecase.UserDataInput) (entity.Contribution, error)
	Contributions(ctx context.Context, sessionID string) ([]entity.Contribution, error)
	SendChat(ctx context.Context, sessionID, text string) (entity.ChatMessage, error)
	Chat(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/taxonomy", end.Taxonomy)
	r.GET("/phylogeny", end.Phylogeny)
	r.GET("/biodiversity/metrics", end.BiodiversityMetrics)
	r.GET("/biodiversity/locations", end.BiodiversityLocations)
	r.GET("/samples", end.Samples)
	r.GET("/samples/export", end.ExportSamples) // ?format=
	r.GET("/pipeline/steps", end.PipelineSteps)
	r.GET("/pipeline/status", end.PipelineStatus)
	r.GET("/species", end.Species)
	r.GET("/faq", end.FAQ)
	r.GET("/i18n/:lang", end.Strings)

	r.GET("/insights", end.Insights)
	r.GET("/insights/abundance", end.Abundance)

	r.GET("/views/:view", end.View)
	r.GET("/views/:view/export", end.ExportView) // ?format=
	r.POST("/exports", end.ExportCustom)         // ?format=
	r.GET("/dashboard/export", end.ExportDashboard)

	r.POST("/auth/login", end.Login)
	r.POST("/auth/signup", end.Signup)

	r.POST("/uploads", end.Upload)
	r.GET("/uploads", end.History)
	r.POST("/user-data", end.SubmitUserData)
	r.GET("/user-data", end.Contributions)
	r.POST("/chat/messages", end.SendChat)
	r.GET("/chat/messages", end.Chat)
}
