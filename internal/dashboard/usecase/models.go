package usecase

import (
	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/insight"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     string
}

type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     string
}

type UserDataInput struct {
	Name        string   `validate:"required"`
	Description string   `validate:"required"`
	Latitude    *float64 `validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `validate:"required,gte=-180,lte=180"`
	// ImageName is the optional picture attached to the sighting; only its
	// name is kept.
	ImageName string
}

// CustomExportInput is an export of caller-supplied rows.
type CustomExportInput struct {
	Format  string
	Name    string
	Sheet   string
	Columns []string
	Data    []map[string]any
}

type UploadResult struct {
	Entry entity.UploadHistoryEntry
}

type Insights struct {
	Summary   insight.Summary
	Abundance []insight.SpeciesCount
}

// dashboardPayload is the JSON body of the "Export All" download.
type dashboardPayload struct {
	TaxonomyData          []taxonomyItem `json:"taxonomyData"`
	PipelineSteps         []string       `json:"pipelineSteps"`
	BiodiversityLocations []siteItem     `json:"biodiversityLocations"`
	FastaFileName         *string        `json:"fastaFileName"`
	History               []historyItem  `json:"history"`
}

type taxonomyItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type siteItem struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name"`
	Species int     `json:"species"`
}

type historyItem struct {
	FileName    string `json:"fileName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ProcessTime string `json:"processTime"`
}
