package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/export"
)

type TaxonomyRow struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type PhyloRow struct {
	Group string `json:"group"`
	Value int    `json:"value"`
}

type BiodiversityRow struct {
	Location string `json:"location"`
	Metric   int    `json:"metric"`
}

type GeoSite struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name"`
	Species int     `json:"species"`
}

type SampleResult struct {
	SampleID       string              `json:"sampleId"`
	Species        string              `json:"species"`
	Confidence     float64             `json:"confidence"`
	Location       string              `json:"location"`
	GeneticMarkers string              `json:"geneticMarkers"`
	Status         entity.SampleStatus `json:"status"`
	Date           string              `json:"date"`
}

type Species struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type InsightResponse struct {
	Total        int    `json:"total"`
	Confirmed    int    `json:"confirmed"`
	Review       int    `json:"review"`
	MostAbundant string `json:"mostAbundant"`
}

type SpeciesCount struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

type ViewResponse struct {
	View       string          `json:"view"`
	Label      string          `json:"label"`
	ExportName string          `json:"exportName"`
	Columns    []string        `json:"columns"`
	Records    []export.Record `json:"records"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SessionResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name,omitempty"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (SessionResponse) StatusCode() int {
	return http.StatusCreated
}

func (SessionResponse) Message() string {
	return "session created"
}

type UploadRequest struct {
	FileName string `json:"fileName"`
}

type HistoryEntry struct {
	FileName    string `json:"fileName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ProcessTime string `json:"processTime"`
}

type UploadResponse HistoryEntry

func (UploadResponse) StatusCode() int {
	return http.StatusCreated
}

func (UploadResponse) Message() string {
	return "file uploaded"
}

type HistoryResponse struct {
	History      []HistoryEntry `json:"history"`
	SelectedFile *string        `json:"selectedFile"`
}

type UserDataRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ImageName   string   `json:"imageName"`
}

type Contribution struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ImageName   string    `json:"imageName,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ContributionResponse Contribution

func (ContributionResponse) StatusCode() int {
	return http.StatusCreated
}

func (ContributionResponse) Message() string {
	return "data submitted"
}

type ContributionsResponse struct {
	Contributions []Contribution `json:"contributions"`
}

type ChatRequest struct {
	Text string `json:"text"`
}

type ChatMessage struct {
	ID     int64         `json:"id,string"`
	Text   string        `json:"text"`
	Sender entity.Sender `json:"sender"`
	SentAt time.Time     `json:"sentAt"`
}

type SentChatResponse ChatMessage

func (SentChatResponse) StatusCode() int {
	return http.StatusAccepted
}

func (SentChatResponse) Message() string {
	return "message sent"
}

type ExportRequest struct {
	Name    string           `json:"name"`
	Sheet   string           `json:"sheet"`
	Columns []string         `json:"columns"`
	Data    []map[string]any `json:"data"`
}
