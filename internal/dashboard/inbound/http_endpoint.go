package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/usecase"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Taxonomy(ctx context.Context, _ *http.Request) (any, error) {
	rows, err := h.uc.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TaxonomyRow, len(rows))
	for i, row := range rows {
		out[i] = TaxonomyRow{Name: row.Name, Value: row.Value}
	}
	return out, nil
}

func (h *HTTPEndpoint) Phylogeny(ctx context.Context, _ *http.Request) (any, error) {
	rows, err := h.uc.Phylogeny(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PhyloRow, len(rows))
	for i, row := range rows {
		out[i] = PhyloRow{Group: row.Group, Value: row.Value}
	}
	return out, nil
}

func (h *HTTPEndpoint) BiodiversityMetrics(ctx context.Context, _ *http.Request) (any, error) {
	rows, err := h.uc.Biodiversity(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]BiodiversityRow, len(rows))
	for i, row := range rows {
		out[i] = BiodiversityRow{Location: row.Location, Metric: row.Metric}
	}
	return out, nil
}

func (h *HTTPEndpoint) BiodiversityLocations(ctx context.Context, _ *http.Request) (any, error) {
	sites, err := h.uc.Sites(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]GeoSite, len(sites))
	for i, s := range sites {
		out[i] = GeoSite{Lat: s.Lat, Lng: s.Lng, Name: s.Name, Species: s.Species}
	}
	return out, nil
}

func (h *HTTPEndpoint) Samples(ctx context.Context, _ *http.Request) (any, error) {
	samples, err := h.uc.Samples(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]SampleResult, len(samples))
	for i, s := range samples {
		out[i] = toHTTPSample(s)
	}
	return out, nil
}

func (h *HTTPEndpoint) PipelineSteps(ctx context.Context, _ *http.Request) (any, error) {
	return h.uc.PipelineSteps(ctx)
}

func (h *HTTPEndpoint) PipelineStatus(ctx context.Context, _ *http.Request) (any, error) {
	return h.uc.PipelineStatus(ctx)
}

func (h *HTTPEndpoint) Species(ctx context.Context, _ *http.Request) (any, error) {
	species, err := h.uc.Species(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Species, len(species))
	for i, s := range species {
		out[i] = Species{ID: s.ID, Name: s.Name, Class: s.Class, Description: s.Description, ImageURL: s.ImageURL}
	}
	return out, nil
}

func (h *HTTPEndpoint) FAQ(ctx context.Context, _ *http.Request) (any, error) {
	faq, err := h.uc.FAQ(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]FAQItem, len(faq))
	for i, f := range faq {
		out[i] = FAQItem{Question: f.Question, Answer: f.Answer}
	}
	return out, nil
}

func (h *HTTPEndpoint) Strings(ctx context.Context, _ *http.Request) (any, error) {
	return h.uc.Strings(ctx, pkgrouter.GetParam(ctx, "lang"))
}

func (h *HTTPEndpoint) Insights(ctx context.Context, _ *http.Request) (any, error) {
	res, err := h.uc.Insights(ctx)
	if err != nil {
		return nil, err
	}

	return InsightResponse{
		Total:        res.Summary.Total,
		Confirmed:    res.Summary.Confirmed,
		Review:       res.Summary.Review,
		MostAbundant: res.Summary.MostAbundant,
	}, nil
}

func (h *HTTPEndpoint) Abundance(ctx context.Context, _ *http.Request) (any, error) {
	res, err := h.uc.Insights(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]SpeciesCount, len(res.Abundance))
	for i, c := range res.Abundance {
		out[i] = SpeciesCount{Species: c.Species, Count: c.Count}
	}
	return out, nil
}

func (h *HTTPEndpoint) View(ctx context.Context, _ *http.Request) (any, error) {
	vis, err := h.uc.View(ctx, pkgrouter.GetParam(ctx, "view"))
	if err != nil {
		return nil, err
	}

	return ViewResponse{
		View:       vis.View.String(),
		Label:      vis.Label,
		ExportName: vis.ExportName(),
		Columns:    vis.Columns,
		Records:    vis.Records,
	}, nil
}

func (h *HTTPEndpoint) ExportView(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.ExportView(ctx, pkgrouter.GetParam(ctx, "view"), formatParam(r))
}

func (h *HTTPEndpoint) ExportSamples(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.ExportSamples(ctx, formatParam(r))
}

func (h *HTTPEndpoint) ExportCustom(ctx context.Context, r *http.Request) (any, error) {
	var req ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return h.uc.ExportCustom(ctx, usecase.CustomExportInput{
		Format:  formatParam(r),
		Name:    req.Name,
		Sheet:   req.Sheet,
		Columns: req.Columns,
		Data:    req.Data,
	})
}

func (h *HTTPEndpoint) ExportDashboard(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	return h.uc.ExportDashboard(ctx, sessionID, formatParam(r))
}

func (h *HTTPEndpoint) Login(ctx context.Context, r *http.Request) (any, error) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	sess, err := h.uc.Login(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		return nil, err
	}
	return toHTTPSession(sess), nil
}

func (h *HTTPEndpoint) Signup(ctx context.Context, r *http.Request) (any, error) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	sess, err := h.uc.Signup(ctx, usecase.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role})
	if err != nil {
		return nil, err
	}
	return toHTTPSession(sess), nil
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	fileName, err := extractFileName(r)
	if err != nil {
		return nil, err
	}

	res, err := h.uc.Upload(ctx, sessionID, fileName)
	if err != nil {
		return nil, err
	}
	return UploadResponse(toHTTPHistory(res.Entry)), nil
}

func (h *HTTPEndpoint) History(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	history, err := h.uc.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	selected, err := h.uc.SelectedFile(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := HistoryResponse{History: make([]HistoryEntry, len(history))}
	for i, e := range history {
		resp.History[i] = toHTTPHistory(e)
	}
	if selected != "" {
		resp.SelectedFile = &selected
	}
	return resp, nil
}

func (h *HTTPEndpoint) SubmitUserData(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	var req UserDataRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	c, err := h.uc.SubmitUserData(ctx, sessionID, usecase.UserDataInput{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageName:   req.ImageName,
	})
	if err != nil {
		return nil, err
	}

	return ContributionResponse(toHTTPContribution(c)), nil
}

func (h *HTTPEndpoint) Contributions(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	list, err := h.uc.Contributions(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := ContributionsResponse{Contributions: make([]Contribution, len(list))}
	for i, c := range list {
		resp.Contributions[i] = toHTTPContribution(c)
	}
	return resp, nil
}

func (h *HTTPEndpoint) SendChat(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	msg, err := h.uc.SendChat(ctx, sessionID, req.Text)
	if err != nil {
		return nil, err
	}
	return SentChatResponse(toHTTPChat(msg)), nil
}

func (h *HTTPEndpoint) Chat(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSession(r)
	if err != nil {
		return nil, err
	}

	msgs, err := h.uc.Chat(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]ChatMessage, len(msgs))
	for i, m := range msgs {
		out[i] = toHTTPChat(m)
	}
	return out, nil
}

func requireSession(r *http.Request) (string, error) {
	sessionID := pkgrouter.SessionID(r)
	if sessionID == "" {
		return "", pkgerror.NewBusiness(pkgrouter.HeaderSessionID+" header is required", pkgerror.CodeUnauthorized)
	}
	if !pkguid.IsUUID(sessionID) {
		return "", pkgerror.NewBusiness(pkgrouter.HeaderSessionID+" header is malformed", pkgerror.CodeUnauthorized)
	}
	return sessionID, nil
}

// formatParam defaults to json when the query has no format.
func formatParam(r *http.Request) string {
	return pkgrouter.QueryOr(r, "format", string(entity.FormatJSON))
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return pkgerror.NewInvalidFormat()
	}
	return nil
}

// extractFileName reads the name of the multipart "file" part without
// consuming its content. Non-multipart requests send {"fileName": "..."}.
func extractFileName(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFileName(r)
		}
	}

	var req UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", err
	}
	return req.FileName, nil
}

func extractMultipartFileName(r *http.Request) (string, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return "", pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return "", pkgerror.NewInvalidFormat()
		}

		name := part.FileName()
		isFile := part.FormName() == "file"
		_ = part.Close()

		if isFile {
			return name, nil
		}
	}
}

func toHTTPSample(s entity.SampleResult) SampleResult {
	return SampleResult{
		SampleID:       s.SampleID,
		Species:        s.Species,
		Confidence:     s.Confidence,
		Location:       s.Location,
		GeneticMarkers: s.GeneticMarkers,
		Status:         s.Status,
		Date:           s.Date,
	}
}

func toHTTPSession(s entity.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		CreatedAt: s.CreatedAt,
	}
}

func toHTTPHistory(e entity.UploadHistoryEntry) HistoryEntry {
	return HistoryEntry{
		FileName:    e.FileName,
		Date:        e.Date,
		Time:        e.Time,
		ProcessTime: e.ProcessTime,
	}
}

func toHTTPContribution(c entity.Contribution) Contribution {
	return Contribution{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		ImageName:   c.ImageName,
		SubmittedAt: c.SubmittedAt,
	}
}

func toHTTPChat(m entity.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:     m.ID,
		Text:   m.Text,
		Sender: m.Sender,
		SentAt: m.SentAt,
	}
}
