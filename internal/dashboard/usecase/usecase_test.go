package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/dashboard/fixture"
	"github.com/shandysiswandi/godna/internal/dashboard/stepper"
	"github.com/shandysiswandi/godna/internal/dashboard/store"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

type testIDs struct{ n atomic.Int64 }

func (t *testIDs) Generate() int64 { return t.n.Add(1) }

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type testPublisher struct {
	mu     sync.Mutex
	events []entity.ChatEvent
}

func (p *testPublisher) Publish(ctx context.Context, event entity.ChatEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type testEnv struct {
	uc     *Usecase
	clock  *clockwork.FakeClock
	events *testPublisher
	draws  []int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fixtures, err := fixture.New("")
	if err != nil {
		t.Fatalf("fixture.New() err = %v", err)
	}

	env := &testEnv{
		clock:  clockwork.NewFakeClockAt(time.Date(2024, 1, 15, 14, 5, 9, 0, time.UTC)),
		events: &testPublisher{},
	}

	steps, _ := fixtures.PipelineSteps(context.Background())
	env.uc = New(Dependency{
		Store:    store.NewInMemoryStore(),
		Fixtures: fixtures,
		Events:   env.events,
		Pipeline: stepper.New(steps, time.Second),
		Clock:    env.clock,
		ID:       fixedID("session-1"),
		Numbers:  &testIDs{},
		RandIntn: func(n int) int {
			env.draws = append(env.draws, n)
			return n - 1
		},
	})

	return env
}

func (env *testEnv) login(t *testing.T) entity.Session {
	t.Helper()

	sess, err := env.uc.Login(context.Background(), LoginInput{Email: "asha@example.org", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() err = %v", err)
	}
	return sess
}

func assertCode(t *testing.T, err error, want pkgerror.Code) {
	t.Helper()

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *pkgerror.Error, got %T (%v)", err, err)
	}
	if perr.Code() != want {
		t.Fatalf("error code = %v, want %v", perr.Code(), want)
	}
}

func TestUsecase_Upload_Accepted(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t)

	res, err := env.uc.Upload(ctx, sess.ID, "reef_sample.fasta")
	if err != nil {
		t.Fatalf("Upload() err = %v", err)
	}

	want := entity.UploadHistoryEntry{
		FileName:    "reef_sample.fasta",
		Date:        "1/15/2024",
		Time:        "2:05:09 PM",
		ProcessTime: "10 sec",
	}
	if res.Entry != want {
		t.Fatalf("Upload() entry = %+v, want %+v", res.Entry, want)
	}
	if len(env.draws) != 1 || env.draws[0] != 9 {
		t.Fatalf("RandIntn draws = %v, want [9] for the 2..10 range", env.draws)
	}

	if _, err := env.uc.Upload(ctx, sess.ID, "second.fasta"); err != nil {
		t.Fatalf("Upload() second err = %v", err)
	}

	history, err := env.uc.History(ctx, sess.ID)
	if err != nil {
		t.Fatalf("History() err = %v", err)
	}
	if len(history) != 2 || history[0].FileName != "second.fasta" || history[1].FileName != "reef_sample.fasta" {
		t.Fatalf("History() = %+v, want newest first", history)
	}

	selected, _ := env.uc.SelectedFile(ctx, sess.ID)
	if selected != "second.fasta" {
		t.Fatalf("SelectedFile() = %q, want %q", selected, "second.fasta")
	}
}

func TestUsecase_Upload_Rejected(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t)

	if _, err := env.uc.Upload(ctx, sess.ID, "ok.fasta"); err != nil {
		t.Fatalf("Upload() err = %v", err)
	}

	for _, name := range []string{"reads.FASTA", "notes.txt", "sample.fasta.gz", ""} {
		_, err := env.uc.Upload(ctx, sess.ID, name)
		if err == nil {
			t.Fatalf("Upload(%q) expected error", name)
		}
		assertCode(t, err, pkgerror.CodeInvalidInput)

		var perr *pkgerror.Error
		errors.As(err, &perr)
		if perr.Msg() != "Please select a valid FASTA file (.fasta)" {
			t.Fatalf("Upload(%q) msg = %q", name, perr.Msg())
		}
	}

	history, _ := env.uc.History(ctx, sess.ID)
	if len(history) != 1 {
		t.Fatalf("History() len = %d, want 1", len(history))
	}
	if selected, _ := env.uc.SelectedFile(ctx, sess.ID); selected != "" {
		t.Fatalf("SelectedFile() = %q, want cleared after rejection", selected)
	}
}

func TestUsecase_Upload_UnknownSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.uc.Upload(context.Background(), "missing", "a.fasta")
	assertCode(t, err, pkgerror.CodeNotFound)
}

func TestUsecase_ProcessSecondsWithinRange(t *testing.T) {
	t.Parallel()

	uc := New(Dependency{})
	for i := 0; i < 200; i++ {
		n := uc.processSeconds()
		if n < 2 || n > 10 {
			t.Fatalf("processSeconds() = %d, want within [2,10]", n)
		}
	}
}

func TestUsecase_LoginAndSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		run     func(uc *Usecase) (entity.Session, error)
		wantMsg string
		role    entity.Role
	}{
		{
			name: "login ok",
			run: func(uc *Usecase) (entity.Session, error) {
				return uc.Login(context.Background(), LoginInput{Email: "a@b.io", Password: "x"})
			},
			role: entity.RoleResearcher,
		},
		{
			name: "login missing password",
			run: func(uc *Usecase) (entity.Session, error) {
				return uc.Login(context.Background(), LoginInput{Email: "a@b.io"})
			},
			wantMsg: "Please enter email and password",
		},
		{
			name: "login bad email",
			run: func(uc *Usecase) (entity.Session, error) {
				return uc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "x"})
			},
			wantMsg: "Please enter a valid email address",
		},
		{
			name: "signup ok as user",
			run: func(uc *Usecase) (entity.Session, error) {
				return uc.Signup(context.Background(), SignupInput{Name: "Asha", Email: "a@b.io", Password: "x", Role: "user"})
			},
			role: entity.RoleUser,
		},
		{
			name: "signup missing name",
			run: func(uc *Usecase) (entity.Session, error) {
				return uc.Signup(context.Background(), SignupInput{Email: "a@b.io", Password: "x"})
			},
			wantMsg: "Please fill all required fields",
		},
		{
			name: "signup unknown role",
			run: func(uc *Usecase) (entity.Session, error) {
				return uc.Signup(context.Background(), SignupInput{Name: "A", Email: "a@b.io", Password: "x", Role: "admin"})
			},
			wantMsg: `unknown role "admin"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			sess, err := tt.run(env.uc)

			if tt.wantMsg != "" {
				assertCode(t, err, pkgerror.CodeInvalidInput)
				var perr *pkgerror.Error
				errors.As(err, &perr)
				if perr.Msg() != tt.wantMsg {
					t.Fatalf("msg = %q, want %q", perr.Msg(), tt.wantMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if sess.ID != "session-1" || sess.Role != tt.role {
				t.Fatalf("session = %+v, want id session-1 role %v", sess, tt.role)
			}

			chat, err := env.uc.Chat(context.Background(), sess.ID)
			if err != nil {
				t.Fatalf("Chat() err = %v", err)
			}
			if len(chat) != 1 || chat[0].Text != Greeting || chat[0].Sender != entity.SenderBot {
				t.Fatalf("Chat() = %+v, want the greeting", chat)
			}
		})
	}
}

func TestUsecase_SubmitUserData(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t)

	lat, lng, bad := 19.07, 72.87, 200.0

	c, err := env.uc.SubmitUserData(ctx, sess.ID, UserDataInput{Name: "Jellyfish", Description: "bloom", Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatalf("SubmitUserData() err = %v", err)
	}
	if c.Name != "Jellyfish" || c.Latitude != lat || c.Longitude != lng || c.ID == 0 {
		t.Fatalf("SubmitUserData() = %+v", c)
	}

	invalid := []struct {
		in      UserDataInput
		wantMsg string
	}{
		{UserDataInput{Name: "  ", Description: "bloom", Latitude: &lat, Longitude: &lng}, "Please fill all required fields"},
		{UserDataInput{Name: "x", Description: "bloom", Longitude: &lng}, "Please fill all required fields"},
		{UserDataInput{Name: "x", Description: "bloom", Latitude: &bad, Longitude: &lng}, "latitude must be between -90 and 90"},
		{UserDataInput{Name: "x", Description: "bloom", Latitude: &lat, Longitude: &bad}, "longitude must be between -180 and 180"},
		{UserDataInput{Name: "x", Latitude: &bad, Longitude: &bad}, "Please fill all required fields"},
	}
	for i, tc := range invalid {
		_, err := env.uc.SubmitUserData(ctx, sess.ID, tc.in)
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		assertCode(t, err, pkgerror.CodeInvalidInput)
		var perr *pkgerror.Error
		if !errors.As(err, &perr) || perr.Msg() != tc.wantMsg {
			t.Fatalf("case %d: message = %v, want %q", i, err, tc.wantMsg)
		}
	}

	list, err := env.uc.Contributions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Contributions() err = %v", err)
	}
	if len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("Contributions() = %+v, want only the accepted sighting", list)
	}

	_, err = env.uc.Contributions(ctx, "missing")
	assertCode(t, err, pkgerror.CodeNotFound)
}

func TestUsecase_SendChat(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t)

	msg, err := env.uc.SendChat(ctx, sess.ID, "  what is eDNA?  ")
	if err != nil {
		t.Fatalf("SendChat() err = %v", err)
	}
	if msg.Text != "what is eDNA?" || msg.Sender != entity.SenderUser {
		t.Fatalf("SendChat() = %+v", msg)
	}

	if len(env.events.events) != 1 {
		t.Fatalf("published %d events, want 1", len(env.events.events))
	}
	ev := env.events.events[0]
	if ev.SessionID != sess.ID || ev.MessageID != msg.ID || ev.EventID == "" {
		t.Fatalf("published event = %+v", ev)
	}

	chat, _ := env.uc.Chat(ctx, sess.ID)
	if len(chat) != 2 || chat[1].ID != msg.ID {
		t.Fatalf("Chat() = %+v, want greeting then message", chat)
	}

	_, err = env.uc.SendChat(ctx, sess.ID, "   ")
	assertCode(t, err, pkgerror.CodeInvalidInput)
}

func TestUsecase_ExportView(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	file, err := env.uc.ExportView(ctx, "taxonomy", "csv")
	if err != nil {
		t.Fatalf("ExportView() err = %v", err)
	}
	if file.Filename() != "Taxonomic_Classification.csv" {
		t.Fatalf("ExportView() filename = %q", file.Filename())
	}
	if !strings.HasPrefix(string(file.Bytes()), "name,value\nKingdom,400\nPhylum,300\n") {
		t.Fatalf("ExportView() body = %q", file.Bytes())
	}
	if strings.HasSuffix(string(file.Bytes()), "\n") {
		t.Fatal("ExportView() body ends with a newline")
	}

	file, err = env.uc.ExportView(ctx, "phylo", "excel")
	if err != nil {
		t.Fatalf("ExportView(phylo) err = %v", err)
	}
	if file.Filename() != "Phylogenetic_Analysis.xlsx" {
		t.Fatalf("ExportView(phylo) filename = %q", file.Filename())
	}

	_, err = env.uc.ExportView(ctx, "genome", "csv")
	assertCode(t, err, pkgerror.CodeUnknownViewKey)

	_, err = env.uc.ExportView(ctx, "taxonomy", "docx")
	assertCode(t, err, pkgerror.CodeInvalidExportRequest)
}

func TestUsecase_ExportCustom(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	file, err := env.uc.ExportCustom(ctx, CustomExportInput{
		Format:  "csv",
		Name:    "sightings",
		Columns: []string{"name", "value"},
		Data:    []map[string]any{{"name": "Kingdom", "value": 400.0}, {"name": "Phylum", "value": 300.0}},
	})
	if err != nil {
		t.Fatalf("ExportCustom() err = %v", err)
	}
	if got := string(file.Bytes()); got != "name,value\nKingdom,400\nPhylum,300" {
		t.Fatalf("ExportCustom() body = %q", got)
	}

	_, err = env.uc.ExportCustom(ctx, CustomExportInput{
		Format:  "json",
		Name:    "broken",
		Columns: []string{"name", "value"},
		Data:    []map[string]any{{"name": "Kingdom"}},
	})
	assertCode(t, err, pkgerror.CodeInvalidExportRequest)
}

func TestUsecase_ExportDashboard(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	sess := env.login(t)

	file, err := env.uc.ExportDashboard(ctx, sess.ID, "json")
	if err != nil {
		t.Fatalf("ExportDashboard() err = %v", err)
	}
	if file.Filename() != "dashboard_data.json" {
		t.Fatalf("ExportDashboard() filename = %q", file.Filename())
	}

	var empty map[string]any
	if err := json.Unmarshal(file.Bytes(), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if empty["fastaFileName"] != nil {
		t.Fatalf("fastaFileName = %v, want null before any upload", empty["fastaFileName"])
	}

	if _, err := env.uc.Upload(ctx, sess.ID, "reef.fasta"); err != nil {
		t.Fatalf("Upload() err = %v", err)
	}

	file, err = env.uc.ExportDashboard(ctx, sess.ID, "json")
	if err != nil {
		t.Fatalf("ExportDashboard() err = %v", err)
	}

	var payload struct {
		TaxonomyData          []map[string]any `json:"taxonomyData"`
		PipelineSteps         []string         `json:"pipelineSteps"`
		BiodiversityLocations []map[string]any `json:"biodiversityLocations"`
		FastaFileName         *string          `json:"fastaFileName"`
		History               []map[string]any `json:"history"`
	}
	if err := json.Unmarshal(file.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.TaxonomyData) != 7 || len(payload.PipelineSteps) != 4 || len(payload.BiodiversityLocations) != 4 {
		t.Fatalf("payload sizes = %d/%d/%d, want 7/4/4", len(payload.TaxonomyData), len(payload.PipelineSteps), len(payload.BiodiversityLocations))
	}
	if payload.FastaFileName == nil || *payload.FastaFileName != "reef.fasta" {
		t.Fatalf("fastaFileName = %v, want reef.fasta", payload.FastaFileName)
	}
	if len(payload.History) != 1 || payload.History[0]["processTime"] != "10 sec" {
		t.Fatalf("history = %+v", payload.History)
	}

	file, err = env.uc.ExportDashboard(ctx, sess.ID, "csv")
	if err != nil {
		t.Fatalf("ExportDashboard(csv) err = %v", err)
	}
	if file.Filename() != "dashboard_data.csv" || !strings.HasPrefix(string(file.Bytes()), "name,value\nKingdom,400") {
		t.Fatalf("ExportDashboard(csv) = %q %q", file.Filename(), file.Bytes())
	}
}

func TestUsecase_InsightsAndCatalog(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	got, err := env.uc.Insights(ctx)
	if err != nil {
		t.Fatalf("Insights() err = %v", err)
	}
	if got.Summary.Total != 4 || got.Summary.Confirmed != 3 || got.Summary.Review != 1 || got.Summary.MostAbundant != "Clownfish" {
		t.Fatalf("Insights() summary = %+v", got.Summary)
	}
	if len(got.Abundance) != 4 {
		t.Fatalf("Insights() abundance = %+v", got.Abundance)
	}

	status, err := env.uc.PipelineStatus(ctx)
	if err != nil {
		t.Fatalf("PipelineStatus() err = %v", err)
	}
	if status.Current != 0 || len(status.Steps) != 4 {
		t.Fatalf("PipelineStatus() = %+v", status)
	}

	if _, err := env.uc.Strings(ctx, "hi"); err != nil {
		t.Fatalf("Strings(hi) err = %v", err)
	}
	_, err = env.uc.Strings(ctx, "fr")
	assertCode(t, err, pkgerror.CodeNotFound)

	vis, err := env.uc.View(ctx, "biodiversity")
	if err != nil {
		t.Fatalf("View() err = %v", err)
	}
	if vis.Label != "Biodiversity Metric" {
		t.Fatalf("View() label = %q", vis.Label)
	}
}
