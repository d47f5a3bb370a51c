package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: map[uuid.UUID]*entities.Meeting{}}
}

func (r *fakeMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.meetings[id], nil
}

func (r *fakeMeetingRepo) List(ctx context.Context, limit, offset int) ([]entities.Meeting, error) {
	out := []entities.Meeting{}
	for _, m := range r.meetings {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMeetingRepo) Update(ctx context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	if m, ok := r.meetings[id]; ok {
		m.Status = status
	}
	return nil
}

func (r *fakeMeetingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.meetings, id)
	return nil
}

type fakeAnalysisService struct {
	analyses map[uuid.UUID]*entities.MeetingAnalysis
	enqueued []uuid.UUID
}

func newFakeAnalysisService() *fakeAnalysisService {
	return &fakeAnalysisService{analyses: map[uuid.UUID]*entities.MeetingAnalysis{}}
}

func (s *fakeAnalysisService) EnqueueAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.AnalysisJob, error) {
	s.enqueued = append(s.enqueued, meetingID)
	return entities.NewAnalysisJob(meetingID, "meetings/"+meetingID.String()), nil
}

func (s *fakeAnalysisService) RunAnalysis(ctx context.Context, job *entities.AnalysisJob) error {
	return nil
}

func (s *fakeAnalysisService) GetAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalysis, error) {
	if a, ok := s.analyses[meetingID]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAnalysisNotFound(meetingID.String())
}

func (s *fakeAnalysisService) GetComponent(ctx context.Context, meetingID uuid.UUID, component string) (interface{}, error) {
	a, err := s.GetAnalysis(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if component != "sentiment" {
		return nil, apperrors.ErrUnknownComponent(component)
	}
	return a.Sentiment, nil
}

func (s *fakeAnalysisService) StartWorkerPool(ctx context.Context, workerCount int) error {
	return nil
}

func (s *fakeAnalysisService) StopWorkerPool() error {
	return nil
}

func setupHandler() (*echo.Echo, *Meeting, *fakeMeetingRepo, *fakeAnalysisService) {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	repo := newFakeMeetingRepo()
	svc := newFakeAnalysisService()
	h := NewMeetingHandler(repo, svc, nil)
	return e, h, repo, svc
}

func TestRegisterMeeting(t *testing.T) {
	e, h, repo, _ := setupHandler()

	body := `{
		"title": "Sprint Planning",
		"platform": "zoom",
		"artifact_prefix": "meetings/sprint-1",
		"participants": [{"name": "Alice", "role": "host"}, {"name": "Bob"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if len(repo.meetings) != 1 {
		t.Fatalf("stored %d meetings, want 1", len(repo.meetings))
	}
	for _, m := range repo.meetings {
		if m.Status != entities.MeetingStatusRegistered {
			t.Errorf("status = %q, want registered", m.Status)
		}
		if m.TotalParticipants != 2 {
			t.Errorf("TotalParticipants = %d, want 2", m.TotalParticipants)
		}
	}
}

// The platform headcount wins over the named participant list when given.
func TestRegisterMeetingDeclaredHeadcount(t *testing.T) {
	e, h, repo, _ := setupHandler()

	body := `{
		"title": "All Hands",
		"platform": "zoom",
		"artifact_prefix": "meetings/all-hands",
		"total_participants": 7,
		"participants": [{"name": "Alice"}, {"name": "Bob"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	for _, m := range repo.meetings {
		if m.TotalParticipants != 7 {
			t.Errorf("TotalParticipants = %d, want 7", m.TotalParticipants)
		}
	}
}

func TestRegisterMeetingValidation(t *testing.T) {
	e, h, repo, _ := setupHandler()

	// missing title and artifact_prefix, unknown platform
	body := `{"platform": "skype"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(repo.meetings) != 0 {
		t.Fatal("invalid request must not be stored")
	}
}

func TestGetMeetingNotFound(t *testing.T) {
	e, h, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetMeetingInvalidID(t *testing.T) {
	e, h, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnalyzeReturnsAccepted(t *testing.T) {
	e, h, repo, svc := setupHandler()

	meetingID := uuid.New()
	repo.meetings[meetingID] = &entities.Meeting{
		ID:             meetingID,
		Title:          "Standup",
		Platform:       "meet",
		Status:         entities.MeetingStatusRegistered,
		ArtifactPrefix: "meetings/standup",
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/analyze")
	c.SetParamNames("id")
	c.SetParamValues(meetingID.String())

	if err := h.Analyze(c); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if len(svc.enqueued) != 1 || svc.enqueued[0] != meetingID {
		t.Fatalf("enqueued = %v, want [%s]", svc.enqueued, meetingID)
	}
}

func TestGetAnalysisAndComponent(t *testing.T) {
	e, h, _, svc := setupHandler()

	meetingID := uuid.New()
	svc.analyses[meetingID] = &entities.MeetingAnalysis{
		SchemaVersion: entities.AnalysisSchemaVersion,
		MeetingID:     meetingID.String(),
		Sentiment:     entities.SentimentAnalysis{Overall: 0.5, Timeline: []entities.SentimentPoint{}},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/analysis")
	c.SetParamNames("id")
	c.SetParamValues(meetingID.String())

	if err := h.GetAnalysis(c); err != nil {
		t.Fatalf("GetAnalysis returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data entities.MeetingAnalysis `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Data.MeetingID != meetingID.String() {
		t.Errorf("meetingId = %q, want %q", resp.Data.MeetingID, meetingID)
	}

	// component fetch
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/analysis/:component")
	c.SetParamNames("id", "component")
	c.SetParamValues(meetingID.String(), "sentiment")

	if err := h.GetAnalysisComponent(c); err != nil {
		t.Fatalf("GetAnalysisComponent returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("component status = %d, want %d", rec.Code, http.StatusOK)
	}

	// unknown component
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/analysis/:component")
	c.SetParamNames("id", "component")
	c.SetParamValues(meetingID.String(), "bogus")

	if err := h.GetAnalysisComponent(c); err != nil {
		t.Fatalf("GetAnalysisComponent returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown component status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListMeetings(t *testing.T) {
	e, h, repo, _ := setupHandler()

	id := uuid.New()
	repo.meetings[id] = &entities.Meeting{ID: id, Title: "Retro", Platform: "teams"}

	req := httptest.NewRequest(http.MethodGet, "/v1/meetings?page=1&page_size=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Retro") {
		t.Errorf("response missing meeting title: %s", rec.Body.String())
	}
}
