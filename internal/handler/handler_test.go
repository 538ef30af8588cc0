package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formforge/internal/core"
	"formforge/internal/google"
	"formforge/internal/llm"
	"formforge/internal/middleware"
	"formforge/internal/router"
	"formforge/internal/service"
	"formforge/pkg/schema"
)

type stubSchemaSvc struct {
	out *schema.FormSchema
	err error
}

func (s *stubSchemaSvc) Generate(context.Context, service.GenerateInput) (*schema.FormSchema, error) {
	return s.out, s.err
}

type stubFormsSvc struct {
	out  *service.FormResult
	err  error
	sess google.Session
}

func (s *stubFormsSvc) Materialize(_ context.Context, sess google.Session, _ *schema.FormSchema) (*service.FormResult, error) {
	s.sess = sess
	return s.out, s.err
}

type stubReminderSvc struct {
	drafts  []schema.ReminderDraft
	confirm *service.ConfirmResult
	err     error
}

func (s *stubReminderSvc) Preview(context.Context, string, []schema.RoundInfo) ([]schema.ReminderDraft, error) {
	return s.drafts, s.err
}

func (s *stubReminderSvc) Confirm(context.Context, google.Session, string, string, []schema.ReminderDraft) (*service.ConfirmResult, error) {
	return s.confirm, s.err
}

func testRouter(schemaSvc SchemaSvc, formsSvc FormsSvc, reminderSvc ReminderSvc) *gin.Engine {
	log := core.NewLogger("error")
	h := NewHandler(schemaSvc, formsSvc, reminderSvc, log, false)
	return router.InitRouter(gin.TestMode, h, middleware.RequestID(), middleware.Recovery(log))
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestGenerate(t *testing.T) {
	svc := &stubSchemaSvc{out: &schema.FormSchema{
		Title:           "HackVerse - Registration Form",
		EventType:       schema.EventTeam,
		MinParticipants: 2,
		MaxParticipants: 4,
		Fields:          []schema.FormField{},
	}}
	r := testRouter(svc, &stubFormsSvc{}, &stubReminderSvc{})

	w, env := doRequest(t, r, http.MethodPost, "/api/generate", `{"text": "HackVerse hackathon"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]any)
	assert.Equal(t, "HackVerse - Registration Form", data["title"])
}

func TestGenerateClientError(t *testing.T) {
	svc := &stubSchemaSvc{err: core.NewClientError("eventText is required", nil)}
	r := testRouter(svc, &stubFormsSvc{}, &stubReminderSvc{})

	w, env := doRequest(t, r, http.MethodPost, "/api/generate", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "eventText is required")
}

func TestGenerateBackendError(t *testing.T) {
	svc := &stubSchemaSvc{err: llm.NewEmptyError()}
	r := testRouter(svc, &stubFormsSvc{}, &stubReminderSvc{})

	w, env := doRequest(t, r, http.MethodPost, "/api/generate", `{"text": "x"}`, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "generation backend failure")
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	r := testRouter(&stubSchemaSvc{}, &stubFormsSvc{}, &stubReminderSvc{})
	w, env := doRequest(t, r, http.MethodPost, "/api/generate", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, env["success"])
}

func TestCreateFormRequiresAuth(t *testing.T) {
	r := testRouter(&stubSchemaSvc{}, &stubFormsSvc{}, &stubReminderSvc{})
	w, env := doRequest(t, r, http.MethodPost, "/api/forms/create", `{"formSchema": {"title": "X"}}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, env["success"])
}

func TestCreateForm(t *testing.T) {
	formsSvc := &stubFormsSvc{out: &service.FormResult{
		FormID:       "form-123",
		EditURL:      "https://docs.google.com/forms/d/form-123/edit",
		ResponderURL: "https://docs.test/viewform",
	}}
	r := testRouter(&stubSchemaSvc{}, formsSvc, &stubReminderSvc{})

	body := `{"formSchema": {"title": "X", "eventType": "SOLO", "minParticipants": 1, "maxParticipants": 1, "fields": []}}`
	w, env := doRequest(t, r, http.MethodPost, "/api/forms/create", body, "tok-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env["success"])
	assert.Equal(t, "tok-1", formsSvc.sess.AccessToken)

	data := env["data"].(map[string]any)
	assert.Equal(t, "form-123", data["formId"])
}

func TestCreateFormMissingSchema(t *testing.T) {
	r := testRouter(&stubSchemaSvc{}, &stubFormsSvc{}, &stubReminderSvc{})
	w, _ := doRequest(t, r, http.MethodPost, "/api/forms/create", `{}`, "tok-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewReminders(t *testing.T) {
	svc := &stubReminderSvc{drafts: []schema.ReminderDraft{
		{RoundName: "Round 1", RoundDate: "2099-03-01", Subject: "s", Body: "b"},
	}}
	r := testRouter(&stubSchemaSvc{}, &stubFormsSvc{}, svc)

	body := `{"eventName": "HackVerse", "rounds": [{"roundName": "Round 1", "roundDate": "2099-03-01"}]}`
	w, env := doRequest(t, r, http.MethodPost, "/api/reminders/preview", body, "")
	assert.Equal(t, http.StatusOK, w.Code)

	data := env["data"].(map[string]any)
	assert.Equal(t, "HackVerse", data["eventName"])
	assert.Len(t, data["reminders"], 1)
}

func TestConfirmRemindersStatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		summary     schema.Summary
		want        int
		wantSuccess bool
	}{
		{"all succeeded", schema.Summary{Total: 2, Succeeded: 2}, http.StatusOK, true},
		{"all skipped", schema.Summary{Total: 1, Skipped: 1}, http.StatusOK, true},
		{"partial failure", schema.Summary{Total: 2, Succeeded: 1, Failed: 1}, http.StatusMultiStatus, true},
		{"total failure", schema.Summary{Total: 2, Failed: 2}, http.StatusBadGateway, false},
	}
	body := `{"eventName": "HackVerse", "reminders": [{"roundName": "R1", "roundDate": "2099-03-01", "subject": "s", "body": "b"}]}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubReminderSvc{confirm: &service.ConfirmResult{
				Rounds:  []schema.RoundResult{},
				Summary: tt.summary,
			}}
			r := testRouter(&stubSchemaSvc{}, &stubFormsSvc{}, svc)
			w, env := doRequest(t, r, http.MethodPost, "/api/reminders/create", body, "tok-1")
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.wantSuccess, env["success"])
			// Per-round detail is present even on the error response.
			assert.Contains(t, env, "data")
		})
	}
}

func TestHealth(t *testing.T) {
	r := testRouter(&stubSchemaSvc{}, &stubFormsSvc{}, &stubReminderSvc{})
	w, env := doRequest(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", env["status"])
}
