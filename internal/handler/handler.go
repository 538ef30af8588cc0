// Package handler maps HTTP requests onto the application services.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"formforge/internal/core"
	"formforge/internal/google"
	"formforge/internal/handler/dto"
	"formforge/internal/llm"
	"formforge/internal/service"
	"formforge/pkg/schema"
)

type SchemaSvc interface {
	Generate(ctx context.Context, in service.GenerateInput) (*schema.FormSchema, error)
}

type FormsSvc interface {
	Materialize(ctx context.Context, sess google.Session, s *schema.FormSchema) (*service.FormResult, error)
}

type ReminderSvc interface {
	Preview(ctx context.Context, eventName string, rounds []schema.RoundInfo) ([]schema.ReminderDraft, error)
	Confirm(ctx context.Context, sess google.Session, eventName, timezone string, drafts []schema.ReminderDraft) (*service.ConfirmResult, error)
}

type Handler struct {
	schemaService   SchemaSvc
	formsService    FormsSvc
	reminderService ReminderSvc
	logger          core.Logger

	// exposeErrors controls whether unclassified error detail reaches the
	// client. Off in a production posture.
	exposeErrors bool
}

func NewHandler(schemaService SchemaSvc, formsService FormsSvc, reminderService ReminderSvc, logger core.Logger, exposeErrors bool) *Handler {
	return &Handler{
		schemaService:   schemaService,
		formsService:    formsService,
		reminderService: reminderService,
		logger:          logger,
		exposeErrors:    exposeErrors,
	}
}

// Generate derives a canonical form schema from raw event text.
func (h *Handler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body: "+err.Error()))
		return
	}

	out, err := h.schemaService.Generate(c.Request.Context(), service.GenerateInput{
		EventText:      req.Text,
		CustomFields:   req.CustomFields,
		RequiredFields: req.RequiredFields,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(out))
}

// CreateForm materializes a schema as a live registration form.
func (h *Handler) CreateForm(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body: "+err.Error()))
		return
	}
	if req.FormSchema == nil {
		c.JSON(http.StatusBadRequest, dto.Fail("missing \"formSchema\""))
		return
	}

	out, err := h.formsService.Materialize(c.Request.Context(), sess, req.FormSchema)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(out))
}

// PreviewReminders drafts one reminder email per round without touching
// any external state.
func (h *Handler) PreviewReminders(c *gin.Context) {
	var req dto.PreviewRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body: "+err.Error()))
		return
	}

	drafts, err := h.reminderService.Preview(c.Request.Context(), req.EventName, req.Rounds)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.PreviewRemindersResponse{
		EventName: req.EventName,
		Reminders: drafts,
	}))
}

// ConfirmReminders synchronizes the approved drafts into storage and
// calendar artifacts. Partial failure is 207; total failure is 502.
func (h *Handler) ConfirmReminders(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.ConfirmRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body: "+err.Error()))
		return
	}

	out, err := h.reminderService.Confirm(c.Request.Context(), sess, req.EventName, req.Timezone, req.Reminders)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	switch {
	case out.Summary.Failed > 0 && out.Summary.Failed == out.Summary.Total:
		status = http.StatusBadGateway
	case out.Summary.Failed > 0:
		status = http.StatusMultiStatus
	}

	env := dto.OK(dto.ConfirmRemindersResponse{
		EventName:      req.EventName,
		Rounds:         out.Rounds,
		DriveFolderURL: out.DriveFolderURL,
		Summary:        out.Summary,
	})
	// The success flag tracks the HTTP class: a total failure is an error
	// response that still carries the per-round detail.
	if status >= http.StatusBadRequest {
		env.Success = false
		env.Error = "all rounds failed"
	}
	c.JSON(status, env)
}

// session extracts the bearer token as the per-request collaborator
// credential.
func (h *Handler) session(c *gin.Context) (google.Session, bool) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		c.JSON(http.StatusUnauthorized, dto.Fail("missing bearer token"))
		return google.Session{}, false
	}
	return google.Session{AccessToken: strings.TrimSpace(token)}, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var clientErr *core.ClientError
	if errors.As(err, &clientErr) {
		c.JSON(http.StatusBadRequest, dto.Fail(clientErr.Error()))
		return
	}

	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		h.logger.Error("generation backend failure",
			"request_id", c.GetString("request_id"),
			"type", llmErr.Type,
			"error", llmErr.Error(),
		)
		c.JSON(http.StatusBadGateway, dto.Fail("generation backend failure: "+llmErr.Message))
		return
	}

	h.logger.Error("remote call failed",
		"request_id", c.GetString("request_id"),
		"error", err.Error(),
	)
	msg := "upstream service error"
	if h.exposeErrors {
		msg = err.Error()
	}
	c.JSON(http.StatusBadGateway, dto.Fail(msg))
}
