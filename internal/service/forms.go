package service

import (
	"context"

	"formforge/internal/core"
	"formforge/internal/forms"
	"formforge/internal/google"
	"formforge/pkg/schema"
)

// FormsService materializes a schema as a live registration form.
type FormsService struct {
	api    FormsAPI
	logger core.Logger
}

// NewFormsService creates the form materialization service.
func NewFormsService(api FormsAPI, logger core.Logger) *FormsService {
	return &FormsService{api: api, logger: logger}
}

// FormResult identifies a materialized form.
type FormResult struct {
	FormID       string `json:"formId"`
	EditURL      string `json:"editUrl"`
	ResponderURL string `json:"responderUrl"`
}

// Materialize validates the schema, creates the form, and appends every
// compiled item in one batch. Description and item updates happen after
// creation because the backend only accepts a title at creation time.
func (f *FormsService) Materialize(ctx context.Context, sess google.Session, s *schema.FormSchema) (*FormResult, error) {
	if err := schema.ValidateForm(s); err != nil {
		return nil, core.NewClientError("invalid form schema", err)
	}

	formID, err := f.api.CreateForm(ctx, sess, s.Title)
	if err != nil {
		return nil, err
	}

	if s.Description != "" {
		if err := f.api.SetDescription(ctx, sess, formID, s.Description); err != nil {
			return nil, err
		}
	}

	items := forms.Compile(s)
	if err := f.api.AppendItems(ctx, sess, formID, items); err != nil {
		return nil, err
	}

	responderURL, err := f.api.ResponderURL(ctx, sess, formID)
	if err != nil {
		return nil, err
	}

	f.logger.Info("form materialized",
		"form_id", formID,
		"item_count", len(items),
	)
	return &FormResult{
		FormID:       formID,
		EditURL:      "https://docs.google.com/forms/d/" + formID + "/edit",
		ResponderURL: responderURL,
	}, nil
}
