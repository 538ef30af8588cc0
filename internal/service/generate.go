package service

import (
	"context"
	"fmt"

	"formforge/internal/core"
	"formforge/internal/llm/tasks"
	"formforge/pkg/schema"
)

// SchemaService derives canonical form schemas from free-text event
// descriptions.
type SchemaService struct {
	gen    tasks.Generator
	model  string
	logger core.Logger
}

// NewSchemaService creates the schema derivation service.
func NewSchemaService(gen tasks.Generator, model string, logger core.Logger) *SchemaService {
	return &SchemaService{gen: gen, model: model, logger: logger}
}

// GenerateInput carries the raw request inputs before sanitization.
type GenerateInput struct {
	EventText      string
	CustomFields   string
	RequiredFields string
}

// Generate sanitizes the inputs, enforces boundary limits, and runs schema
// derivation.
func (s *SchemaService) Generate(ctx context.Context, in GenerateInput) (*schema.FormSchema, error) {
	text := sanitizeText(in.EventText)
	if text == "" {
		return nil, core.NewClientError("eventText is required", nil)
	}
	if len(text) > schema.MaxEventTextLen {
		return nil, core.NewClientError(fmt.Sprintf("eventText too long (max %d chars)", schema.MaxEventTextLen), nil)
	}

	custom := sanitizeText(in.CustomFields)
	required := sanitizeText(in.RequiredFields)
	if len(custom) > schema.MaxFieldHintLen {
		return nil, core.NewClientError(fmt.Sprintf("customFields too long (max %d chars)", schema.MaxFieldHintLen), nil)
	}
	if len(required) > schema.MaxFieldHintLen {
		return nil, core.NewClientError(fmt.Sprintf("requiredFields too long (max %d chars)", schema.MaxFieldHintLen), nil)
	}

	derived, err := tasks.DeriveSchema(ctx, s.gen, s.model, tasks.DeriveInput{
		Text:           text,
		CustomFields:   custom,
		RequiredFields: required,
	})
	if err != nil {
		s.logger.Error("schema derivation failed", "error", err.Error())
		return nil, err
	}

	s.logger.Info("schema derived",
		"title", derived.Title,
		"event_type", string(derived.EventType),
		"field_count", len(derived.Fields),
	)
	return derived, nil
}
