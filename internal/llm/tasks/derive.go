package tasks

import (
	"context"

	"formforge/internal/fields"
	"formforge/internal/llm"
	"formforge/pkg/schema"
)

// DeriveInput carries the (already sanitized) free-text inputs for schema
// derivation.
type DeriveInput struct {
	Text           string
	CustomFields   string
	RequiredFields string
}

// DeriveSchema turns raw event text into a canonical FormSchema. The
// generation backend supplies the pieces that need language understanding
// (title, description, cardinality extraction, custom-field discovery);
// the participant tiers and field ordering are then rebuilt
// deterministically so the ordering contract holds no matter how well the
// model followed instructions.
func DeriveSchema(ctx context.Context, g Generator, model string, in DeriveInput) (*schema.FormSchema, error) {
	content, err := g.GenerateJSON(ctx, llm.Request{
		Model:       model,
		System:      llm.SchemaSystemPrompt,
		User:        llm.BuildSchemaUserPrompt(in.Text, in.CustomFields, in.RequiredFields),
		Temperature: 0.1,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSON(content)
	if payload == "" {
		return nil, llm.NewEmptyError()
	}

	parsed, err := schema.ParseCandidate([]byte(payload))
	if err != nil {
		return nil, llm.NewShapeError(err.Error(), err)
	}

	custom := fields.ExtractCustom(parsed.Fields)
	custom = fields.MergeNames(custom, fields.ParseHintNames(in.CustomFields))
	required := fields.ParseHintNames(in.RequiredFields)

	parsed.Fields = fields.Plan(
		parsed.EventType,
		parsed.MinParticipants,
		parsed.MaxParticipants,
		custom,
		required,
	)
	return parsed, nil
}
