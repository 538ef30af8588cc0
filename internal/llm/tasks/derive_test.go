package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formforge/internal/llm"
	"formforge/pkg/schema"
)

const teamCandidate = `{
	"title": "HackVerse 2026 - Registration Form",
	"description": "Design, prototype, and pitch a working product in 36 hours.",
	"eventType": "TEAM",
	"minParticipants": 2,
	"maxParticipants": 4,
	"fields": [
		{"label": "Team Leader - Full Name", "type": "SHORT_ANSWER", "required": true},
		{"label": "GitHub Profile URL", "type": "SHORT_ANSWER", "required": false}
	]
}`

func TestDeriveSchemaTeam(t *testing.T) {
	g := &mockGenerator{content: teamCandidate}

	s, err := DeriveSchema(context.Background(), g, "test-model", DeriveInput{
		Text: "HackVerse 2026. Team Size: 2-4 members.",
	})
	require.NoError(t, err)

	assert.Equal(t, schema.EventTeam, s.EventType)
	assert.Equal(t, 2, s.MinParticipants)
	assert.Equal(t, 4, s.MaxParticipants)

	// Leader block + members 2..4, with member 2 required and 3-4 optional.
	assert.Equal(t, "Team Leader Details", s.Fields[0].Label)
	byLabel := map[string]schema.FormField{}
	for _, f := range s.Fields {
		byLabel[f.Label] = f
	}
	assert.True(t, byLabel["Member 2 - Full Name"].Required)
	assert.False(t, byLabel["Member 3 - Full Name"].Required)
	assert.False(t, byLabel["Member 4 - Full Name"].Required)

	// The model's custom field survives the deterministic rebuild.
	_, ok := byLabel["GitHub Profile URL"]
	assert.True(t, ok)

	require.Len(t, g.requests, 1)
	assert.Equal(t, "test-model", g.requests[0].Model)
	assert.Contains(t, g.requests[0].User, "HackVerse 2026")
}

func TestDeriveSchemaSoloDefaults(t *testing.T) {
	// No team size mentioned: counts and event type come back defaulted.
	g := &mockGenerator{content: `{
		"title": "Quiz Night - Registration Form",
		"description": "A general knowledge quiz.",
		"fields": []
	}`}

	s, err := DeriveSchema(context.Background(), g, "m", DeriveInput{Text: "Solo quiz night"})
	require.NoError(t, err)

	assert.Equal(t, schema.EventSolo, s.EventType)
	assert.Equal(t, 1, s.MinParticipants)
	assert.Equal(t, 1, s.MaxParticipants)
	require.GreaterOrEqual(t, len(s.Fields), 6)
	assert.Equal(t, "Full Name", s.Fields[0].Label)
	assert.Equal(t, "Email ID", s.Fields[1].Label)
}

func TestDeriveSchemaFencedOutput(t *testing.T) {
	g := &mockGenerator{content: "```json\n" + teamCandidate + "\n```"}

	s, err := DeriveSchema(context.Background(), g, "m", DeriveInput{Text: "HackVerse"})
	require.NoError(t, err)
	assert.Equal(t, schema.EventTeam, s.EventType)
}

func TestDeriveSchemaHintEnforcement(t *testing.T) {
	// The model ignored both hints; the deterministic pass repairs that.
	g := &mockGenerator{content: `{
		"title": "Quiz Night - Registration Form",
		"eventType": "SOLO",
		"minParticipants": 1,
		"maxParticipants": 1,
		"fields": []
	}`}

	s, err := DeriveSchema(context.Background(), g, "m", DeriveInput{
		Text:           "Quiz night",
		CustomFields:   "tshirt size",
		RequiredFields: "dietary preference",
	})
	require.NoError(t, err)

	byLabel := map[string]schema.FormField{}
	for _, f := range s.Fields {
		byLabel[f.Label] = f
	}
	_, ok := byLabel["T-shirt Size"]
	assert.True(t, ok, "custom hint must be synthesized")
	dietary, ok := byLabel["Dietary Preference"]
	require.True(t, ok, "required hint must be synthesized")
	assert.True(t, dietary.Required)
}

func TestDeriveSchemaStructuralFailure(t *testing.T) {
	g := &mockGenerator{content: `{"fields": []}`}

	_, err := DeriveSchema(context.Background(), g, "m", DeriveInput{Text: "x"})
	require.Error(t, err)

	var genErr *llm.Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, llm.ErrorTypeShape, genErr.Type)
}

func TestDeriveSchemaInvalidJSON(t *testing.T) {
	g := &mockGenerator{content: "sorry, I cannot help with that"}

	_, err := DeriveSchema(context.Background(), g, "m", DeriveInput{Text: "x"})
	require.Error(t, err)

	var genErr *llm.Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, llm.ErrorTypeShape, genErr.Type)
}
