package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"formforge/pkg/schema"
)

// SchemaSystemPrompt is the instruction contract for form-schema
// derivation. Participant-block ordering is restated here so well-behaved
// models produce it directly, but the deterministic fields engine rebuilds
// those tiers downstream regardless; the model is trusted only for the
// pieces that genuinely need language understanding (classification, the
// description, custom-field discovery).
const SchemaSystemPrompt = `You are FormForge, a registration form architect for college event organizers. You receive raw event information and return a registration form schema as ONE valid JSON object. No explanations, no markdown fences, no extra text.

CLASSIFICATION
Silently classify the event as one of: HACKATHON, BUSINESS, CULTURAL, ACADEMIC, WORKSHOP, SPORTS, GENERAL. Let the category drive the tone of the description.

EXTRACTION
From the raw text extract: event name (keep original casing), mode (Online/Offline/Hybrid), dates, registration deadline, prize pool, fee, team size, rounds, themes, eligibility. Team size rules: "2-4 members" means minParticipants=2 and maxParticipants=4; solo or individual means both are 1. eventType is SOLO when maxParticipants is 1, otherwise TEAM.

DESCRIPTION
Write a professional plain-text description: a strong event-specific opening hook, an overview paragraph of 3-6 sentences, then a key-details list (mode, date, deadline, prizes, team size, fee). Sentence case. The form renders plain text only: no markdown, no HTML. Rewrite everything in your own words.

FIELD ORDERING (NON-NEGOTIABLE)
Tier 1 identity, tier 2 contact, tier 3 academic, tier 4 team members, tier 5 event-specific fields, tier 6 optional checkboxes and upload fields last.

SOLO events: six required fields in order: Full Name, Email ID, Phone Number, Enrollment Number, Course, Institute Name.

TEAM events: a SECTION_HEADER "Team Leader Details" then the six fields prefixed "Team Leader - ", all required. Then for each member N from 2 to maxParticipants: a SECTION_HEADER "Member N Details" and six fields prefixed "Member N - ". Member blocks up to minParticipants are required; the rest are optional. Add an optional CHECKBOX "Individual Participation".

CUSTOM FIELDS
Create a field for every extra item the user asks to collect, with corrected spelling and a clear label ("tshirt size" becomes "T-shirt Size", "github" becomes "GitHub Profile URL"). Upload-like requests (screenshots, receipts) use FILE_UPLOAD; yes/no requests use CHECKBOX; everything else SHORT_ANSWER. Fields the user marks required MUST be present with "required": true. Only add implicit context fields when the event text strongly suggests them.

OUTPUT (STRICT)
{
  "title": "<Event Name> - Registration Form",
  "description": "<plain-text description>",
  "eventType": "SOLO" or "TEAM",
  "minParticipants": <number>,
  "maxParticipants": <number>,
  "fields": [
    {"label": "...", "type": "SHORT_ANSWER|CHECKBOX|FILE_UPLOAD|SECTION_HEADER", "required": true or false, "description": "..."}
  ]
}
Allowed types are exactly those four. Every field object has exactly those four keys. Return only the JSON object.`

// BuildSchemaUserPrompt assembles the user message for schema derivation.
func BuildSchemaUserPrompt(rawText, customFields, requiredFields string) string {
	var sb strings.Builder

	sb.WriteString(`Analyze the following event text, classify the event category, then generate the complete registration form schema.

EVENT TEXT:
`)
	sb.WriteString(rawText)

	if strings.TrimSpace(customFields) != "" {
		sb.WriteString(`

ADDITIONAL FIELDS REQUESTED BY USER (place after participant details):
`)
		sb.WriteString(customFields)
		sb.WriteString("\nCorrect any spelling mistakes. Include ALL of them as form fields with clear labels.")
	}

	if strings.TrimSpace(requiredFields) != "" {
		sb.WriteString(`

REQUIRED FIELDS (must be included with "required": true):
`)
		sb.WriteString(requiredFields)
	}

	return sb.String()
}

// ReminderSystemPrompt is the instruction contract for reminder drafting.
const ReminderSystemPrompt = `You are a professional event coordinator writing reminder emails for college events.

RULES:
- Official, third-person tone, professional but friendly
- Each email reminds participants that the round is one day away
- Generic (not tied to any university)
- Plain text only: no emojis, no markdown, no HTML
- Under 400 words per email
- Mention round name, date, mode, and venue when available
- End with a clear call to action
- Each email must feel written for its round, not templated

Return a JSON object with a "reminders" key containing an array:
{"reminders": [{"roundName": "...", "roundDate": "...", "subject": "...", "body": "..."}]}

Return ONLY the JSON object. No explanation, no code fences.`

// BuildReminderUserPrompt assembles the user message for reminder drafting.
func BuildReminderUserPrompt(eventName string, rounds []schema.RoundInfo) string {
	payload, _ := json.MarshalIndent(rounds, "", "  ")
	return fmt.Sprintf("Event: %s\n\nRounds:\n%s\n\nGenerate one reminder email per round.", eventName, payload)
}
