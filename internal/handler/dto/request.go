// Package dto defines the HTTP request and response shapes.
package dto

import "formforge/pkg/schema"

// GenerateRequest asks for a form schema derived from free text.
type GenerateRequest struct {
	Text           string `json:"text"`
	CustomFields   string `json:"customFields"`
	RequiredFields string `json:"requiredFields"`
}

// CreateFormRequest asks for a schema to be materialized as a live form.
type CreateFormRequest struct {
	FormSchema *schema.FormSchema `json:"formSchema"`
}

// PreviewRemindersRequest asks for one reminder draft per round.
type PreviewRemindersRequest struct {
	EventName string             `json:"eventName"`
	Rounds    []schema.RoundInfo `json:"rounds"`
}

// ConfirmRemindersRequest submits user-approved drafts for
// synchronization.
type ConfirmRemindersRequest struct {
	EventName string                 `json:"eventName"`
	Timezone  string                 `json:"timezone"`
	Reminders []schema.ReminderDraft `json:"reminders"`
}
