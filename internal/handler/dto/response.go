package dto

import "formforge/pkg/schema"

// Envelope is the uniform response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error message.
func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// PreviewRemindersResponse carries the editable drafts back to the user.
type PreviewRemindersResponse struct {
	EventName string                 `json:"eventName"`
	Reminders []schema.ReminderDraft `json:"reminders"`
}

// ConfirmRemindersResponse reports the per-round synchronization outcome.
type ConfirmRemindersResponse struct {
	EventName      string               `json:"eventName"`
	Rounds         []schema.RoundResult `json:"rounds"`
	DriveFolderURL string               `json:"driveFolderUrl,omitempty"`
	Summary        schema.Summary       `json:"summary"`
}
