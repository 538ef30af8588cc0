package tasks

import (
	"context"
	"encoding/json"
	"sort"

	"formforge/internal/llm"
	"formforge/pkg/schema"
)

// reminderKeys are tried in priority order when the model wraps its array
// in an object instead of returning it bare.
var reminderKeys = []string{"reminders", "data", "emails", "results"}

// GenerateReminders drafts one reminder email per round. The response
// shape drifts across models (bare array, object keyed "reminders", object
// keyed anything), so recovery is tolerant; drafts missing any of
// roundName, subject, or body still fail the whole call, because a partial
// draft set cannot be confirmed by the user.
func GenerateReminders(ctx context.Context, g Generator, model, eventName string, rounds []schema.RoundInfo) ([]schema.ReminderDraft, error) {
	content, err := g.GenerateJSON(ctx, llm.Request{
		Model:       model,
		System:      llm.ReminderSystemPrompt,
		User:        llm.BuildReminderUserPrompt(eventName, rounds),
		Temperature: 0.4,
		MaxTokens:   2048,
	})
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSON(content)
	if payload == "" {
		return nil, llm.NewEmptyError()
	}

	drafts, err := recoverDrafts([]byte(payload))
	if err != nil {
		return nil, err
	}

	for _, d := range drafts {
		if d.RoundName == "" || d.Subject == "" || d.Body == "" {
			return nil, llm.NewShapeError("generation backend returned an incomplete reminder draft", nil)
		}
	}
	return drafts, nil
}

// recoverDrafts accepts a bare array, or an object holding the array under
// one of the known keys, or failing that under any key at all.
func recoverDrafts(payload []byte) ([]schema.ReminderDraft, error) {
	var drafts []schema.ReminderDraft
	if err := json.Unmarshal(payload, &drafts); err == nil {
		if len(drafts) == 0 {
			return nil, llm.NewShapeError("generation backend returned zero reminder drafts", nil)
		}
		return drafts, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, llm.NewParseError(string(payload), err)
	}

	tryKey := func(key string) []schema.ReminderDraft {
		raw, ok := wrapper[key]
		if !ok {
			return nil
		}
		var out []schema.ReminderDraft
		if err := json.Unmarshal(raw, &out); err != nil || len(out) == 0 {
			return nil
		}
		return out
	}

	for _, key := range reminderKeys {
		if out := tryKey(key); out != nil {
			return out, nil
		}
	}

	// Fall back to any key holding a non-empty array; sorted for
	// deterministic selection.
	rest := make([]string, 0, len(wrapper))
	for key := range wrapper {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		if out := tryKey(key); out != nil {
			return out, nil
		}
	}

	return nil, llm.NewShapeError("generation backend returned zero reminder drafts", nil)
}
