package service

import (
	"context"

	"formforge/internal/core"
	"formforge/internal/google"
	"formforge/internal/llm/tasks"
	"formforge/pkg/schema"
)

// ReminderService drafts reminder emails and, once the user confirms
// them, hands the drafts to the synchronizer.
type ReminderService struct {
	gen    tasks.Generator
	model  string
	sync   *Synchronizer
	logger core.Logger
}

// NewReminderService creates the reminder service.
func NewReminderService(gen tasks.Generator, model string, sync *Synchronizer, logger core.Logger) *ReminderService {
	return &ReminderService{gen: gen, model: model, sync: sync, logger: logger}
}

// Preview generates one editable reminder draft per round. Nothing is
// persisted; the drafts go back to the user for review.
func (s *ReminderService) Preview(ctx context.Context, eventName string, rounds []schema.RoundInfo) ([]schema.ReminderDraft, error) {
	if err := schema.ValidateRounds(eventName, rounds); err != nil {
		return nil, core.NewClientError("invalid reminder request", err)
	}

	drafts, err := tasks.GenerateReminders(ctx, s.gen, s.model, eventName, rounds)
	if err != nil {
		s.logger.Error("reminder drafting failed", "event", eventName, "error", err.Error())
		return nil, err
	}

	s.logger.Info("reminder drafts generated", "event", eventName, "count", len(drafts))
	return drafts, nil
}

// ConfirmResult is the outcome of a confirmed synchronization.
type ConfirmResult struct {
	Rounds         []schema.RoundResult
	Summary        schema.Summary
	DriveFolderURL string
}

// Confirm validates the (possibly user-edited) drafts and synchronizes
// the per-round artifacts.
func (s *ReminderService) Confirm(ctx context.Context, sess google.Session, eventName, timezone string, drafts []schema.ReminderDraft) (*ConfirmResult, error) {
	if err := schema.ValidateDrafts(eventName, drafts); err != nil {
		return nil, core.NewClientError("invalid confirmation request", err)
	}

	results, summary, folderURL := s.sync.Sync(ctx, sess, eventName, timezone, drafts)
	return &ConfirmResult{Rounds: results, Summary: summary, DriveFolderURL: folderURL}, nil
}
