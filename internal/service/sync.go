package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"formforge/internal/core"
	"formforge/internal/google"
	"formforge/pkg/schema"
)

// rootFolderName is the top-level storage folder every event folder lives
// under.
const rootFolderName = "FormForge"

var dedupUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// DedupKey builds the idempotence key for one calendar artifact. The key is
// derived purely from event name, round name, and artifact kind, so the
// same confirmation replayed produces the same key.
func DedupKey(eventName, roundName, kind string) string {
	raw := strings.ToLower(eventName + "::" + roundName + "::" + kind)
	key := strings.Trim(dedupUnsafe.ReplaceAllString(raw, "-"), "-")
	if len(key) > 200 {
		key = key[:200]
	}
	return key
}

// Synchronizer pushes confirmed reminder drafts out as storage and
// calendar artifacts. Every operation is find-before-create, so replaying
// a confirmation converges on the same artifacts instead of duplicating
// them.
type Synchronizer struct {
	drive    DriveAPI
	calendar CalendarAPI
	timezone string
	logger   core.Logger

	// now is replaceable for past-date tests.
	now func() time.Time
}

// NewSynchronizer creates the artifact synchronizer. timezone applies to
// timed calendar events.
func NewSynchronizer(drive DriveAPI, calendar CalendarAPI, timezone string, logger core.Logger) *Synchronizer {
	return &Synchronizer{
		drive:    drive,
		calendar: calendar,
		timezone: timezone,
		logger:   logger,
		now:      time.Now,
	}
}

// Sync processes drafts strictly in order, one round at a time. A round
// whose date already passed gets its text artifact but no calendar
// events, and is reported as skipped, not failed. Storage errors are
// logged and swallowed; calendar errors are collected per round and no
// round's failure stops the rest. Returns the event folder URL when
// storage is usable. An empty timezone falls back to the configured
// default.
func (y *Synchronizer) Sync(ctx context.Context, sess google.Session, eventName, timezone string, drafts []schema.ReminderDraft) ([]schema.RoundResult, schema.Summary, string) {
	if timezone == "" {
		timezone = y.timezone
	}
	folderID := y.ensureEventFolder(ctx, sess, eventName)
	folderURL := ""
	if folderID != "" {
		folderURL = google.FolderURL(folderID)
	}

	results := make([]schema.RoundResult, 0, len(drafts))
	summary := schema.Summary{Total: len(drafts)}

	for _, d := range drafts {
		r := y.syncRound(ctx, sess, eventName, folderID, timezone, d)
		results = append(results, r)
		switch {
		case r.Skipped:
			summary.Skipped++
		case len(r.Errors) > 0:
			summary.Failed++
		default:
			summary.Succeeded++
		}
	}

	y.logger.Info("artifact synchronization finished",
		"event", eventName,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return results, summary, folderURL
}

// ensureEventFolder resolves (or creates) FormForge/<event>. Storage being
// unreachable must not block calendar work, so any failure here only
// disables the per-round file step.
func (y *Synchronizer) ensureEventFolder(ctx context.Context, sess google.Session, eventName string) string {
	rootID, found, err := y.drive.FindFolder(ctx, sess, rootFolderName, "")
	if err == nil && !found {
		rootID, err = y.drive.CreateFolder(ctx, sess, rootFolderName, "")
	}
	if err != nil {
		y.logger.Warn("storage folder setup failed, skipping reminder files", "error", err.Error())
		return ""
	}

	eventID, found, err := y.drive.FindFolder(ctx, sess, eventName, rootID)
	if err == nil && !found {
		eventID, err = y.drive.CreateFolder(ctx, sess, eventName, rootID)
	}
	if err != nil {
		y.logger.Warn("storage folder setup failed, skipping reminder files", "error", err.Error())
		return ""
	}
	return eventID
}

func (y *Synchronizer) syncRound(ctx context.Context, sess google.Session, eventName, folderID, timezone string, d schema.ReminderDraft) schema.RoundResult {
	r := schema.RoundResult{RoundName: d.RoundName, Errors: []string{}}

	parsed, err := schema.ParseDate(d.RoundDate)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("invalid round date: %v", err))
		return r
	}
	civil := schema.CivilDate(strings.TrimSpace(d.RoundDate))
	roundDay := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	now := y.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// The text artifact is written for every round; the past-date policy
	// scopes only the calendar events.
	if folderID != "" {
		y.saveReminderFile(ctx, sess, folderID, civil, d, &r)
	}

	if roundDay.Before(today) {
		r.Skipped = true
		r.SkipReason = "round date is in the past"
		return r
	}

	y.createRoundEvent(ctx, sess, eventName, civil, timezone, parsed, d, &r)

	dayBefore := roundDay.AddDate(0, 0, -1)
	if !dayBefore.Before(today) {
		folderURL := ""
		if folderID != "" {
			folderURL = google.FolderURL(folderID)
		}
		y.createReminderEvent(ctx, sess, eventName, folderURL, dayBefore, d, &r)
	}
	return r
}

// saveReminderFile writes Subject/Body as a text file named after the
// round and date, updating in place when a prior confirmation already
// created it. Storage errors are logged and swallowed: they never count
// the round as failed, only calendar errors do.
func (y *Synchronizer) saveReminderFile(ctx context.Context, sess google.Session, folderID, civil string, d schema.ReminderDraft, r *schema.RoundResult) {
	name := fmt.Sprintf("%s-Reminder-%s.txt", google.SanitizeName(d.RoundName), civil)
	content := fmt.Sprintf("Subject: %s\n\n%s", d.Subject, d.Body)

	existing, found, err := y.drive.FindFile(ctx, sess, name, folderID)
	if err != nil {
		y.logger.Warn("reminder file lookup failed", "round", d.RoundName, "error", err.Error())
		return
	}
	if found {
		if err := y.drive.UpdateFile(ctx, sess, existing.ID, content); err != nil {
			y.logger.Warn("reminder file update failed", "round", d.RoundName, "error", err.Error())
			return
		}
		r.DriveFile = &schema.DriveFile{FileID: existing.ID, FileURL: existing.URL, FileName: name}
		return
	}

	ref, err := y.drive.CreateFile(ctx, sess, name, folderID, content)
	if err != nil {
		y.logger.Warn("reminder file creation failed", "round", d.RoundName, "error", err.Error())
		return
	}
	r.DriveFile = &schema.DriveFile{FileID: ref.ID, FileURL: ref.URL, FileName: name}
}

// createRoundEvent creates (or reuses) the calendar event on the round day
// itself. A datetime round gets a two-hour timed slot capped at the end of
// the day; a date-only round gets an all-day event.
func (y *Synchronizer) createRoundEvent(ctx context.Context, sess google.Session, eventName, civil, timezone string, parsed time.Time, d schema.ReminderDraft, r *schema.RoundResult) {
	key := DedupKey(eventName, d.RoundName, "round")
	if ev, err := y.calendar.FindEventByKey(ctx, sess, key); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("round event lookup failed: %v", err))
		return
	} else if ev != nil {
		r.CalendarRoundEvent = ev
		return
	}

	in := google.EventInput{
		Summary:      eventName + " - " + d.RoundName,
		Description:  d.Body,
		DedupKey:     key,
		PopupMinutes: 60,
	}
	if hasTimePortion(d.RoundDate) {
		endHour := parsed.Hour() + 2
		if endHour > 23 {
			endHour = 23
		}
		in.Start = google.EventTime{
			DateTime: fmt.Sprintf("%sT%02d:%02d:00", civil, parsed.Hour(), parsed.Minute()),
			TimeZone: timezone,
		}
		in.End = google.EventTime{
			DateTime: fmt.Sprintf("%sT%02d:%02d:00", civil, endHour, parsed.Minute()),
			TimeZone: timezone,
		}
	} else {
		in.Start = google.EventTime{Date: civil}
		in.End = google.EventTime{Date: nextDay(civil)}
	}

	ev, err := y.calendar.CreateEvent(ctx, sess, in)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("round event creation failed: %v", err))
		return
	}
	r.CalendarRoundEvent = ev
}

// createReminderEvent creates (or reuses) the all-day nudge the day before
// the round. The description links the stored reminder file's folder when
// storage was usable.
func (y *Synchronizer) createReminderEvent(ctx context.Context, sess google.Session, eventName, folderURL string, dayBefore time.Time, d schema.ReminderDraft, r *schema.RoundResult) {
	key := DedupKey(eventName, d.RoundName, "reminder")
	if ev, err := y.calendar.FindEventByKey(ctx, sess, key); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("reminder event lookup failed: %v", err))
		return
	} else if ev != nil {
		r.CalendarReminderEvent = ev
		return
	}

	description := d.Subject
	if folderURL != "" {
		description += "\n\nReminder email drafts: " + folderURL
	}

	date := dayBefore.Format("2006-01-02")
	ev, err := y.calendar.CreateEvent(ctx, sess, google.EventInput{
		Summary:      "Reminder: " + eventName + " - " + d.RoundName,
		Description:  description,
		Start:        google.EventTime{Date: date},
		End:          google.EventTime{Date: nextDay(date)},
		DedupKey:     key,
		PopupMinutes: 0,
	})
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("reminder event creation failed: %v", err))
		return
	}
	r.CalendarReminderEvent = ev
}

func hasTimePortion(date string) bool {
	return strings.ContainsAny(strings.TrimSpace(date), "T ")
}

func nextDay(civil string) string {
	t, err := time.Parse("2006-01-02", civil)
	if err != nil {
		return civil
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}
