package schema

import (
	"fmt"
	"strings"
	"time"
)

// ValidateForm checks a schema at the materialize-form boundary. Unlike
// Normalize this is strict: an invalid field type is rejected, not coerced,
// because by this point the schema has already been through normalization
// and possibly user editing.
func ValidateForm(s *FormSchema) error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("missing or invalid \"title\"")
	}
	if s.Fields == nil {
		return fmt.Errorf("missing or invalid \"fields\" array")
	}
	if s.EventType != EventSolo && s.EventType != EventTeam {
		return fmt.Errorf("eventType must be %q or %q", EventSolo, EventTeam)
	}
	if len(s.Fields) > MaxFields {
		return fmt.Errorf("too many fields (max %d)", MaxFields)
	}
	for i, f := range s.Fields {
		if strings.TrimSpace(f.Label) == "" {
			return fmt.Errorf("field %d: missing or invalid \"label\"", i)
		}
		if !IsValidFieldType(f.Type) {
			return fmt.Errorf("field %d: invalid type %q", i, f.Type)
		}
	}
	return nil
}

// ValidateRounds checks a reminder-preview request.
func ValidateRounds(eventName string, rounds []RoundInfo) error {
	if err := validateEventName(eventName); err != nil {
		return err
	}
	if len(rounds) == 0 {
		return fmt.Errorf("at least one round is required")
	}
	if len(rounds) > MaxRounds {
		return fmt.Errorf("too many rounds (max %d)", MaxRounds)
	}
	for i, r := range rounds {
		if strings.TrimSpace(r.RoundName) == "" {
			return fmt.Errorf("round %d: missing \"roundName\"", i+1)
		}
		if len(r.RoundName) > MaxRoundNameLen {
			return fmt.Errorf("round %d: name too long (max %d)", i+1, MaxRoundNameLen)
		}
		if _, err := ParseDate(r.RoundDate); err != nil {
			return fmt.Errorf("round %d (%q): missing or invalid date", i+1, r.RoundName)
		}
	}
	return nil
}

// ValidateDrafts checks a confirm-reminders request.
func ValidateDrafts(eventName string, drafts []ReminderDraft) error {
	if err := validateEventName(eventName); err != nil {
		return err
	}
	if len(drafts) == 0 {
		return fmt.Errorf("no reminder drafts provided")
	}
	if len(drafts) > MaxRounds {
		return fmt.Errorf("too many reminders (max %d)", MaxRounds)
	}
	for i, d := range drafts {
		if d.RoundName == "" || d.RoundDate == "" || d.Subject == "" || d.Body == "" {
			return fmt.Errorf("reminder %d: missing required fields", i+1)
		}
		if _, err := ParseDate(d.RoundDate); err != nil {
			return fmt.Errorf("reminder %d (%q): invalid date", i+1, d.RoundName)
		}
		if len(d.Subject) > MaxSubjectLen {
			return fmt.Errorf("reminder %d: subject too long (max %d)", i+1, MaxSubjectLen)
		}
		if len(d.Body) > MaxBodyLen {
			return fmt.Errorf("reminder %d: body too long (max %d)", i+1, MaxBodyLen)
		}
	}
	return nil
}

func validateEventName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("missing or empty \"eventName\"")
	}
	if len(name) > MaxEventNameLen {
		return fmt.Errorf("event name too long (max %d chars)", MaxEventNameLen)
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseDate parses a round date string. Date-only and datetime forms are
// both accepted; the civil date portion is what synchronization keys on.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// CivilDate truncates a date string to its YYYY-MM-DD portion.
func CivilDate(s string) string {
	if i := strings.IndexAny(s, "T "); i > 0 {
		return s[:i]
	}
	return s
}
