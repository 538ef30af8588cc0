package schema

// RoundInfo describes one stage of an event.
type RoundInfo struct {
	RoundName string `json:"roundName"`
	RoundDate string `json:"roundDate"`          // YYYY-MM-DD, or a parseable date string
	RoundTime string `json:"roundTime,omitempty"` // HH:mm
	Mode      string `json:"mode,omitempty"`      // Online / Offline / Hybrid
	Venue     string `json:"venue,omitempty"`
}

// ReminderDraft is one generated reminder email per round. Drafts are
// editable by the user between preview and confirmation.
type ReminderDraft struct {
	RoundName string `json:"roundName"`
	RoundDate string `json:"roundDate"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// DriveFile identifies a stored reminder artifact.
type DriveFile struct {
	FileID   string `json:"fileId"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// CalendarEvent identifies a created (or reused) calendar event.
type CalendarEvent struct {
	EventID  string `json:"eventId"`
	EventURL string `json:"eventUrl"`
}

// RoundResult is the per-round outcome of artifact synchronization.
type RoundResult struct {
	RoundName             string         `json:"roundName"`
	DriveFile             *DriveFile     `json:"driveFile,omitempty"`
	CalendarRoundEvent    *CalendarEvent `json:"calendarRoundEvent,omitempty"`
	CalendarReminderEvent *CalendarEvent `json:"calendarReminderEvent,omitempty"`
	Skipped               bool           `json:"skipped"`
	SkipReason            string         `json:"skipReason,omitempty"`
	Errors                []string       `json:"errors"`
}

// Summary aggregates per-round outcomes.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
