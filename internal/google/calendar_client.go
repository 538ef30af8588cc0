package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"formforge/pkg/schema"
)

// dedupProperty is the private extended-property key carrying the
// deduplication key. Events are only ever searched by this property, so
// the synchronizer never touches the user's own calendar entries.
const dedupProperty = "formforgeId"

// CalendarClient talks to the calendar backend.
type CalendarClient struct {
	http    *http.Client
	baseURL string
}

// EventTime is either a civil date (all-day) or a local datetime.
type EventTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventInput describes one calendar event to create.
type EventInput struct {
	Summary      string
	Description  string
	Start        EventTime
	End          EventTime
	DedupKey     string
	PopupMinutes int
}

type eventResource struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
}

// FindEventByKey searches for an event tagged with the given dedup key.
// Returns nil when no event carries it.
func (c *CalendarClient) FindEventByKey(ctx context.Context, s Session, key string) (*schema.CalendarEvent, error) {
	q := url.Values{}
	q.Set("privateExtendedProperty", dedupProperty+"="+key)
	q.Set("maxResults", "1")

	var resp struct {
		Items []eventResource `json:"items"`
	}
	u := c.baseURL + "/calendar/v3/calendars/primary/events?" + q.Encode()
	if err := doJSON(ctx, c.http, s, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return toCalendarEvent(resp.Items[0]), nil
}

// CreateEvent inserts an event tagged with its dedup key and a single
// popup reminder override.
func (c *CalendarClient) CreateEvent(ctx context.Context, s Session, in EventInput) (*schema.CalendarEvent, error) {
	body := map[string]any{
		"summary": in.Summary,
		"start":   in.Start,
		"end":     in.End,
		"reminders": map[string]any{
			"useDefault": false,
			"overrides": []map[string]any{
				{"method": "popup", "minutes": in.PopupMinutes},
			},
		},
		"extendedProperties": map[string]any{
			"private": map[string]string{dedupProperty: in.DedupKey},
		},
	}
	if in.Description != "" {
		body["description"] = in.Description
	}

	var resp eventResource
	u := c.baseURL + "/calendar/v3/calendars/primary/events"
	if err := doJSON(ctx, c.http, s, http.MethodPost, u, body, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("event creation returned no id")
	}
	return toCalendarEvent(resp), nil
}

func toCalendarEvent(e eventResource) *schema.CalendarEvent {
	url := e.HTMLLink
	if url == "" {
		url = "https://calendar.google.com/calendar/event?eid=" + e.ID
	}
	return &schema.CalendarEvent{EventID: e.ID, EventURL: url}
}
