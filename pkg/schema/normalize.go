package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Normalize coerces a candidate schema into canonical form. It is pure and
// total: whatever the generation backend produced for the enum and count
// fields, the result satisfies every FormSchema invariant.
//
// Rules, in order:
//  1. eventType outside {SOLO, TEAM} becomes TEAM when maxParticipants > 1,
//     SOLO otherwise.
//  2. non-positive maxParticipants becomes 1.
//  3. non-positive minParticipants becomes 1.
//  4. minParticipants above maxParticipants is clamped down.
func Normalize(s FormSchema) FormSchema {
	if s.EventType != EventSolo && s.EventType != EventTeam {
		if s.MaxParticipants > 1 {
			s.EventType = EventTeam
		} else {
			s.EventType = EventSolo
		}
	}
	if s.MaxParticipants < 1 {
		s.MaxParticipants = 1
	}
	if s.MinParticipants < 1 {
		s.MinParticipants = 1
	}
	if s.MinParticipants > s.MaxParticipants {
		s.MinParticipants = s.MaxParticipants
	}
	return s
}

// ParseCandidate decodes a model-produced JSON object into a canonical
// FormSchema. Missing title or a non-array fields value is a structural
// failure: it means the upstream generation step produced an unusable
// result, so it is reported rather than repaired. Everything else is
// coerced by Normalize.
func ParseCandidate(data []byte) (*FormSchema, error) {
	var raw struct {
		Title           string          `json:"title"`
		Description     string          `json:"description"`
		EventType       any             `json:"eventType"`
		MinParticipants any             `json:"minParticipants"`
		MaxParticipants any             `json:"maxParticipants"`
		Fields          json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema is not a JSON object: %w", err)
	}
	if raw.Title == "" {
		return nil, fmt.Errorf("schema missing required field %q", "title")
	}
	if len(raw.Fields) == 0 || string(raw.Fields) == "null" {
		return nil, fmt.Errorf("schema missing required field %q", "fields")
	}

	var fields []FormField
	if err := json.Unmarshal(raw.Fields, &fields); err != nil {
		return nil, fmt.Errorf("schema %q is not an array: %w", "fields", err)
	}

	eventType, _ := raw.EventType.(string)
	s := Normalize(FormSchema{
		Title:           raw.Title,
		Description:     raw.Description,
		EventType:       EventType(eventType),
		MinParticipants: coerceInt(raw.MinParticipants),
		MaxParticipants: coerceInt(raw.MaxParticipants),
		Fields:          fields,
	})
	return &s, nil
}

// coerceInt reads a loosely-typed JSON value as an int. Anything that is
// not a whole number (including numeric strings that fail to parse) comes
// back as zero so Normalize applies its defaults.
func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}
