package schema

// EventType classifies an event by participant cardinality.
type EventType string

const (
	EventSolo EventType = "SOLO"
	EventTeam EventType = "TEAM"
)

// FieldType is the closed set of form field types.
type FieldType string

const (
	FieldShortAnswer   FieldType = "SHORT_ANSWER"
	FieldCheckbox      FieldType = "CHECKBOX"
	FieldFileUpload    FieldType = "FILE_UPLOAD"
	FieldSectionHeader FieldType = "SECTION_HEADER"
)

// Boundary limits.
const (
	MaxEventTextLen    = 15000
	MaxFieldHintLen    = 2000
	MaxFields          = 100
	MaxEventNameLen    = 200
	MaxRoundNameLen    = 100
	MaxRounds          = 20
	MaxSubjectLen      = 300
	MaxBodyLen         = 3000
)

// FormField is a single entry in a form schema. Order within
// FormSchema.Fields is semantically meaningful.
type FormField struct {
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
}

// FormSchema is the canonical registration form definition. Once it has
// passed Normalize it satisfies:
//
//   - EventType == SOLO iff MaxParticipants == 1
//   - 1 <= MinParticipants <= MaxParticipants
type FormSchema struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	EventType       EventType   `json:"eventType"`
	MinParticipants int         `json:"minParticipants"`
	MaxParticipants int         `json:"maxParticipants"`
	Fields          []FormField `json:"fields"`
}

// IsValidFieldType reports whether t is in the closed field-type set.
func IsValidFieldType(t FieldType) bool {
	switch t {
	case FieldShortAnswer, FieldCheckbox, FieldFileUpload, FieldSectionHeader:
		return true
	}
	return false
}
