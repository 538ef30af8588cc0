// Package fields implements the registration-form field ordering and
// expansion rules as a pure function. Given participant cardinality bounds
// and requested custom fields it produces the exact ordered field list:
// identity/contact/academic tiers, team-member replication, event-specific
// custom fields, then optional checkboxes and upload fields last.
package fields

import (
	"fmt"
	"strings"

	"formforge/pkg/schema"
)

// CustomField is an event-specific field request, either parsed from user
// hints or recovered from generation-backend output. A zero Type means the
// type is inferred from the label.
type CustomField struct {
	Label       string
	Type        schema.FieldType
	Required    bool
	Description string
}

// identityAttrs are the per-participant attributes, in tier order:
// identity, then contact, then academic.
var identityAttrs = []string{
	"Full Name",
	"Email ID",
	"Phone Number",
	"Enrollment Number",
	"Course",
	"Institute Name",
}

// Plan builds the complete ordered field list for an event. The inputs are
// assumed normalized (1 <= minP <= maxP, eventType consistent with maxP).
func Plan(eventType schema.EventType, minP, maxP int, custom []CustomField, requiredNames []string) []schema.FormField {
	out := participantBlocks(eventType, minP, maxP)

	customs := resolveCustom(custom, requiredNames)
	if eventType == schema.EventTeam && !hasLabel(customs, "Individual Participation") {
		customs = append(customs, schema.FormField{
			Label:       "Individual Participation",
			Type:        schema.FieldCheckbox,
			Description: "Tick if you are participating without a full team.",
		})
	}

	// Tier 5: event-specific text fields. Tier 6: checkboxes, then uploads.
	for _, f := range customs {
		if f.Type == schema.FieldShortAnswer {
			out = append(out, f)
		}
	}
	for _, f := range customs {
		if f.Type == schema.FieldCheckbox {
			out = append(out, f)
		}
	}
	for _, f := range customs {
		if f.Type == schema.FieldFileUpload {
			out = append(out, f)
		}
	}
	return out
}

// participantBlocks expands the identity tiers. SOLO events get a single
// unprefixed block; TEAM events get a leader block plus one block per
// member index 2..maxP, required while the index is within minP.
func participantBlocks(eventType schema.EventType, minP, maxP int) []schema.FormField {
	if eventType != schema.EventTeam {
		block := make([]schema.FormField, 0, len(identityAttrs))
		for _, attr := range identityAttrs {
			block = append(block, schema.FormField{
				Label:    attr,
				Type:     schema.FieldShortAnswer,
				Required: true,
			})
		}
		return block
	}

	out := []schema.FormField{{
		Label: "Team Leader Details",
		Type:  schema.FieldSectionHeader,
	}}
	for _, attr := range identityAttrs {
		out = append(out, schema.FormField{
			Label:    "Team Leader - " + attr,
			Type:     schema.FieldShortAnswer,
			Required: true,
		})
	}
	for n := 2; n <= maxP; n++ {
		required := n <= minP
		role := fmt.Sprintf("Member %d", n)
		header := schema.FormField{
			Label: role + " Details",
			Type:  schema.FieldSectionHeader,
		}
		if !required {
			header.Description = "Optional - fill in only if this member is part of your team."
		}
		out = append(out, header)
		for _, attr := range identityAttrs {
			out = append(out, schema.FormField{
				Label:    role + " - " + attr,
				Type:     schema.FieldShortAnswer,
				Required: required,
			})
		}
	}
	return out
}

// resolveCustom canonicalizes labels, infers missing types, applies the
// required-name overrides, and synthesizes required fields that were asked
// for but never requested as customs.
func resolveCustom(custom []CustomField, requiredNames []string) []schema.FormField {
	out := make([]schema.FormField, 0, len(custom)+len(requiredNames))
	seen := map[string]int{}

	for _, c := range custom {
		label := CanonicalLabel(c.Label)
		if label == "" {
			continue
		}
		key := normalize(label)
		if _, dup := seen[key]; dup {
			continue
		}
		typ := c.Type
		if typ == "" {
			typ = InferFieldType(label)
		}
		seen[key] = len(out)
		out = append(out, schema.FormField{
			Label:       label,
			Type:        typ,
			Required:    c.Required,
			Description: c.Description,
		})
	}

	for _, name := range requiredNames {
		label := CanonicalLabel(name)
		if label == "" {
			continue
		}
		if i, ok := matchExisting(out, label); ok {
			out[i].Required = true
			continue
		}
		out = append(out, schema.FormField{
			Label:    label,
			Type:     schema.FieldShortAnswer,
			Required: true,
		})
	}
	return out
}

// matchExisting finds a field whose label matches name case-insensitively,
// tolerating small typos.
func matchExisting(fields []schema.FormField, name string) (int, bool) {
	want := normalize(name)
	for i, f := range fields {
		got := normalize(f.Label)
		if got == want || levenshtein(got, want) <= 2 {
			return i, true
		}
	}
	return 0, false
}

func hasLabel(fields []schema.FormField, label string) bool {
	_, ok := matchExisting(fields, label)
	return ok
}

// ParseHintNames splits free-form hint text ("tshirt size, github") into
// individual field names.
func ParseHintNames(text string) []string {
	split := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	names := make([]string, 0, len(split))
	for _, s := range split {
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "-"))
		if s != "" {
			names = append(names, s)
		}
	}
	return names
}

// levenshtein is a plain edit distance over bytes; labels are normalized
// ASCII by the time it runs.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
