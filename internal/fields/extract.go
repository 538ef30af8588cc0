package fields

import (
	"regexp"

	"formforge/pkg/schema"
)

var memberPrefix = regexp.MustCompile(`^(Team Leader|Member \d+)\s*[-:]`)

// ExtractCustom recovers the event-specific fields from a generation-backend
// field list. Participant blocks (identity attributes, member-prefixed
// fields, section headers) are dropped: those tiers are rebuilt
// deterministically by Plan, so only the model's custom additions survive.
func ExtractCustom(fs []schema.FormField) []CustomField {
	identity := map[string]bool{}
	for _, attr := range identityAttrs {
		identity[normalize(attr)] = true
	}

	var out []CustomField
	for _, f := range fs {
		if f.Type == schema.FieldSectionHeader {
			continue
		}
		if memberPrefix.MatchString(f.Label) || identity[normalize(f.Label)] {
			continue
		}
		typ := f.Type
		if !schema.IsValidFieldType(typ) {
			typ = ""
		}
		out = append(out, CustomField{
			Label:       f.Label,
			Type:        typ,
			Required:    f.Required,
			Description: f.Description,
		})
	}
	return out
}

// MergeNames appends hint names that are not already present among the
// customs, so a user-requested field survives even when the generation
// backend dropped it.
func MergeNames(customs []CustomField, names []string) []CustomField {
	for _, name := range names {
		label := CanonicalLabel(name)
		if label == "" {
			continue
		}
		want := normalize(label)
		found := false
		for _, c := range customs {
			got := normalize(CanonicalLabel(c.Label))
			if got == want || levenshtein(got, want) <= 2 {
				found = true
				break
			}
		}
		if !found {
			customs = append(customs, CustomField{Label: label})
		}
	}
	return customs
}
