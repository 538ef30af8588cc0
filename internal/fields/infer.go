package fields

import (
	"strings"

	"formforge/pkg/schema"
)

// canonicalLabels fixes common typos and shorthand in user-supplied field
// names. Keys are normalized (lowercase, alphanumerics only).
var canonicalLabels = map[string]string{
	"tshirt":              "T-shirt Size",
	"tshirtsize":          "T-shirt Size",
	"shirtsize":           "T-shirt Size",
	"github":              "GitHub Profile URL",
	"githubprofile":       "GitHub Profile URL",
	"githubprofileurl":    "GitHub Profile URL",
	"githuburl":           "GitHub Profile URL",
	"diet":                "Dietary Preference",
	"dietary":             "Dietary Preference",
	"dieatry":             "Dietary Preference",
	"dietarypreference":   "Dietary Preference",
	"dieatrypreference":   "Dietary Preference",
	"phnno":               "Phone Number",
	"phno":                "Phone Number",
	"phoneno":             "Phone Number",
	"phonenumber":         "Phone Number",
	"accommodation":       "Need Accommodation",
	"needaccommodation":   "Need Accommodation",
	"paymentscreenshot":   "Payment Screenshot Link",
	"projectidea":         "Project Idea / Theme",
	"preferredtrack":      "Preferred Track / Theme",
}

// uploadHints mark labels that refer to a file the respondent must share.
var uploadHints = []string{"screenshot", "upload", "receipt", "proof", "photo", "resume"}

// checkboxHints mark labels that read as a yes/no question.
var checkboxHints = []string{"need", "consent", "agree", "willing", "accommodation", "individualparticipation"}

// CanonicalLabel cleans up a requested field name: known typos map to their
// canonical label, everything else gets word capitalization.
func CanonicalLabel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if canonical, ok := canonicalLabels[normalize(name)]; ok {
		return canonical
	}
	return capitalizeWords(name)
}

// InferFieldType decides a field type from its label. The rule table keeps
// contextual inference explicit and testable instead of delegating the
// judgment to the generation backend.
func InferFieldType(label string) schema.FieldType {
	n := normalize(label)
	for _, hint := range uploadHints {
		if strings.Contains(n, hint) {
			return schema.FieldFileUpload
		}
	}
	for _, hint := range checkboxHints {
		if strings.Contains(n, hint) {
			return schema.FieldCheckbox
		}
	}
	return schema.FieldShortAnswer
}

// normalize lowercases and strips everything but letters and digits.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
