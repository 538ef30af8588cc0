// Package forms compiles a canonical FormSchema into the ordered
// create-item operations understood by the form-building backend. The
// compiler is pure; sending the operations is the transport's concern.
package forms

import (
	"log/slog"

	"formforge/pkg/schema"
)

// LinkInstruction is appended to the description of every compiled
// FILE_UPLOAD field. The form-building API offers no native upload item,
// so the respondent is asked for a shareable link instead. That
// substitution is deliberate policy, not a workaround to hide.
const LinkInstruction = "Please paste a shareable link to your uploaded file (Google Drive, Imgur, etc.)."

// Wire shapes for the form-building batchUpdate API.

type CreateItemRequest struct {
	CreateItem CreateItem `json:"createItem"`
}

type CreateItem struct {
	Item     Item     `json:"item"`
	Location Location `json:"location"`
}

type Location struct {
	Index int `json:"index"`
}

type Item struct {
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	PageBreakItem *PageBreakItem `json:"pageBreakItem,omitempty"`
	QuestionItem  *QuestionItem  `json:"questionItem,omitempty"`
}

type PageBreakItem struct{}

type QuestionItem struct {
	Question Question `json:"question"`
}

type Question struct {
	Required       bool            `json:"required"`
	TextQuestion   *TextQuestion   `json:"textQuestion,omitempty"`
	ChoiceQuestion *ChoiceQuestion `json:"choiceQuestion,omitempty"`
}

type TextQuestion struct {
	Paragraph bool `json:"paragraph"`
}

type ChoiceQuestion struct {
	Type    string   `json:"type"`
	Options []Option `json:"options"`
}

type Option struct {
	Value string `json:"value"`
}

// Compile maps every field to one create-item operation, indexed gaplessly
// by canonical order. A field with an unknown type is skipped, not fatal:
// one bad field must not block the rest of the form.
func Compile(s *schema.FormSchema) []CreateItemRequest {
	requests := make([]CreateItemRequest, 0, len(s.Fields))
	index := 0
	for _, f := range s.Fields {
		item, ok := compileField(f)
		if !ok {
			slog.Warn("skipping field with unknown type",
				"label", f.Label,
				"type", string(f.Type),
			)
			continue
		}
		requests = append(requests, CreateItemRequest{
			CreateItem: CreateItem{
				Item:     item,
				Location: Location{Index: index},
			},
		})
		index++
	}
	return requests
}

func compileField(f schema.FormField) (Item, bool) {
	switch f.Type {
	case schema.FieldSectionHeader:
		return Item{
			Title:         f.Label,
			Description:   f.Description,
			PageBreakItem: &PageBreakItem{},
		}, true

	case schema.FieldShortAnswer:
		return Item{
			Title:       f.Label,
			Description: f.Description,
			QuestionItem: &QuestionItem{
				Question: Question{
					Required:     f.Required,
					TextQuestion: &TextQuestion{Paragraph: false},
				},
			},
		}, true

	case schema.FieldCheckbox:
		return Item{
			Title:       f.Label,
			Description: f.Description,
			QuestionItem: &QuestionItem{
				Question: Question{
					Required: f.Required,
					ChoiceQuestion: &ChoiceQuestion{
						Type:    "CHECKBOX",
						Options: []Option{{Value: "Yes"}},
					},
				},
			},
		}, true

	case schema.FieldFileUpload:
		desc := f.Description
		if desc != "" {
			desc += "\n"
		}
		desc += LinkInstruction
		return Item{
			Title:       f.Label,
			Description: desc,
			QuestionItem: &QuestionItem{
				Question: Question{
					Required:     f.Required,
					TextQuestion: &TextQuestion{Paragraph: true},
				},
			},
		}, true
	}
	return Item{}, false
}
