package google

import (
	"context"
	"fmt"
	"net/http"

	"formforge/internal/forms"
)

// FormsClient talks to the form-building backend.
type FormsClient struct {
	http    *http.Client
	baseURL string
}

// CreateForm creates an empty form carrying only the title; the backend
// rejects any other attribute at creation time.
func (c *FormsClient) CreateForm(ctx context.Context, s Session, title string) (string, error) {
	body := map[string]any{
		"info": map[string]string{"title": title},
	}
	var resp struct {
		FormID string `json:"formId"`
	}
	url := c.baseURL + "/v1/forms"
	if err := doJSON(ctx, c.http, s, http.MethodPost, url, body, &resp); err != nil {
		return "", err
	}
	if resp.FormID == "" {
		return "", fmt.Errorf("form creation returned no formId")
	}
	return resp.FormID, nil
}

// SetDescription updates the form description via batchUpdate.
func (c *FormsClient) SetDescription(ctx context.Context, s Session, formID, description string) error {
	body := map[string]any{
		"requests": []map[string]any{{
			"updateFormInfo": map[string]any{
				"info":       map[string]string{"description": description},
				"updateMask": "description",
			},
		}},
	}
	url := fmt.Sprintf("%s/v1/forms/%s:batchUpdate", c.baseURL, formID)
	return doJSON(ctx, c.http, s, http.MethodPost, url, body, nil)
}

// AppendItems submits the compiled create-item operations in one batch.
func (c *FormsClient) AppendItems(ctx context.Context, s Session, formID string, items []forms.CreateItemRequest) error {
	if len(items) == 0 {
		return nil
	}
	body := map[string]any{"requests": items}
	url := fmt.Sprintf("%s/v1/forms/%s:batchUpdate", c.baseURL, formID)
	return doJSON(ctx, c.http, s, http.MethodPost, url, body, nil)
}

// ResponderURL fetches the public responder link for a form.
func (c *FormsClient) ResponderURL(ctx context.Context, s Session, formID string) (string, error) {
	var resp struct {
		ResponderURI string `json:"responderUri"`
	}
	url := fmt.Sprintf("%s/v1/forms/%s", c.baseURL, formID)
	if err := doJSON(ctx, c.http, s, http.MethodGet, url, nil, &resp); err != nil {
		return "", err
	}
	if resp.ResponderURI == "" {
		return fmt.Sprintf("https://docs.google.com/forms/d/e/%s/viewform", formID), nil
	}
	return resp.ResponderURI, nil
}
