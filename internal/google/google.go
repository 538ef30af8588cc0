// Package google holds thin REST clients for the Forms, Drive, and
// Calendar backends. Each call takes a per-request Session handle supplied
// by the identity provider; no credentials live in package state.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Session is a ready-to-use authenticated handle for one request.
type Session struct {
	AccessToken string
}

// Config carries shared HTTP settings and overridable base URLs.
type Config struct {
	// Timeout is the per-call HTTP timeout. Default: 30 seconds.
	Timeout time.Duration

	// Base URLs, overridable for tests.
	FormsBaseURL    string
	DriveBaseURL    string
	UploadBaseURL   string
	CalendarBaseURL string
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.FormsBaseURL == "" {
		c.FormsBaseURL = "https://forms.googleapis.com"
	}
	if c.DriveBaseURL == "" {
		c.DriveBaseURL = "https://www.googleapis.com"
	}
	if c.UploadBaseURL == "" {
		c.UploadBaseURL = "https://www.googleapis.com"
	}
	if c.CalendarBaseURL == "" {
		c.CalendarBaseURL = "https://www.googleapis.com"
	}
}

// Clients bundles the three collaborator clients over one HTTP client.
type Clients struct {
	Forms    *FormsClient
	Drive    *DriveClient
	Calendar *CalendarClient
}

// NewClients builds the collaborator clients.
func NewClients(cfg Config) *Clients {
	cfg.SetDefaults()
	hc := &http.Client{Timeout: cfg.Timeout}
	return &Clients{
		Forms:    &FormsClient{http: hc, baseURL: cfg.FormsBaseURL},
		Drive:    &DriveClient{http: hc, baseURL: cfg.DriveBaseURL, uploadURL: cfg.UploadBaseURL},
		Calendar: &CalendarClient{http: hc, baseURL: cfg.CalendarBaseURL},
	}
}

// doJSON performs an authenticated request with an optional JSON body and
// decodes the JSON response into out (when out is non-nil).
func doJSON(ctx context.Context, hc *http.Client, s Session, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return do(hc, req, out)
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func do(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
