package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Client talks to an OpenAI-compatible chat-completions backend.
type Client struct {
	config *Config
	http   *http.Client
}

// NewClient creates a new generation backend client. A missing API key is
// not a construction error: a development server may start without one, so
// the check happens per call instead.
func NewClient(config *Config) (*Client, error) {
	config.SetDefaults()

	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// SchemaModel returns the model configured for schema derivation.
func (c *Client) SchemaModel() string { return c.config.SchemaModel }

// ReminderModel returns the model configured for reminder drafting.
func (c *Client) ReminderModel() string { return c.config.ReminderModel }

// Request describes one generation call.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// chatRequest is the wire request (OpenAI-compatible).
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

// chatResponse is the wire response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// rawJSONFallback is appended to the system prompt on the relaxed retry.
const rawJSONFallback = "\n\nCRITICAL: Return ONLY raw JSON. No code fences, no explanation."

// GenerateJSON requests a single JSON object from the backend. The first
// attempt asks for structured output via response_format; if the backend
// rejects the call, one retry goes out without response_format and with an
// explicit raw-JSON-only instruction, since some models fail the structured
// mode yet comply with the plain instruction. The returned content is the
// raw completion text; callers run it through ExtractJSON before parsing.
func (c *Client) GenerateJSON(ctx context.Context, req Request) (string, error) {
	if c.config.APIKey == "" {
		return "", NewAPIError(0, "no API key configured")
	}

	content, err := c.call(ctx, req, true)
	if err == nil {
		return content, nil
	}

	apiErr, ok := err.(*Error)
	if !ok || apiErr.Type == ErrorTypeNetwork {
		return "", err
	}

	slog.Warn("structured generation failed, retrying with relaxed format",
		"model", req.Model,
		"error", err.Error(),
	)

	relaxed := req
	relaxed.System += rawJSONFallback
	return c.call(ctx, relaxed, false)
}

// call makes a single HTTP round trip to the chat-completions endpoint.
func (c *Client) call(ctx context.Context, req Request, structured bool) (string, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if structured {
		body.ResponseFormat = &respFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		slog.Error("generation HTTP request failed",
			"error", err.Error(),
			"duration", duration,
		)
		return "", NewNetworkError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	slog.Info("generation HTTP request completed",
		"model", req.Model,
		"status_code", resp.StatusCode,
		"structured", structured,
		"duration", duration,
	)

	if resp.StatusCode != http.StatusOK {
		var errBody bytes.Buffer
		if _, err := errBody.ReadFrom(resp.Body); err != nil {
			return "", NewAPIError(resp.StatusCode, fmt.Sprintf("status %d (failed to read error body)", resp.StatusCode))
		}
		return "", NewAPIError(resp.StatusCode, errBody.String())
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chat.Error != nil {
		return "", NewAPIError(0, chat.Error.Message)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return "", NewEmptyError()
	}

	return chat.Choices[0].Message.Content, nil
}
