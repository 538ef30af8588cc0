package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return client
}

func completion(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGenerateJSONWithoutAPIKey(t *testing.T) {
	// Construction succeeds so a server can start unconfigured; the call
	// itself reports the missing key as a backend error.
	client, err := NewClient(&Config{})
	require.NoError(t, err)

	_, err = client.GenerateJSON(context.Background(), Request{Model: "m"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeAPI, apiErr.Type)
	assert.Contains(t, apiErr.Message, "no API key")
}

func TestGenerateJSONHappyPath(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, completion(`{"ok": true}`))
	})

	content, err := client.GenerateJSON(context.Background(), Request{
		Model:  "llama-3.1-8b-instant",
		System: "system prompt",
		User:   "user prompt",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, content)

	// First attempt always requests structured output.
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestGenerateJSONRetriesWithRelaxedFormat(t *testing.T) {
	var requests []chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		if req.ResponseFormat != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": {"message": "response_format not supported"}}`)
			return
		}
		fmt.Fprint(w, completion(`{"ok": true}`))
	})

	content, err := client.GenerateJSON(context.Background(), Request{
		Model:  "llama-3.1-8b-instant",
		System: "system prompt",
		User:   "user prompt",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, content)

	require.Len(t, requests, 2)
	assert.Nil(t, requests[1].ResponseFormat)
	assert.Contains(t, requests[1].Messages[0].Content, "Return ONLY raw JSON")
}

func TestGenerateJSONSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `rate limited`)
	})

	_, err := client.GenerateJSON(context.Background(), Request{Model: "m"})
	require.Error(t, err)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrorTypeAPI, genErr.Type)
	assert.Equal(t, http.StatusTooManyRequests, genErr.Code)
}

func TestGenerateJSONEmptyCompletion(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"choices": []}`)
	})

	_, err := client.GenerateJSON(context.Background(), Request{Model: "m"})
	require.Error(t, err)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrorTypeEmpty, genErr.Type)
	// Empty completions get the relaxed retry too.
	assert.Equal(t, 2, calls)
}
