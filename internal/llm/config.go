package llm

import "time"

// Config contains configuration for the generation backend client. The
// backend speaks the OpenAI-compatible chat-completions protocol.
type Config struct {
	// APIKey authenticates against the backend
	APIKey string

	// BaseURL is the chat-completions API base URL
	// Default: https://api.groq.com/openai/v1
	BaseURL string

	// SchemaModel is used for form-schema derivation
	SchemaModel string

	// ReminderModel is used for reminder-draft generation
	ReminderModel string

	// Timeout is the HTTP request timeout
	// Default: 30 seconds
	Timeout time.Duration
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.SchemaModel == "" {
		c.SchemaModel = "llama-3.1-8b-instant"
	}
	if c.ReminderModel == "" {
		c.ReminderModel = "llama-3.3-70b-versatile"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}
