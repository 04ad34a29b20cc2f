package gemini

import (
	"context"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ExtractionError represents an error that occurred during a Gemini
// extraction call: a failed request, an empty candidate list, or a response
// that could not be parsed as the expected schema.
type ExtractionError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "gemini extraction error: " + e.Op
	}
	return "gemini extraction error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Config holds configuration for the Gemini extraction client
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the Gemini client
func DefaultConfig() *Config {
	return &Config{
		Model:   "gemini-3-flash-preview",
		Timeout: 60 * time.Second,
	}
}

// Client wraps the Gemini generative model for invoice field extraction.
// It is stateless between calls and safe for concurrent use.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewClient creates a new Gemini extraction client
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}

	// Without an API key the server still starts and serves the collection;
	// every extraction call resolves to an error instead.
	if config.APIKey == "" {
		return &Client{timeout: config.Timeout}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, &ExtractionError{
			Op:  "create_client",
			Err: err,
		}
	}

	model := client.GenerativeModel(config.Model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = invoiceSchema()

	return &Client{
		client:  client,
		model:   model,
		timeout: config.Timeout,
	}, nil
}

// Close releases the underlying API client
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
