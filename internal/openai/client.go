// Package openai implements the completion client that turns article bodies
// into head metadata using an OpenAI-compatible chat completion endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/thoreinstein/mdmeta/internal/errors"
	"github.com/thoreinstein/mdmeta/internal/logging"
	"github.com/thoreinstein/mdmeta/internal/metadata"
)

const (
	// DefaultBaseURL is the OpenAI API endpoint used when no override is
	// configured.
	DefaultBaseURL = "https://api.openai.com/v1"

	// maxErrorBody caps how much of an error response body is read into the
	// error message.
	maxErrorBody = 2048
)

// Config carries everything the client needs. The credential is an explicit
// input here, never read from the environment inside the client, so tests can
// inject fakes.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64

	// HTTPClient overrides the transport, mainly for tests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Client calls a chat completion endpoint to generate head metadata.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.ErrMissingCredential
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("model is required")
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:     base,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  httpClient,
	}, nil
}

// chatRequest is the OpenAI chat completion request payload.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// generatedPayload is the JSON shape the model is instructed to return.
type generatedPayload struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// GenerateMetadata sends the article body to the completion endpoint and
// decodes the response into head metadata. The call blocks until the remote
// answers or ctx is done; there is no retry.
//
// Transport failures and non-200 statuses surface as
// errors.ErrCompletionRequestFailed. A response that cannot be decoded into a
// non-empty description and keyword list surfaces as
// errors.ErrInvalidCompletionResponse.
func (c *Client) GenerateMetadata(ctx context.Context, body string) (metadata.Generated, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(body)},
		},
		Temperature:    c.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return metadata.Generated{}, errors.Wrap(err, "marshaling completion request")
	}

	logging.FromContext(ctx).Debug("requesting completion",
		"model", c.model, "temperature", c.temperature, "body_bytes", len(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return metadata.Generated{}, errors.Wrap(err, "building completion request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return metadata.Generated{}, errors.Wrapf(errors.ErrCompletionRequestFailed, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return metadata.Generated{}, statusError(resp)
	}

	return decodeResponse(resp.Body)
}

// statusError folds a non-200 response into ErrCompletionRequestFailed,
// keeping a trimmed slice of the body for the message.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return errors.Wrapf(errors.ErrCompletionRequestFailed, "status %d", resp.StatusCode)
	}
	return errors.Wrapf(errors.ErrCompletionRequestFailed, "status %d: %s", resp.StatusCode, msg)
}

// decodeResponse extracts the generated metadata from a 200 response.
func decodeResponse(r io.Reader) (metadata.Generated, error) {
	var decoded chatResponse
	if err := json.NewDecoder(r).Decode(&decoded); err != nil {
		return metadata.Generated{}, errors.Wrapf(errors.ErrInvalidCompletionResponse, "decoding response envelope: %v", err)
	}
	if len(decoded.Choices) == 0 {
		return metadata.Generated{}, errors.Wrap(errors.ErrInvalidCompletionResponse, "response has no choices")
	}

	content := decoded.Choices[0].Message.Content
	var gen generatedPayload
	if err := json.Unmarshal([]byte(content), &gen); err != nil {
		return metadata.Generated{}, errors.Wrapf(errors.ErrInvalidCompletionResponse, "decoding message content: %v", err)
	}

	if strings.TrimSpace(gen.Description) == "" {
		return metadata.Generated{}, errors.Wrap(errors.ErrInvalidCompletionResponse, "missing description")
	}
	if len(gen.Keywords) == 0 {
		return metadata.Generated{}, errors.Wrap(errors.ErrInvalidCompletionResponse, "missing keywords")
	}

	return metadata.Generated{
		Description: gen.Description,
		Keywords:    gen.Keywords,
	}, nil
}
