package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-builder/pkg/ai/agents"
	"resume-builder/pkg/logger"
)

// Extractor runs one section agent over a piece of resume text and returns
// the JSON object the agent produced, byte for byte, so key order survives.
type Extractor interface {
	Extract(ctx context.Context, a agents.Agent, input string) (json.RawMessage, error)
}

var (
	ErrNonJSON    = errors.New("ai: reply is not a JSON object")
	ErrNoToolCall = errors.New("ai: reply has no function call")
)

// Client calls the internal ai-service chat endpoint. The service has no
// function calling, so the agent schema travels in the prompt and the JSON
// object is recovered from the free-text reply.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts int
	// Backoff is doubled after every failed attempt.
	Backoff time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Attempts: 3,
		Backoff:  time.Second,
	}
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

const jsonOnly = "Respond with ONLY a single JSON object that conforms to the JSON Schema below. Do NOT include any explanatory text, backticks, or code fences."

func (c *Client) Extract(ctx context.Context, a agents.Agent, input string) (json.RawMessage, error) {
	prompt := a.SystemPrompt() + "\n\n" + jsonOnly + "\n\nJSON-SCHEMA:\n" + string(a.Parameters) + "\n\n" + a.UserPrompt(input)
	body, err := json.Marshal(chatRequest{Agent: "auto", Input: prompt})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With("agent", a.Name)
	log.Debug("ai-service request", "url", c.BaseURL+"/v1/chat", "bytes", len(body))

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", body)
	if err != nil {
		return nil, fmt.Errorf("ai-service %s: %w", a.Name, err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Debug("ai-service response", "status", resp.StatusCode, "bytes", len(rb))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai-service %s: status %d", a.Name, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(rb, &chat); err != nil {
		return nil, fmt.Errorf("ai-service %s: %w", a.Name, err)
	}
	return DecodeObject(chat.Output)
}

// doPostWithRetry retries transport errors and 5xx replies with exponential
// backoff. The last 5xx response is returned as is.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= 500 && i < attempts-1:
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if i < attempts-1 {
			select {
			case <-time.After(c.Backoff << i):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// DecodeObject returns s as a JSON object, falling back to the text between
// the first '{' and the last '}' when the model wrapped it in prose.
func DecodeObject(s string) (json.RawMessage, error) {
	if obj, ok := asObject(s); ok {
		return obj, nil
	}
	start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		if obj, ok := asObject(s[start : end+1]); ok {
			return obj, nil
		}
	}
	return nil, ErrNonJSON
}

func asObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}
