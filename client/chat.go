package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Chat operations. SendMessage is intentionally not deduplicated: every call
// is a distinct user action and must reach the server exactly once per
// invocation. Retries are the caller's responsibility.

// SendMessage posts one user message and returns the completed exchange.
func (c *Client) SendMessage(ctx context.Context, sessionID, text string, opts *ChatOptions) (*ChatResult, error) {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("message is required")
	}

	path := "/api/ai/sessions/" + sessionID + "/chat"
	resp, err := c.send(ctx, "send message", http.MethodPost, path, nil, chatRequest{Message: text, Options: opts})
	if err != nil {
		return nil, err
	}
	res, err := unwrap[ChatResult](resp, "send message")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// StreamMessage posts one user message and returns the raw streaming reply
// body. The caller owns Close.
func (c *Client) StreamMessage(ctx context.Context, sessionID, text string, opts *ChatOptions) (io.ReadCloser, error) {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("message is required")
	}

	path := "/api/ai/sessions/" + sessionID + "/stream"
	resp, err := c.send(ctx, "stream message", http.MethodPost, path, nil, chatRequest{Message: text, Options: opts})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &APIError{Op: "stream message", Status: resp.StatusCode, Message: "streaming request failed"}
	}
	return resp.Body, nil
}

// GenerateTitle asks the assistant to name the session. The UI invokes this
// once, right after the first successful exchange.
func (c *Client) GenerateTitle(ctx context.Context, sessionID string) (string, error) {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return "", err
	}
	path := "/api/ai/sessions/" + sessionID + "/generate-title"
	resp, err := c.send(ctx, "generate title", http.MethodPost, path, nil, nil)
	if err != nil {
		return "", err
	}
	payload, err := unwrap[struct {
		Title string `json:"title"`
	}](resp, "generate title")
	if err != nil {
		return "", err
	}
	return payload.Title, nil
}

// SummarizeConversation returns an assistant-written summary of the session,
// optionally bounded to the most recent maxMessages messages (0 = all).
func (c *Client) SummarizeConversation(ctx context.Context, sessionID string, maxMessages int) (string, error) {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return "", err
	}
	var query url.Values
	if maxMessages > 0 {
		query = url.Values{}
		query.Set("maxMessages", strconv.Itoa(maxMessages))
	}
	path := "/api/ai/sessions/" + sessionID + "/summarize"
	resp, err := c.send(ctx, "summarize conversation", http.MethodPost, path, query, nil)
	if err != nil {
		return "", err
	}
	payload, err := unwrap[struct {
		Summary string `json:"summary"`
	}](resp, "summarize conversation")
	if err != nil {
		return "", err
	}
	return payload.Summary, nil
}

// GenerateStructured requests schema-constrained generation and returns the
// raw payload for the caller to decode.
func (c *Client) GenerateStructured(ctx context.Context, req StructuredRequest) (json.RawMessage, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	resp, err := c.send(ctx, "generate structured", http.MethodPost, "/api/ai/generate-structured", nil, req)
	if err != nil {
		return nil, err
	}
	return unwrap[json.RawMessage](resp, "generate structured")
}
