package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Pawank06/obzr-go/internal/requestcache"
)

// Session operations. Reads are deduplicated: concurrent calls with the same
// key share a single server round trip. Writes always hit the server.

// ListSessions returns the caller's sessions, newest first per the server's
// ordering. The result is never nil.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	pctx := context.WithoutCancel(ctx)
	return requestcache.Dedupe(ctx, c.cache, "sessions", func() ([]Session, error) {
		resp, err := c.send(pctx, "list sessions", http.MethodGet, "/api/sessions", nil, nil)
		if err != nil {
			return nil, err
		}
		return unwrapList[Session](resp, "list sessions")
	})
}

// CreateSession starts a new conversation with the given title.
func (c *Client) CreateSession(ctx context.Context, title string) (*Session, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	resp, err := c.send(ctx, "create session", http.MethodPost, "/api/sessions", nil, createSessionRequest{Title: title})
	if err != nil {
		return nil, err
	}
	s, err := unwrap[Session](resp, "create session")
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession fetches one session by ID.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	pctx := context.WithoutCancel(ctx)
	return requestcache.Dedupe(ctx, c.cache, "session-"+sessionID, func() (*Session, error) {
		resp, err := c.send(pctx, "get session", http.MethodGet, "/api/sessions/"+sessionID, nil, nil)
		if err != nil {
			return nil, err
		}
		s, err := unwrap[Session](resp, "get session")
		if err != nil {
			return nil, err
		}
		return &s, nil
	})
}

// DeleteSession removes a session and its messages.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return err
	}
	resp, err := c.send(ctx, "delete session", http.MethodDelete, "/api/sessions/"+sessionID, nil, nil)
	if err != nil {
		return err
	}
	return unwrapOK(resp, "delete session")
}
