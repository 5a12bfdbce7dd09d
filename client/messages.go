package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Pawank06/obzr-go/internal/requestcache"
)

// Message listing. Deduplicated per (session, page, limit); an HTTP 304 is
// normalized to an empty page so polling callers can treat "no new data"
// uniformly with a successful empty page.

// ListMessages returns one page of a session's messages in insertion order.
// Page defaults to 1, limit to 50.
func (c *Client) ListMessages(ctx context.Context, sessionID string, page, limit int) (*MessagePage, error) {
	if err := requireID(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	key := fmt.Sprintf("messages-%s-%d-%d", sessionID, page, limit)
	pctx := context.WithoutCancel(ctx)
	return requestcache.Dedupe(ctx, c.cache, key, func() (*MessagePage, error) {
		return c.fetchMessages(pctx, sessionID, page, limit)
	})
}

func (c *Client) fetchMessages(ctx context.Context, sessionID string, page, limit int) (*MessagePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	path := "/api/messages/sessions/" + sessionID + "/messages"
	resp, err := c.send(ctx, "list messages", http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotModified {
		_ = resp.Body.Close()
		return &MessagePage{Messages: []Message{}, Total: 0, HasMore: false}, nil
	}

	msgs, pag, err := unwrapPage[Message](resp, "list messages")
	if err != nil {
		return nil, err
	}
	out := &MessagePage{Messages: msgs}
	if pag != nil {
		out.Total = pag.Total
		out.HasMore = pag.HasNext
	}
	return out, nil
}
