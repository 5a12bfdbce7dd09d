package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// send issues one HTTP call with the bearer credential attached when present.
// Transport-level failures are returned as-is (no retry); a 401 response
// clears the credential and fires the auth-rejected hook before the response
// is handed back for envelope decoding.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, body any) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewBuffer(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if tok, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(op, "network_error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode/100)+"xx").Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		c.rejectAuth(op)
	}
	return resp, nil
}

// rejectAuth implements the process-wide 401 side effect: the credential is
// cleared and the hook runs regardless of which operation triggered it.
func (c *Client) rejectAuth(op string) {
	_ = c.tokens.Clear()
	authRejectedTotal.Inc()
	log.Warn().Str("op", op).Msg("authentication rejected; credential cleared")
	if c.onAuthRejected != nil {
		c.onAuthRejected()
	}
}
