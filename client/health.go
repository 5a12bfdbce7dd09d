package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Health checks the bare /health liveness route. Unlike the API routes it is
// not wrapped in the response envelope.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.send(ctx, "health", http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return nil, &APIError{Op: "health", Status: resp.StatusCode, Message: "malformed health payload: " + err.Error()}
	}
	return &hs, nil
}

// AwaitHealthy polls /health with exponential backoff until the service
// reports healthy, the backoff gives up, or ctx is cancelled. This is the
// only place the client retries on its own; domain operations never do.
func (c *Client) AwaitHealthy(ctx context.Context) error {
	check := func() error {
		hs, err := c.Health(ctx)
		if err != nil {
			return err
		}
		switch hs.Status {
		case "healthy", "ok":
			return nil
		}
		return fmt.Errorf("service status %q", hs.Status)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.Retry(check, backoff.WithContext(bo, ctx))
}
