package client

import (
	"context"
	"net/http"
)

// ListModels returns the assistant models the backend can serve plus the
// server's designated default. The Models slice is never nil.
func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	resp, err := c.send(ctx, "list models", http.MethodGet, "/api/ai/models", nil, nil)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[ModelList](resp, "list models")
	if err != nil {
		return nil, err
	}
	if res.Models == nil {
		res.Models = []AIModel{}
	}
	return &res, nil
}
