package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Legacy (v1) memory operations.
//
// Deprecated: the v1 subsystem is a compatibility path only. It remains
// because stored v1 records have no migration into the v2 tiers; new code
// should use StoreMemory and QueryMemories.

// ListMemories returns all legacy memories. The result is never nil.
//
// Deprecated: see package note on the v1 subsystem.
func (c *Client) ListMemories(ctx context.Context) ([]Memory, error) {
	resp, err := c.send(ctx, "list memories", http.MethodGet, "/api/memories", nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[Memory](resp, "list memories")
}

// CreateMemory stores a legacy memory record.
//
// Deprecated: see package note on the v1 subsystem.
func (c *Client) CreateMemory(ctx context.Context, req CreateMemoryRequest) (*Memory, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if err := ValidateCategory(req.Category); err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, "create memory", http.MethodPost, "/api/memories", nil, req)
	if err != nil {
		return nil, err
	}
	m, err := unwrap[Memory](resp, "create memory")
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SearchMemories does a keyword search over legacy memories. Limit 0 and an
// empty category leave the server defaults in place. The result is never nil.
//
// Deprecated: see package note on the v1 subsystem.
func (c *Client) SearchMemories(ctx context.Context, query string, limit int, category MemoryCategory) ([]Memory, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if category != "" {
		if err := ValidateCategory(category); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if category != "" {
		params.Set("type", string(category))
	}

	resp, err := c.send(ctx, "search memories", http.MethodGet, "/api/memories/search", params, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[Memory](resp, "search memories")
}

// DeleteMemory removes a legacy memory by ID.
//
// Deprecated: see package note on the v1 subsystem.
func (c *Client) DeleteMemory(ctx context.Context, memoryID string) error {
	if err := requireID(memoryID, "memoryId"); err != nil {
		return err
	}
	resp, err := c.send(ctx, "delete memory", http.MethodDelete, "/api/memories/"+memoryID, nil, nil)
	if err != nil {
		return err
	}
	return unwrapOK(resp, "delete memory")
}
