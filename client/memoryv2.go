package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Memory v2: the tiered short-term/long-term subsystem. Importance is
// assigned by the server-side scorer; promotion and consolidation run on the
// server and are only triggered from here.

// StoreMemory writes into the v2 subsystem and reports where the record
// landed (STM, LTM, or both).
func (c *Client) StoreMemory(ctx context.Context, req StoreMemoryRequest) (*StoreResult, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("content is required")
	}
	resp, err := c.send(ctx, "store memory", http.MethodPost, "/api/memory/store", nil, req)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[StoreResult](resp, "store memory")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// BatchStoreMemories stores several records in one round trip.
func (c *Client) BatchStoreMemories(ctx context.Context, memories []StoreMemoryRequest) ([]StoreResult, error) {
	if len(memories) == 0 {
		return nil, fmt.Errorf("memories are required")
	}
	for i, m := range memories {
		if m.Content == "" {
			return nil, fmt.Errorf("memories[%d]: content is required", i)
		}
	}
	body := struct {
		Memories []StoreMemoryRequest `json:"memories"`
	}{Memories: memories}
	resp, err := c.send(ctx, "batch store memories", http.MethodPost, "/api/memory/batch-store", nil, body)
	if err != nil {
		return nil, err
	}
	payload, err := unwrap[struct {
		Results []StoreResult `json:"results"`
	}](resp, "batch store memories")
	if err != nil {
		return nil, err
	}
	if payload.Results == nil {
		payload.Results = []StoreResult{}
	}
	return payload.Results, nil
}

// QueryMemories runs a v2 retrieval query. The result's Memories slice is
// never nil.
func (c *Client) QueryMemories(ctx context.Context, req QueryMemoriesRequest) (*MemoryQueryResult, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	resp, err := c.send(ctx, "query memories", http.MethodPost, "/api/memory/query", nil, req)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[MemoryQueryResult](resp, "query memories")
	if err != nil {
		return nil, err
	}
	if res.Memories == nil {
		res.Memories = []MemoryContext{}
	}
	return &res, nil
}

// QueryMemoriesWithLegacy issues the v2 query and reissues the legacy v1
// search for backward compatibility. The branches run concurrently and fail
// independently: a failed branch degrades to an empty result and is logged,
// never escalated to the caller.
func (c *Client) QueryMemoriesWithLegacy(ctx context.Context, req QueryMemoriesRequest) (*CompatQueryResult, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	out := &CompatQueryResult{}
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		v2, err := c.QueryMemories(ctx, req)
		if err != nil {
			log.Warn().Err(err).Str("query", req.Query).Msg("v2 memory query failed; degrading to empty result")
			v2 = &MemoryQueryResult{Memories: []MemoryContext{}, Query: req.Query}
		}
		out.V2 = v2
	}()

	go func() {
		defer wg.Done()
		legacy, err := c.SearchMemories(ctx, req.Query, req.Limit, req.Category)
		if err != nil {
			log.Warn().Err(err).Str("query", req.Query).Msg("legacy memory search failed; degrading to empty result")
			legacy = []Memory{}
		}
		out.Legacy = legacy
	}()

	wg.Wait()
	return out, nil
}

// PromoteMemories triggers a server-side STM→LTM promotion run.
func (c *Client) PromoteMemories(ctx context.Context, opts *PromoteOptions) (*PromotionResult, error) {
	body := opts
	if body == nil {
		body = &PromoteOptions{}
	}
	resp, err := c.send(ctx, "promote memories", http.MethodPost, "/api/memory/promote", nil, body)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[PromotionResult](resp, "promote memories")
	if err != nil {
		return nil, err
	}
	if res.Details == nil {
		res.Details = []PromotionDetail{}
	}
	return &res, nil
}

// ConsolidateMemories triggers a server-side clustering/merge run.
func (c *Client) ConsolidateMemories(ctx context.Context, opts *ConsolidateOptions) (*ConsolidationResult, error) {
	body := opts
	if body == nil {
		body = &ConsolidateOptions{}
	}
	resp, err := c.send(ctx, "consolidate memories", http.MethodPost, "/api/memory/consolidate", nil, body)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[ConsolidationResult](resp, "consolidate memories")
	if err != nil {
		return nil, err
	}
	if res.Details == nil {
		res.Details = []ConsolidationDetail{}
	}
	return &res, nil
}

// ClearMemories empties one tier and returns how many records were removed.
func (c *Client) ClearMemories(ctx context.Context, tier MemoryTier) (int, error) {
	if err := ValidateTier(tier); err != nil {
		return 0, err
	}
	body := struct {
		Type MemoryTier `json:"type"`
	}{Type: tier}
	resp, err := c.send(ctx, "clear memories", http.MethodDelete, "/api/memory/clear", nil, body)
	if err != nil {
		return 0, err
	}
	payload, err := unwrap[struct {
		Cleared int `json:"cleared"`
	}](resp, "clear memories")
	if err != nil {
		return 0, err
	}
	return payload.Cleared, nil
}

// MemoryStats reports tier, cache and telemetry statistics.
func (c *Client) MemoryStats(ctx context.Context) (*MemoryStats, error) {
	resp, err := c.send(ctx, "memory stats", http.MethodGet, "/api/memory/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[MemoryStats](resp, "memory stats")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// MemoryCacheStats reports the server-side memory cache and telemetry view.
func (c *Client) MemoryCacheStats(ctx context.Context) (*CacheStats, *TelemetryStats, error) {
	resp, err := c.send(ctx, "memory cache stats", http.MethodGet, "/api/memory/cache-stats", nil, nil)
	if err != nil {
		return nil, nil, err
	}
	payload, err := unwrap[struct {
		Cache     CacheStats     `json:"cache"`
		Telemetry TelemetryStats `json:"telemetry"`
	}](resp, "memory cache stats")
	if err != nil {
		return nil, nil, err
	}
	return &payload.Cache, &payload.Telemetry, nil
}

// MemoryHealth reports service-by-service health of the v2 subsystem.
func (c *Client) MemoryHealth(ctx context.Context) (*MemoryHealth, error) {
	resp, err := c.send(ctx, "memory health", http.MethodGet, "/api/memory/health", nil, nil)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[MemoryHealth](resp, "memory health")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// WarmUpCache pre-populates the server-side memory cache.
func (c *Client) WarmUpCache(ctx context.Context) (int, error) {
	resp, err := c.send(ctx, "warm up cache", http.MethodPost, "/api/memory/cache/warm-up", nil, nil)
	if err != nil {
		return 0, err
	}
	payload, err := unwrap[struct {
		WarmedUp int `json:"warmedUp"`
	}](resp, "warm up cache")
	if err != nil {
		return 0, err
	}
	return payload.WarmedUp, nil
}

// RunMaintenance triggers the server-side memory maintenance tasks.
func (c *Client) RunMaintenance(ctx context.Context) (int, error) {
	resp, err := c.send(ctx, "run maintenance", http.MethodPost, "/api/memory/maintenance", nil, nil)
	if err != nil {
		return 0, err
	}
	payload, err := unwrap[struct {
		TasksCompleted int `json:"tasksCompleted"`
	}](resp, "run maintenance")
	if err != nil {
		return 0, err
	}
	return payload.TasksCompleted, nil
}

// UpdateMemoryConfig pushes new v2 subsystem configuration.
func (c *Client) UpdateMemoryConfig(ctx context.Context, cfg map[string]any) (bool, error) {
	if len(cfg) == 0 {
		return false, fmt.Errorf("config is required")
	}
	resp, err := c.send(ctx, "update memory config", http.MethodPut, "/api/memory/config", nil, cfg)
	if err != nil {
		return false, err
	}
	payload, err := unwrap[struct {
		Updated bool `json:"updated"`
	}](resp, "update memory config")
	if err != nil {
		return false, err
	}
	return payload.Updated, nil
}
