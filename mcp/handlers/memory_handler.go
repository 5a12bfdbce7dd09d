package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Pawank06/obzr-go/client"
)

// MemoryHandler exposes the tiered memory tools.
type MemoryHandler struct {
	client *client.Client
}

func NewMemoryHandler(c *client.Client) *MemoryHandler {
	return &MemoryHandler{client: c}
}

// RegisterTools registers store_memory, query_memories and memory_stats.
func (mh *MemoryHandler) RegisterTools(s *server.MCPServer) error {
	storeTool := mcp.NewTool("store_memory",
		mcp.WithDescription("Store a memory in the tiered memory system. The server scores importance and routes the item into short-term memory unless bypass_stm is set."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Memory content text")),
		mcp.WithString("type", mcp.Description("Memory type: episodic, semantic or procedural")),
		mcp.WithString("session_id", mcp.Description("Originating session ID")),
		mcp.WithBoolean("bypass_stm", mcp.Description("Write directly to long-term memory")),
	)
	s.AddTool(storeTool, mh.handleStore)

	queryTool := mcp.NewTool("query_memories",
		mcp.WithDescription("Retrieve relevant memories for a query. Results include:\n • memories – ranked memory contexts with relevance scores.\n • searchStats – how many short-term and long-term items were considered."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Retrieval query text")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 10)")),
		mcp.WithString("session_id", mcp.Description("Restrict retrieval to one session")),
	)
	s.AddTool(queryTool, mh.handleQuery)

	statsTool := mcp.NewTool("memory_stats",
		mcp.WithDescription("Return tier-by-tier statistics for the memory system."),
	)
	s.AddTool(statsTool, mh.handleStats)
	return nil
}

func (mh *MemoryHandler) handleStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, _ := req.RequireString("content")

	sr := client.StoreMemoryRequest{Content: content}
	if v, ok := req.GetArguments()["type"].(string); ok {
		sr.Type = v
	}
	if v, ok := req.GetArguments()["session_id"].(string); ok {
		sr.SessionID = v
	}
	if v, ok := req.GetArguments()["bypass_stm"].(bool); ok {
		sr.BypassSTM = v
	}

	res, err := mh.client.StoreMemory(ctx, sr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (mh *MemoryHandler) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := req.RequireString("query")

	qr := client.QueryMemoriesRequest{Query: query}
	if v, ok := req.GetArguments()["limit"].(float64); ok && v >= 1 {
		qr.Limit = int(v)
	}
	if v, ok := req.GetArguments()["session_id"].(string); ok {
		qr.SessionID = v
	}

	res, err := mh.client.QueryMemories(ctx, qr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	payload := map[string]interface{}{
		"memories":    res.Memories,
		"count":       len(res.Memories),
		"searchStats": res.SearchStats,
	}
	b, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (mh *MemoryHandler) handleStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := mh.client.MemoryStats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
