package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Pawank06/obzr-go/client"
)

// SessionHandler exposes conversation session tools.
type SessionHandler struct {
	client *client.Client
}

func NewSessionHandler(c *client.Client) *SessionHandler {
	return &SessionHandler{client: c}
}

// RegisterTools registers list_sessions, create_session and list_messages.
func (sh *SessionHandler) RegisterTools(s *server.MCPServer) error {
	listTool := mcp.NewTool("list_sessions",
		mcp.WithDescription("List the authenticated user's conversation sessions, newest first."),
	)
	s.AddTool(listTool, sh.handleListSessions)

	createTool := mcp.NewTool("create_session",
		mcp.WithDescription("Create a new conversation session and return its ID."),
		mcp.WithString("title", mcp.Description("Initial session title (default \"New Conversation\")")),
	)
	s.AddTool(createTool, sh.handleCreateSession)

	messagesTool := mcp.NewTool("list_messages",
		mcp.WithDescription("Return one page of messages for a session in insertion order."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID")),
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 50)")),
	)
	s.AddTool(messagesTool, sh.handleListMessages)
	return nil
}

func (sh *SessionHandler) handleListSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := sh.client.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list sessions failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(struct {
		Sessions []client.Session `json:"sessions"`
		Count    int              `json:"count"`
	}{Sessions: sessions, Count: len(sessions)}, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (sh *SessionHandler) handleCreateSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := "New Conversation"
	if v, ok := req.GetArguments()["title"].(string); ok && v != "" {
		title = v
	}
	sess, err := sh.client.CreateSession(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create session failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(sess, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (sh *SessionHandler) handleListMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := req.RequireString("session_id")

	page, limit := 1, 50
	if v, ok := req.GetArguments()["page"].(float64); ok && v >= 1 {
		page = int(v)
	}
	if v, ok := req.GetArguments()["limit"].(float64); ok && v >= 1 {
		limit = int(v)
	}

	pg, err := sh.client.ListMessages(ctx, sessionID, page, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list messages failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(pg, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
