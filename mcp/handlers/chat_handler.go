package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Pawank06/obzr-go/client"
)

// ChatHandler exposes the send_chat_message and generate_title tools.
type ChatHandler struct {
	client *client.Client
}

func NewChatHandler(c *client.Client) *ChatHandler {
	return &ChatHandler{client: c}
}

// RegisterTools registers the chat tools.
func (ch *ChatHandler) RegisterTools(s *server.MCPServer) error {
	chatTool := mcp.NewTool("send_chat_message",
		mcp.WithDescription("Send a chat message to a session and return the assistant's reply. Results include:\n • response – the assistant's full text reply.\n • userMessage / assistantMessage – the two persisted messages of the exchange."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message text")),
		mcp.WithString("model", mcp.Description("Model override (default: server default)")),
		mcp.WithBoolean("include_memory", mcp.Description("Include personalized memory context (default false)")),
	)
	s.AddTool(chatTool, ch.handleChat)

	titleTool := mcp.NewTool("generate_title",
		mcp.WithDescription("Generate and persist a short title for a session based on its messages."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session ID")),
	)
	s.AddTool(titleTool, ch.handleGenerateTitle)
	return nil
}

func (ch *ChatHandler) handleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := req.RequireString("session_id")
	message, _ := req.RequireString("message")

	var opts *client.ChatOptions
	if model, ok := req.GetArguments()["model"].(string); ok && model != "" {
		opts = &client.ChatOptions{Model: model}
	}
	if v, ok := req.GetArguments()["include_memory"].(bool); ok && v {
		if opts == nil {
			opts = &client.ChatOptions{}
		}
		opts.IncludeMemory = true
	}

	res, err := ch.client.SendMessage(ctx, sessionID, message, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}

	payload := map[string]interface{}{
		"response":         res.Response,
		"userMessage":      res.UserMessage,
		"assistantMessage": res.AssistantMessage,
		"sessionId":        res.SessionID,
	}
	b, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (ch *ChatHandler) handleGenerateTitle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := req.RequireString("session_id")

	title, err := ch.client.GenerateTitle(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("title generation failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(struct {
		Title string `json:"title"`
	}{Title: title}, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
