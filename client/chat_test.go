package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

// chatBackend fakes the slice of the API the chat flow touches.
func chatBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","email":"a@b.com","name":"Ada"},"token":"tok-1"}}`))
	})
	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"missing token"}`))
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"s1","title":"` + body["title"] + `","userId":"u1"}}`))
	})
	mux.HandleFunc("/api/ai/sessions/s1/chat", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"response":"hello there",
			"userMessage":{"id":"m1","sessionId":"s1","role":"USER","content":"` + body.Message + `"},
			"assistantMessage":{"id":"m2","sessionId":"s1","role":"ASSISTANT","content":"hello there"},
			"sessionId":"s1"}}`))
	})
	mux.HandleFunc("/api/ai/sessions/s1/generate-title", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"title":"Greetings"}}`))
	})
	mux.HandleFunc("/api/ai/sessions/s1/summarize", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"summary":"They said hello."}}`))
	})
	mux.HandleFunc("/api/ai/sessions/s1/stream", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("streamed tokens"))
	})
	return httptest.NewServer(mux)
}

// The full first-conversation flow: login, create a session, exchange one
// message, auto-title.
func TestChatFlowEndToEnd(t *testing.T) {
	hs := chatBackend(t)
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	c := New(hs.URL, WithTokenStore(tokens))
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := tokens.Get(); !ok {
		t.Fatalf("credential absent after login")
	}

	s, err := c.CreateSession(ctx, "New Conversation")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if s.ID == "" || s.Title != "New Conversation" {
		t.Fatalf("unexpected session %+v", s)
	}

	res, err := c.SendMessage(ctx, s.ID, "hi", nil)
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if res.UserMessage.Role != RoleUser || res.UserMessage.Content != "hi" {
		t.Fatalf("user message %+v", res.UserMessage)
	}
	if res.AssistantMessage.Role != RoleAssistant {
		t.Fatalf("assistant message %+v", res.AssistantMessage)
	}
	if res.UserMessage.SessionID != s.ID || res.AssistantMessage.SessionID != s.ID {
		t.Fatalf("messages not bound to session: %+v", res)
	}
	if res.UserMessage.ID == res.AssistantMessage.ID {
		t.Fatalf("user and assistant messages share an id")
	}

	title, err := c.GenerateTitle(ctx, s.ID)
	if err != nil {
		t.Fatalf("generate title: %v", err)
	}
	if title != "Greetings" {
		t.Fatalf("title %q", title)
	}
}

func TestSummarizeConversation(t *testing.T) {
	hs := chatBackend(t)
	defer hs.Close()

	c := New(hs.URL)
	defer c.Close()
	summary, err := c.SummarizeConversation(context.Background(), "s1", 20)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != "They said hello." {
		t.Fatalf("summary %q", summary)
	}
}

func TestStreamMessage(t *testing.T) {
	hs := chatBackend(t)
	defer hs.Close()

	c := New(hs.URL)
	defer c.Close()
	rc, err := c.StreamMessage(context.Background(), "s1", "hi", nil)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(b) != "streamed tokens" {
		t.Fatalf("stream body %q", b)
	}
}

func TestSendMessageValidatesInput(t *testing.T) {
	c := New("http://unreachable.invalid")
	defer c.Close()
	if _, err := c.SendMessage(context.Background(), "", "hi", nil); err == nil {
		t.Fatalf("expected error for empty session id")
	}
	if _, err := c.SendMessage(context.Background(), "s1", "", nil); err == nil {
		t.Fatalf("expected error for empty message")
	}
}
