package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

func TestBearerAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	_ = tokens.Set("tok-123")
	c := New(hs.URL, WithTokenStore(tokens))
	defer c.Close()

	if _, err := c.ListSessions(context.Background()); err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header %q", gotAuth)
	}
}

func TestUnauthenticatedCallSendsNoBearer(t *testing.T) {
	var gotAuth string
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer hs.Close()

	c := New(hs.URL)
	defer c.Close()
	if _, err := c.ListSessions(context.Background()); err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestEnvelopeFailureCarriesServerMessage(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))
	defer hs.Close()

	c := New(hs.URL)
	defer c.Close()
	_, err := c.CreateSession(context.Background(), "x")
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "boom" {
		t.Fatalf("message %q", apiErr.Message)
	}
}

func TestEnvelopeMissingDataIsFailure(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer hs.Close()

	c := New(hs.URL)
	defer c.Close()
	if _, err := c.CreateSession(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for success=true with no data")
	}
}

func TestMalformedEnvelopeRejectedEarly(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer hs.Close()

	c := New(hs.URL)
	defer c.Close()
	if _, err := c.GetSession(context.Background(), "s1"); err == nil {
		t.Fatalf("expected error for malformed envelope")
	}
}

func TestUnauthorizedClearsCredentialGlobally(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"token expired"}`))
	}))
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	_ = tokens.Set("tok-stale")
	var hookFired bool
	c := New(hs.URL, WithTokenStore(tokens), WithAuthRejectedHook(func() { hookFired = true }))
	defer c.Close()

	// Any operation triggers the global side effect.
	_, err := c.ListModels(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if _, ok := tokens.Get(); ok {
		t.Fatalf("credential not cleared after 401")
	}
	if !hookFired {
		t.Fatalf("auth-rejected hook did not fire")
	}
}

func TestNetworkErrorPropagatesUnchanged(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	hs.Close() // server gone: transport-level failure

	c := New(hs.URL)
	defer c.Close()
	_, err := c.CreateSession(context.Background(), "x")
	if err == nil {
		t.Fatalf("expected network error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("network failure must not be an APIError: %v", err)
	}
}
