package client

import (
	"testing"

	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

func TestAuthStateOptimisticRestore(t *testing.T) {
	tokens := tokenstore.NewMemStore()
	_ = tokens.Set("tok-restored")

	a := NewAuthState(tokens)
	if !a.IsAuthenticated() {
		t.Fatalf("expected optimistic authenticated state")
	}
	u, ok := a.CurrentUser()
	if !ok || u.ID != "restored" {
		t.Fatalf("expected placeholder identity, got %+v, %v", u, ok)
	}
}

func TestAuthStateFollowsCredential(t *testing.T) {
	tokens := tokenstore.NewMemStore()
	a := NewAuthState(tokens)
	if a.IsAuthenticated() {
		t.Fatalf("authenticated without credential")
	}

	_ = tokens.Set("tok-1")
	a.SetUser(User{ID: "u1", Email: "a@b.com"})
	if !a.IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}

	// Credential cleared by a 401 elsewhere: state must read as signed out
	// even though an identity is still cached.
	_ = tokens.Clear()
	if a.IsAuthenticated() {
		t.Fatalf("authenticated with cleared credential")
	}
}

func TestAuthStateNotifiesSubscribers(t *testing.T) {
	tokens := tokenstore.NewMemStore()
	a := NewAuthState(tokens)

	var events []bool
	a.OnChange(func(authed bool) { events = append(events, authed) })

	_ = tokens.Set("tok-1")
	a.SetUser(User{ID: "u1"})
	a.ClearUser()

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Fatalf("events %v", events)
	}
}
