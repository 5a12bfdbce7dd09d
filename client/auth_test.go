package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/users/login", "/api/users/register":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] == "wrong" {
				_, _ = w.Write([]byte(`{"success":false,"error":"invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","email":"` + body["email"] + `","name":"Ada"},"token":"tok-fresh"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginStoresCredential(t *testing.T) {
	hs := authServer(t)
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	c := New(hs.URL, WithTokenStore(tokens))
	defer c.Close()

	res, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.Email != "a@b.com" || res.Token != "tok-fresh" {
		t.Fatalf("unexpected result %+v", res)
	}
	tok, ok := tokens.Get()
	if !ok || tok != "tok-fresh" {
		t.Fatalf("credential not stored: %q, %v", tok, ok)
	}
}

func TestLoginFailureDoesNotStoreCredential(t *testing.T) {
	hs := authServer(t)
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	c := New(hs.URL, WithTokenStore(tokens))
	defer c.Close()

	if _, err := c.Login(context.Background(), "a@b.com", "wrong"); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := tokens.Get(); ok {
		t.Fatalf("credential stored after failed login")
	}
}

func TestLoginValidatesInput(t *testing.T) {
	c := New("http://unreachable.invalid")
	defer c.Close()
	if _, err := c.Login(context.Background(), "not-an-email", "pw"); err == nil {
		t.Fatalf("expected email validation error")
	}
	if _, err := c.Login(context.Background(), "a@b.com", ""); err == nil {
		t.Fatalf("expected password validation error")
	}
}

func TestRegisterStoresCredential(t *testing.T) {
	hs := authServer(t)
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	c := New(hs.URL, WithTokenStore(tokens))
	defer c.Close()

	if _, err := c.Register(context.Background(), "new@b.com", "pw", "Ada"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := tokens.Get(); !ok {
		t.Fatalf("credential not stored")
	}
}

func TestLogoutIsLocalOnly(t *testing.T) {
	var hits int
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer hs.Close()

	tokens := tokenstore.NewMemStore()
	_ = tokens.Set("tok-1")
	c := New(hs.URL, WithTokenStore(tokens))
	defer c.Close()

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := tokens.Get(); ok {
		t.Fatalf("credential survived logout")
	}
	if hits != 0 {
		t.Fatalf("logout made %d server calls, want 0", hits)
	}
}
