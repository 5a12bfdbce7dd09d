package client

import (
	"sync"

	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

// AuthState is the process-wide "is a credential present" view consumers
// poll or subscribe to. On construction it optimistically treats a restored
// credential as a signed-in user with a placeholder identity; the first
// rejected call (which clears the store) corrects it.
type AuthState struct {
	mu     sync.Mutex
	tokens tokenstore.Store
	user   *User
	subs   []func(authenticated bool)
}

// NewAuthState binds an AuthState to the given credential store.
func NewAuthState(tokens tokenstore.Store) *AuthState {
	a := &AuthState{tokens: tokens}
	if _, ok := tokens.Get(); ok {
		a.user = &User{ID: "restored", Name: "User"}
	}
	return a
}

// IsAuthenticated reports whether a credential is present and an identity
// (possibly the optimistic placeholder) is cached.
func (a *AuthState) IsAuthenticated() bool {
	_, ok := a.tokens.Get()
	if !ok {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

// CurrentUser returns a copy of the cached identity, if any.
func (a *AuthState) CurrentUser() (User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return User{}, false
	}
	return *a.user, true
}

// SetUser caches the identity returned by login or register.
func (a *AuthState) SetUser(u User) {
	a.mu.Lock()
	a.user = &u
	subs := append([]func(bool){}, a.subs...)
	a.mu.Unlock()
	for _, fn := range subs {
		fn(true)
	}
}

// ClearUser drops the cached identity, e.g. on logout or auth rejection.
func (a *AuthState) ClearUser() {
	a.mu.Lock()
	a.user = nil
	subs := append([]func(bool){}, a.subs...)
	a.mu.Unlock()
	for _, fn := range subs {
		fn(false)
	}
}

// OnChange registers fn to run whenever the cached identity is set or
// cleared. fn receives the new authenticated state.
func (a *AuthState) OnChange(fn func(authenticated bool)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subs = append(a.subs, fn)
}
