// Package tokenstore owns the bearer credential used by the API client.
//
// Exactly one credential exists per store instance. It is set on successful
// login or registration and cleared on logout or when the backend rejects it.
// Stores are constructed explicitly and injected into the client so tests can
// run with isolated instances.
package tokenstore

import "sync"

// Store holds the current bearer credential.
// Get must be side-effect-free and safe to call before any network activity.
type Store interface {
	// Set replaces the current credential.
	Set(token string) error
	// Clear removes the credential. Clearing an absent credential is a no-op.
	Clear() error
	// Get returns the current credential and whether one is present.
	Get() (string, bool)
}

// MemStore keeps the credential in memory only. It is the default for
// contexts without durable storage (tests, short-lived processes).
type MemStore struct {
	mu    sync.Mutex
	token string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}
