package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"

	"github.com/Pawank06/obzr-go/internal/requestcache"
	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithTokenStore injects the credential store. Use a tokenstore.FileStore to
// persist the credential across restarts.
func WithTokenStore(s tokenstore.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("nil token store")
		}
		c.tokens = s
		return nil
	}
}

// WithRequestCache injects the dedup cache, letting tests drive eviction
// with a manual clock or tune the TTL.
func WithRequestCache(rc *requestcache.Cache) Option {
	return func(c *Client) error {
		if rc == nil {
			return fmt.Errorf("nil request cache")
		}
		c.cache = rc
		return nil
	}
}

// WithAuthRejectedHook registers a callback fired after any response with
// HTTP 401 has cleared the credential. The hook is process-wide: it runs no
// matter which operation triggered the rejection.
func WithAuthRejectedHook(fn func()) Option {
	return func(c *Client) error {
		c.onAuthRejected = fn
		return nil
	}
}

// WithDebugLogging wraps the client's transport such that every request/response
// is logged when `enabled` is true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}
