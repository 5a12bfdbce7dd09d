// Package client is the Go SDK for the Obzr chat backend. It is the only
// interface consumers use to reach the network: typed operations for
// sessions, messages, chat, memory (v1 and v2), models and security, built
// on a shared transport that attaches the bearer credential, unwraps the
// server envelope and deduplicates identical in-flight reads.
package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Pawank06/obzr-go/internal/requestcache"
	"github.com/Pawank06/obzr-go/internal/tokenstore"
)

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func debugEnabled() bool {
	return os.Getenv("OBZR_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if debugEnabled() {
		reqDump, err := httputil.DumpRequestOut(req, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if debugEnabled() {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugEnabled() {
		respDump, err := httputil.DumpResponse(resp, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
	cache   *requestcache.Cache

	// onAuthRejected fires once per 401 response, after the credential has
	// been cleared. Hosts typically prompt for a fresh sign-in here.
	onAuthRejected func()

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client with optional functional arguments.
// Without WithTokenStore the client keeps its credential in memory only.
func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugEnabled() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.tokens == nil {
		c.tokens = tokenstore.NewMemStore()
	}
	if c.cache == nil {
		c.cache = requestcache.New()
	}

	return c
}

// Tokens exposes the credential store, mainly for building an AuthState
// over the same credential the client uses.
func (c *Client) Tokens() tokenstore.Store { return c.tokens }

// Close releases the dedup cache's pending timers. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.cache.Clear()
	return nil
}
