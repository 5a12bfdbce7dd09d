package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Auth operations. Login and Register store the returned token in the
// client's token store; Logout clears it locally with no server round trip.

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	resp, err := c.send(ctx, "login", http.MethodPost, "/api/users/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	res, err := unwrap[AuthResult](resp, "login")
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Set(res.Token); err != nil {
		return nil, fmt.Errorf("login: storing credential: %w", err)
	}
	log.Debug().Str("user_id", res.User.ID).Msg("credential stored")
	return &res, nil
}

// Register creates an account and authenticates in one step.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	resp, err := c.send(ctx, "register", http.MethodPost, "/api/users/register", nil, registerRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, err
	}
	res, err := unwrap[AuthResult](resp, "register")
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Set(res.Token); err != nil {
		return nil, fmt.Errorf("register: storing credential: %w", err)
	}
	return &res, nil
}

// Logout clears the credential and drops pending deduplicated requests so
// in-flight results cannot leak across identities. It always succeeds
// locally; no server call is made.
func (c *Client) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.cache.Clear()
	return c.tokens.Clear()
}
