package client

import (
	"encoding/json"
	"net/http"
)

// Every API route replies with the same wrapper: {success, data?, error?,
// message?}. Paginated routes add a pagination block. The helpers below
// decode the wrapper into a tagged result — payload on success, APIError
// otherwise — so undefined fields never leak past the transport boundary.

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Pagination is the server's page descriptor on list endpoints.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type pageEnvelope[T any] struct {
	Success    bool        `json:"success"`
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination"`
	Error      string      `json:"error"`
	Message    string      `json:"message"`
}

func failureMessage(errStr, msg string) string {
	if errStr != "" {
		return errStr
	}
	if msg != "" {
		return msg
	}
	return "request failed"
}

// unwrap decodes an envelope and returns its data payload.
// The response body is always closed.
func unwrap[T any](resp *http.Response, op string) (T, error) {
	var zero T
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return zero, &APIError{Op: op, Status: resp.StatusCode, Message: "authentication rejected"}
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, &APIError{Op: op, Status: resp.StatusCode, Message: "malformed response envelope: " + err.Error()}
	}
	if !env.Success || env.Data == nil {
		return zero, &APIError{Op: op, Status: resp.StatusCode, Message: failureMessage(env.Error, env.Message)}
	}
	return *env.Data, nil
}

// unwrapList decodes an envelope whose payload is a list. Unlike unwrap, a
// null data field on success is a valid empty result, not a failure: absence
// of list items is an empty sequence. The returned slice is never nil.
func unwrapList[T any](resp *http.Response, op string) ([]T, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: "authentication rejected"}
	}

	var env pageEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: "malformed response envelope: " + err.Error()}
	}
	if !env.Success {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: failureMessage(env.Error, env.Message)}
	}
	items := env.Data
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// unwrapOK decodes an envelope whose success carries no payload (deletes).
func unwrapOK(resp *http.Response, op string) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return &APIError{Op: op, Status: resp.StatusCode, Message: "authentication rejected"}
	}

	var env envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Message: "malformed response envelope: " + err.Error()}
	}
	if !env.Success {
		return &APIError{Op: op, Status: resp.StatusCode, Message: failureMessage(env.Error, env.Message)}
	}
	return nil
}

// unwrapPage decodes a paginated envelope. The returned slice is never nil.
func unwrapPage[T any](resp *http.Response, op string) ([]T, *Pagination, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil, &APIError{Op: op, Status: resp.StatusCode, Message: "authentication rejected"}
	}

	var env pageEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, nil, &APIError{Op: op, Status: resp.StatusCode, Message: "malformed response envelope: " + err.Error()}
	}
	if !env.Success {
		return nil, nil, &APIError{Op: op, Status: resp.StatusCode, Message: failureMessage(env.Error, env.Message)}
	}
	items := env.Data
	if items == nil {
		items = []T{}
	}
	return items, env.Pagination, nil
}
