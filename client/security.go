package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Security & audit operations.

// AuditLogs returns one page of audit entries matching opts.
func (c *Client) AuditLogs(ctx context.Context, opts AuditLogOptions) (*AuditLogPage, error) {
	params := url.Values{}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Action != "" {
		params.Set("action", opts.Action)
	}
	if opts.Resource != "" {
		params.Set("resource", opts.Resource)
	}
	if opts.StartDate != "" {
		params.Set("startDate", opts.StartDate)
	}
	if opts.EndDate != "" {
		params.Set("endDate", opts.EndDate)
	}

	resp, err := c.send(ctx, "audit logs", http.MethodGet, "/api/security/audit-logs", params, nil)
	if err != nil {
		return nil, err
	}
	logs, pag, err := unwrapPage[AuditLogEntry](resp, "audit logs")
	if err != nil {
		return nil, err
	}
	page := &AuditLogPage{Logs: logs}
	if pag != nil {
		page.Pagination = *pag
	}
	return page, nil
}

// Encrypt asks the server to encrypt data with its managed key.
func (c *Client) Encrypt(ctx context.Context, data string) (*EncryptResult, error) {
	if data == "" {
		return nil, fmt.Errorf("data is required")
	}
	body := struct {
		Data string `json:"data"`
	}{Data: data}
	resp, err := c.send(ctx, "encrypt", http.MethodPost, "/api/security/encrypt", nil, body)
	if err != nil {
		return nil, err
	}
	res, err := unwrap[EncryptResult](resp, "encrypt")
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Decrypt reverses Encrypt.
func (c *Client) Decrypt(ctx context.Context, encrypted string) (string, error) {
	if encrypted == "" {
		return "", fmt.Errorf("encrypted payload is required")
	}
	body := struct {
		Encrypted string `json:"encrypted"`
	}{Encrypted: encrypted}
	resp, err := c.send(ctx, "decrypt", http.MethodPost, "/api/security/decrypt", nil, body)
	if err != nil {
		return "", err
	}
	payload, err := unwrap[struct {
		Decrypted string `json:"decrypted"`
	}](resp, "decrypt")
	if err != nil {
		return "", err
	}
	return payload.Decrypted, nil
}
