// Package client is the transport adapter for the DocuSign eSignature
// REST API: it performs authenticated GET/POST/PUT/DELETE calls against
// a base URL, checks the response status against the one the caller
// expects, and turns everything that goes wrong into a RequestError. It
// also owns the request builders that turn an Envelope into the wire
// payloads DocuSign accepts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

// Client talks to the DocuSign eSignature REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     hclog.Logger
}

// New creates a DocuSign API client.
func New(cfg Config) (*Client, error) {
	if cfg.RootURL == "" {
		cfg.RootURL = DefaultRootURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.AccountURL == "" && cfg.AccountID != "" {
		cfg.AccountURL = fmt.Sprintf("%s/accounts/%s", cfg.RootURL, cfg.AccountID)
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: cfg.Logger.Named("docusign-client"),
	}, nil
}

// AccountID returns the account id, which may have been populated by
// LoginInformation.
func (c *Client) AccountID() string { return c.cfg.AccountID }

// AccountURL returns the account-scoped base URL.
func (c *Client) AccountURL() string { return c.cfg.AccountURL }

// baseHeaders returns the headers every DocuSign request carries. The
// legacy authentication scheme is a JSON blob in a dedicated header.
func (c *Client) baseHeaders() (http.Header, error) {
	auth, err := json.Marshal(map[string]string{
		"Username":      c.cfg.Username,
		"Password":      c.cfg.Password,
		"IntegratorKey": c.cfg.IntegratorKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding authentication header: %w", err)
	}
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	headers.Set("X-DocuSign-Authentication", string(auth))
	return headers, nil
}

// url resolves a path against the API root. Absolute URLs (such as the
// account URL) pass through unchanged.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.cfg.RootURL + path
}

// do performs one HTTP request and returns the response body. Network
// failures are retried up to MaxRetries times with exponential backoff;
// an unexpected status code is never retried and fails immediately with
// a RequestError carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, extraHeaders http.Header, body []byte, expected int) ([]byte, error) {
	url := c.url(path)
	headers, err := c.baseHeaders()
	if err != nil {
		return nil, err
	}
	for key, values := range extraHeaders {
		headers[key] = values
	}

	var respBody []byte
	var status int
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header = headers.Clone()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("request failed", "method", method, "url", url, "error", err)
			return err
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		status = resp.StatusCode
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, &RequestError{Method: method, URL: url, Expected: expected, Err: err}
	}

	c.logger.Debug("request completed",
		"method", method, "url", url, "status", status, "expected", expected)

	if status != expected {
		return nil, &RequestError{
			Method:   method,
			URL:      url,
			Expected: expected,
			Status:   status,
			Body:     string(respBody),
		}
	}
	return respBody, nil
}

// doJSON performs a request with an optional JSON body and decodes a
// JSON response into a generic mapping.
func (c *Client) doJSON(ctx context.Context, method, path string, data any, expected int) (map[string]any, error) {
	var body []byte
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = encoded
	}
	raw, err := c.do(ctx, method, path, nil, body, expected)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return result, nil
}

// Get performs a GET expecting 200 and returns the decoded JSON body.
func (c *Client) Get(ctx context.Context, path string) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodGet, path, nil, http.StatusOK)
}

// Post performs a POST with a JSON body and returns the decoded response.
func (c *Client) Post(ctx context.Context, path string, data any, expected int) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodPost, path, data, expected)
}

// Put performs a PUT with a JSON body expecting 200.
func (c *Client) Put(ctx context.Context, path string, data any) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodPut, path, data, http.StatusOK)
}

// Delete performs a DELETE with an optional JSON body expecting 200.
func (c *Client) Delete(ctx context.Context, path string, data any) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodDelete, path, data, http.StatusOK)
}

// LoginInformation fetches /login_information and populates the account
// id and account URL from the first login account.
func (c *Client) LoginInformation(ctx context.Context) (map[string]any, error) {
	data, err := c.Get(ctx, "/login_information")
	if err != nil {
		return nil, err
	}
	accounts, _ := data["loginAccounts"].([]any)
	if len(accounts) == 0 {
		return nil, fmt.Errorf("login_information returned no accounts")
	}
	account, _ := accounts[0].(map[string]any)
	accountID, _ := account["accountId"].(string)
	if accountID == "" {
		return nil, fmt.Errorf("login_information returned no account id")
	}
	c.cfg.AccountID = accountID
	c.cfg.AccountURL = fmt.Sprintf("%s/accounts/%s", c.cfg.RootURL, accountID)
	return data, nil
}

// ensureAccount resolves the account URL, logging in if needed.
func (c *Client) ensureAccount(ctx context.Context) error {
	if c.cfg.AccountURL != "" {
		return nil
	}
	_, err := c.LoginInformation(ctx)
	return err
}
