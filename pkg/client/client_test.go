package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a test server with the account already
// resolved, so calls go straight to the endpoint under test.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{
		RootURL:       server.URL,
		Username:      "user@example.com",
		Password:      "s3cret",
		IntegratorKey: "key-1234",
		AccountID:     "acct",
		Timeout:       5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(data))
}

func TestNewDerivesAccountURL(t *testing.T) {
	c, err := New(Config{
		RootURL:       "https://demo.docusign.net/restapi/v2",
		Username:      "user@example.com",
		Password:      "s3cret",
		IntegratorKey: "key-1234",
		AccountID:     "acct",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://demo.docusign.net/restapi/v2/accounts/acct", c.AccountURL())
}

func TestBaseHeaders(t *testing.T) {
	var captured http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}))

	_, err := c.Get(context.Background(), "/login_information")
	require.NoError(t, err)

	assert.Equal(t, "application/json", captured.Get("Accept"))
	assert.Equal(t, "application/json", captured.Get("Content-Type"))

	var auth map[string]string
	require.NoError(t, json.Unmarshal([]byte(captured.Get("X-DocuSign-Authentication")), &auth))
	assert.Equal(t, map[string]string{
		"Username":      "user@example.com",
		"Password":      "s3cret",
		"IntegratorKey": "key-1234",
	}, auth)
}

func TestUnexpectedStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"errorCode": "ENVELOPE_DOES_NOT_EXIST",
		})
	}))

	_, err := c.Get(context.Background(), "/accounts/acct/envelopes/nope")
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.MethodGet, reqErr.Method)
	assert.Equal(t, http.StatusOK, reqErr.Expected)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, reqErr.Body, "ENVELOPE_DOES_NOT_EXIST")
	assert.Contains(t, reqErr.Error(), "404")
}

// Network-level failures are retried; an unexpected status is not.
func TestNetworkRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	t.Cleanup(server.Close)

	c, err := New(Config{
		RootURL:       server.URL,
		Username:      "user@example.com",
		Password:      "s3cret",
		IntegratorKey: "key-1234",
		AccountID:     "acct",
		MaxRetries:    2,
	})
	require.NoError(t, err)

	data, err := c.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, true, data["ok"])
	assert.Equal(t, 2, attempts)
}

func TestStatusMismatchIsNotRetried(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{})
	}))
	c.cfg.MaxRetries = 3

	_, err := c.Get(context.Background(), "/ping")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestLoginInformation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login_information", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"loginAccounts": []any{
				map[string]any{
					"accountId": "111111",
					"email":     "user@example.com",
					"isDefault": "true",
				},
			},
		})
	}))
	// Start unresolved so LoginInformation has something to populate.
	c.cfg.AccountID = ""
	c.cfg.AccountURL = ""

	data, err := c.LoginInformation(context.Background())
	require.NoError(t, err)
	assert.Contains(t, data, "loginAccounts")
	assert.Equal(t, "111111", c.AccountID())
	assert.Equal(t, c.cfg.RootURL+"/accounts/111111", c.AccountURL())
}

func TestLoginInformationNoAccounts(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"loginAccounts": []any{}})
	}))

	_, err := c.LoginInformation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts")
}
