package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledoc/go-docusign/pkg/models"
)

func TestGetEnvelopeRecipients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999/recipients", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"recipientCount": "1"})
	}))

	data, err := c.GetEnvelopeRecipients(context.Background(), "9999")
	require.NoError(t, err)
	assert.Equal(t, "1", data["recipientCount"])
}

func TestSyncEnvelopeRecipients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"recipientCount": "2",
			"signers": []any{
				map[string]any{
					"clientUserId": "signer-1",
					"email":        "signer@example.com",
					"name":         "My Name",
					"recipientId":  "1",
					"userId":       "user-1",
					"routingOrder": "1",
				},
				map[string]any{
					"clientUserId": "signer-2",
					"email":        "other@example.com",
					"name":         "Other Name",
					"recipientId":  "2",
					"userId":       "user-2",
					"routingOrder": "2",
				},
			},
		})
	}))

	envelope := testEnvelope()
	envelope.EnvelopeID = "9999"
	require.NoError(t, c.SyncEnvelopeRecipients(context.Background(), envelope))

	require.Len(t, envelope.Signers, 2)
	first := envelope.Signers[0]
	assert.Equal(t, "signer-1", first.ClientUserID)
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, "1", first.RecipientID)
	// The matched local signer keeps its tabs.
	assert.Len(t, first.Tabs, 1)
	assert.Empty(t, envelope.Signers[1].Tabs)
}

func TestSyncEnvelopeRecipientsNeedsEnvelopeID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	err := c.SyncEnvelopeRecipients(context.Background(), testEnvelope())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no envelope id")
}

func TestAddEnvelopeRecipients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999/recipients", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("resend_envelope"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		signers := body["signers"].([]any)
		require.Len(t, signers, 1)
		assert.Equal(t, "new@example.com", signers[0].(map[string]any)["email"])

		writeJSON(t, w, http.StatusCreated, map[string]any{"recipientCount": "2"})
	}))

	_, err := c.AddEnvelopeRecipients(context.Background(), "9999", []*models.Signer{
		{Email: "new@example.com", Name: "New Signer"},
	}, true)
	require.NoError(t, err)
}

func TestUpdateEnvelopeRecipients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999/recipients", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("resend_envelope"))
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}))

	_, err := c.UpdateEnvelopeRecipients(context.Background(), "9999", []*models.Signer{
		{Email: "signer@example.com", Name: "My Name", RecipientID: "1"},
	}, false)
	require.NoError(t, err)
}

func TestDeleteEnvelopeRecipient(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999/recipients/2", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}))

	_, err := c.DeleteEnvelopeRecipient(context.Background(), "9999", "2")
	require.NoError(t, err)
}

func TestDeleteEnvelopeRecipients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999/recipients", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"signers": []any{
				map[string]any{"recipientId": "2"},
				map[string]any{"recipientId": "3"},
			},
		}, body)
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}))

	_, err := c.DeleteEnvelopeRecipients(context.Background(), "9999", []string{"2", "3"})
	require.NoError(t, err)
}

func TestPostRecipientView(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999/views/recipient", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"authenticationMethod": "none",
			"clientUserId":         "signer-1",
			"email":                "signer@example.com",
			"envelopeId":           "9999",
			"returnUrl":            "https://example.com/done",
			"userId":               "user-1",
			"userName":             "My Name",
		}, body)

		writeJSON(t, w, http.StatusCreated, map[string]any{
			"url": "https://demo.docusign.net/signing/startinsession.aspx?t=xyz",
		})
	}))

	signer := &models.Signer{
		ClientUserID: "signer-1",
		Email:        "signer@example.com",
		Name:         "My Name",
		UserID:       "user-1",
	}
	viewURL, err := c.PostRecipientView(context.Background(), "9999", signer, "https://example.com/done")
	require.NoError(t, err)
	assert.Equal(t, "https://demo.docusign.net/signing/startinsession.aspx?t=xyz", viewURL)
}

func TestPostRecipientViewNoURL(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{})
	}))

	_, err := c.PostRecipientView(context.Background(), "9999", &models.Signer{}, "https://example.com/done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no url")
}
