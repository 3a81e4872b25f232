package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledoc/go-docusign/pkg/models"
)

var pdfContent = []byte("%PDF-1.4 test document")

func testEnvelope() *models.Envelope {
	return &models.Envelope{
		EmailSubject: "Please sign",
		Documents: []*models.Document{
			{ID: 1, Name: "document.pdf", Data: bytes.NewReader(pdfContent)},
		},
		Signers: []*models.Signer{
			{
				ClientUserID: "signer-1",
				Email:        "signer@example.com",
				Name:         "My Name",
				Tabs:         []models.Tab{models.NewSignHereTab(1, 1, 100, 100)},
			},
		},
	}
}

func TestCreateEnvelopeFromDocuments(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sent", body["status"])
		assert.Equal(t, "Please sign", body["emailSubject"])

		documents := body["documents"].([]any)
		require.Len(t, documents, 1)
		document := documents[0].(map[string]any)
		assert.Equal(t, "document.pdf", document["name"])
		assert.Equal(t, "pdf", document["fileExtension"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(pdfContent), document["documentBase64"])

		writeJSON(t, w, http.StatusCreated, map[string]any{
			"envelopeId": "9999-8888",
			"status":     "sent",
		})
	}))

	envelope := testEnvelope()
	envelopeID, err := c.CreateEnvelopeFromDocuments(context.Background(), envelope)
	require.NoError(t, err)
	assert.Equal(t, "9999-8888", envelopeID)
	assert.Equal(t, "9999-8888", envelope.EnvelopeID)
}

func TestCreateEnvelopeFromDocumentsMultipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)
		assert.Equal(t, "myboundary", params["boundary"])

		reader := multipart.NewReader(r.Body, params["boundary"])

		jsonPart, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "application/json; charset=UTF-8", jsonPart.Header.Get("Content-Type"))
		assert.Equal(t, "form-data", jsonPart.Header.Get("Content-Disposition"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(jsonPart).Decode(&payload))
		assert.Equal(t, "Sent", payload["status"])
		// The JSON part carries document metadata only, no bytes.
		document := payload["documents"].([]any)[0].(map[string]any)
		assert.NotContains(t, document, "documentBase64")

		filePart, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", filePart.Header.Get("Content-Type"))
		disposition := filePart.Header.Get("Content-Disposition")
		assert.Contains(t, disposition, `filename="document.pdf"`)
		assert.Contains(t, disposition, "documentid=1")
		content, err := io.ReadAll(filePart)
		require.NoError(t, err)
		assert.Equal(t, pdfContent, content)

		_, err = reader.NextPart()
		assert.Equal(t, io.EOF, err)

		writeJSON(t, w, http.StatusCreated, map[string]any{"envelopeId": "7777"})
	}))
	c.cfg.LegacyMultipart = true

	envelope := testEnvelope()
	envelopeID, err := c.CreateEnvelopeFromDocuments(context.Background(), envelope)
	require.NoError(t, err)
	assert.Equal(t, "7777", envelopeID)
}

func TestCreateEnvelopeFromTemplate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1111-2222", body["templateId"])
		roles := body["templateRoles"].([]any)
		require.Len(t, roles, 1)
		assert.Equal(t, "tenant", roles[0].(map[string]any)["roleName"])
		assert.NotContains(t, body, "documents")

		writeJSON(t, w, http.StatusCreated, map[string]any{"envelopeId": "5555"})
	}))

	envelope := &models.Envelope{
		EmailSubject: "Please sign the lease",
		TemplateID:   "1111-2222",
		Roles: []*models.Role{
			{Email: "tenant@example.com", Name: "Mr Tenant", RoleName: "tenant"},
		},
	}
	envelopeID, err := c.CreateEnvelopeFromTemplate(context.Background(), envelope)
	require.NoError(t, err)
	assert.Equal(t, "5555", envelopeID)
	assert.Equal(t, "5555", envelope.EnvelopeID)
}

func TestCreateEnvelopeModeGuards(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := c.CreateEnvelopeFromDocuments(context.Background(),
		&models.Envelope{TemplateID: "1111-2222"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CreateEnvelopeFromTemplate")

	_, err = c.CreateEnvelopeFromTemplate(context.Background(), testEnvelope())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CreateEnvelopeFromDocuments")
}

func TestCreateEnvelopeValidates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := c.CreateEnvelopeFromDocuments(context.Background(), &models.Envelope{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid envelope")
}

func TestGetEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"envelopeId": "9999",
			"status":     "sent",
		})
	}))

	data, err := c.GetEnvelope(context.Background(), "9999")
	require.NoError(t, err)
	assert.Equal(t, "sent", data["status"])
}

func TestVoidEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/accounts/acct/envelopes/9999", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"status":       "voided",
			"voidedReason": "signed on paper",
		}, body)
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}))

	require.NoError(t, c.VoidEnvelope(context.Background(), "9999", "signed on paper"))
}

func TestGetTemplate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acct/templates/1111-2222", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"name": "lease"})
	}))

	data, err := c.GetTemplate(context.Background(), "1111-2222")
	require.NoError(t, err)
	assert.Equal(t, "lease", data["name"])
}

// A retried creation re-reads the document stream from the start.
func TestDocumentPayloadIsRepeatable(t *testing.T) {
	envelope := testEnvelope()

	first, err := documentEnvelopePayload(envelope)
	require.NoError(t, err)
	second, err := documentEnvelopePayload(envelope)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
