package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/peopledoc/go-docusign/pkg/models"
)

// CreateEnvelopeFromDocuments POSTs a document-mode envelope and returns
// the server-assigned envelope id, writing it back onto the envelope.
// The encoding is the canonical base64 JSON body unless the client was
// configured for the legacy multipart path.
func (c *Client) CreateEnvelopeFromDocuments(ctx context.Context, envelope *models.Envelope) (string, error) {
	if envelope.FromTemplate() {
		return "", fmt.Errorf("envelope has a template id; use CreateEnvelopeFromTemplate")
	}
	if err := envelope.Validate(); err != nil {
		return "", fmt.Errorf("invalid envelope: %w", err)
	}
	if err := c.ensureAccount(ctx); err != nil {
		return "", err
	}
	url := c.cfg.AccountURL + "/envelopes"

	var data map[string]any
	if c.cfg.LegacyMultipart {
		body, contentType, err := multipartEnvelopeBody(envelope)
		if err != nil {
			return "", err
		}
		headers := http.Header{}
		headers.Set("Content-Type", contentType)
		raw, err := c.do(ctx, http.MethodPost, url, headers, body, http.StatusCreated)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("decoding envelope creation response: %w", err)
		}
	} else {
		payload, err := documentEnvelopePayload(envelope)
		if err != nil {
			return "", err
		}
		data, err = c.Post(ctx, url, payload, http.StatusCreated)
		if err != nil {
			return "", err
		}
	}

	return envelopeIDFromResponse(envelope, data)
}

// CreateEnvelopeFromTemplate POSTs a template-mode envelope and returns
// the server-assigned envelope id, writing it back onto the envelope.
// No document bytes are attached; the template provides them.
func (c *Client) CreateEnvelopeFromTemplate(ctx context.Context, envelope *models.Envelope) (string, error) {
	if !envelope.FromTemplate() {
		return "", fmt.Errorf("envelope has no template id; use CreateEnvelopeFromDocuments")
	}
	if err := envelope.Validate(); err != nil {
		return "", fmt.Errorf("invalid envelope: %w", err)
	}
	if err := c.ensureAccount(ctx); err != nil {
		return "", err
	}
	data, err := c.Post(ctx, c.cfg.AccountURL+"/envelopes", envelope.Payload(), http.StatusCreated)
	if err != nil {
		return "", err
	}
	return envelopeIDFromResponse(envelope, data)
}

func envelopeIDFromResponse(envelope *models.Envelope, data map[string]any) (string, error) {
	envelopeID, _ := data["envelopeId"].(string)
	if envelopeID == "" {
		return "", fmt.Errorf("envelope creation response carries no envelopeId")
	}
	if envelope.EnvelopeID == "" {
		envelope.EnvelopeID = envelopeID
	}
	return envelopeID, nil
}

// GetEnvelope fetches an envelope's current state.
func (c *Client) GetEnvelope(ctx context.Context, envelopeID string) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	return c.Get(ctx, c.envelopePath(envelopeID))
}

// VoidEnvelope voids an in-process envelope with the given reason.
func (c *Client) VoidEnvelope(ctx context.Context, envelopeID, reason string) error {
	if err := c.ensureAccount(ctx); err != nil {
		return err
	}
	_, err := c.Put(ctx, c.envelopePath(envelopeID), map[string]any{
		"status":       "voided",
		"voidedReason": reason,
	})
	return err
}

// GetTemplate fetches a template definition.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	return c.Get(ctx, fmt.Sprintf("/accounts/%s/templates/%s", c.cfg.AccountID, templateID))
}

func (c *Client) envelopePath(envelopeID string) string {
	return fmt.Sprintf("/accounts/%s/envelopes/%s", c.cfg.AccountID, envelopeID)
}
