package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/peopledoc/go-docusign/pkg/models"
)

// GetEnvelopeRecipients fetches the raw recipients listing for an
// envelope.
func (c *Client) GetEnvelopeRecipients(ctx context.Context, envelopeID string) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	return c.Get(ctx, c.recipientsPath(envelopeID, false))
}

// SyncEnvelopeRecipients fetches the server's recipient list for the
// envelope and reconciles it into the envelope's local recipient list.
// The read-modify-replace is not safe against concurrent mutation of the
// same envelope; callers must serialize.
func (c *Client) SyncEnvelopeRecipients(ctx context.Context, envelope *models.Envelope) error {
	if envelope.EnvelopeID == "" {
		return fmt.Errorf("envelope has no envelope id; create it first")
	}
	data, err := c.GetEnvelopeRecipients(ctx, envelope.EnvelopeID)
	if err != nil {
		return err
	}
	records, err := models.DecodeRecipientRecords(data)
	if err != nil {
		return err
	}
	envelope.SyncRecipients(records)
	return nil
}

// AddEnvelopeRecipients adds signers to an existing envelope. With
// resendEnvelope set, DocuSign re-notifies pending recipients.
func (c *Client) AddEnvelopeRecipients(ctx context.Context, envelopeID string, signers []*models.Signer, resendEnvelope bool) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	return c.Post(ctx, c.recipientsPath(envelopeID, resendEnvelope),
		signersPayload(signers), http.StatusCreated)
}

// UpdateEnvelopeRecipients updates signers on an existing envelope.
func (c *Client) UpdateEnvelopeRecipients(ctx context.Context, envelopeID string, signers []*models.Signer, resendEnvelope bool) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	return c.Put(ctx, c.recipientsPath(envelopeID, resendEnvelope), signersPayload(signers))
}

// DeleteEnvelopeRecipient removes one recipient by its server-assigned
// recipient id.
func (c *Client) DeleteEnvelopeRecipient(ctx context.Context, envelopeID, recipientID string) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/%s", c.recipientsPath(envelopeID, false), recipientID)
	return c.Delete(ctx, path, nil)
}

// DeleteEnvelopeRecipients removes several recipients in one call.
func (c *Client) DeleteEnvelopeRecipients(ctx context.Context, envelopeID string, recipientIDs []string) (map[string]any, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	signers := make([]map[string]any, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		signers = append(signers, map[string]any{"recipientId": recipientID})
	}
	return c.Delete(ctx, c.recipientsPath(envelopeID, false), map[string]any{"signers": signers})
}

// PostRecipientView requests an embedded signing URL for a recipient.
// The recipient is identified by the correlation key it was created
// with, plus the server-assigned user id once the recipient has been
// accepted by the service.
func (c *Client) PostRecipientView(ctx context.Context, envelopeID string, signer *models.Signer, returnURL string) (string, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return "", err
	}
	path := fmt.Sprintf("/accounts/%s/envelopes/%s/views/recipient", c.cfg.AccountID, envelopeID)
	data, err := c.Post(ctx, path, map[string]any{
		"authenticationMethod": "none",
		"clientUserId":         signer.ClientUserID,
		"email":                signer.Email,
		"envelopeId":           envelopeID,
		"returnUrl":            returnURL,
		"userId":               signer.UserID,
		"userName":             signer.Name,
	}, http.StatusCreated)
	if err != nil {
		return "", err
	}
	viewURL, _ := data["url"].(string)
	if viewURL == "" {
		return "", fmt.Errorf("recipient view response carries no url")
	}
	return viewURL, nil
}

func signersPayload(signers []*models.Signer) map[string]any {
	payloads := make([]map[string]any, 0, len(signers))
	for _, signer := range signers {
		payloads = append(payloads, signer.Payload())
	}
	return map[string]any{"signers": payloads}
}

func (c *Client) recipientsPath(envelopeID string, resendEnvelope bool) string {
	path := fmt.Sprintf("/accounts/%s/envelopes/%s/recipients", c.cfg.AccountID, envelopeID)
	if resendEnvelope {
		path += "?resend_envelope=true"
	}
	return path
}
