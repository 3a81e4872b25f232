package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// EnvelopeDocument is one entry in an envelope's document listing.
type EnvelopeDocument struct {
	DocumentID string `mapstructure:"documentId"`
	Name       string `mapstructure:"name"`
	Type       string `mapstructure:"type"`
	URI        string `mapstructure:"uri"`
}

// GetEnvelopeDocumentList fetches the envelope's document listing.
func (c *Client) GetEnvelopeDocumentList(ctx context.Context, envelopeID string) ([]EnvelopeDocument, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	data, err := c.Get(ctx, c.envelopePath(envelopeID)+"/documents")
	if err != nil {
		return nil, err
	}
	var payload struct {
		EnvelopeDocuments []EnvelopeDocument `mapstructure:"envelopeDocuments"`
	}
	if err := mapstructure.Decode(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding document list: %w", err)
	}
	return payload.EnvelopeDocuments, nil
}

// GetEnvelopeDocument downloads one document from an envelope.
func (c *Client) GetEnvelopeDocument(ctx context.Context, envelopeID, documentID string) ([]byte, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/documents/%s", c.envelopePath(envelopeID), documentID)
	return c.do(ctx, http.MethodGet, path, nil, nil, http.StatusOK)
}

// GetEnvelopeCertificate downloads the envelope's signing certificate,
// which DocuSign exposes as a special document.
func (c *Client) GetEnvelopeCertificate(ctx context.Context, envelopeID string) ([]byte, error) {
	return c.GetEnvelopeDocument(ctx, envelopeID, "certificate")
}

// GetPageImage downloads a rendering of one document page. Zero-valued
// maxWidth and maxHeight are omitted from the request.
func (c *Client) GetPageImage(ctx context.Context, envelopeID string, documentID, pageNumber, dpi, maxWidth, maxHeight int) ([]byte, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("dpi", strconv.Itoa(dpi))
	if maxWidth > 0 {
		query.Set("max_width", strconv.Itoa(maxWidth))
	}
	if maxHeight > 0 {
		query.Set("max_height", strconv.Itoa(maxHeight))
	}
	path := fmt.Sprintf("%s/documents/%d/pages/%d/page_image?%s",
		c.envelopePath(envelopeID), documentID, pageNumber, query.Encode())
	return c.do(ctx, http.MethodGet, path, nil, nil, http.StatusOK)
}
