package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/peopledoc/go-docusign/pkg/models"
)

// multipartBoundary is the fixed boundary token used by the legacy
// multipart encoding. It must stay consistent between the Content-Type
// header and the body.
const multipartBoundary = "myboundary"

// documentEnvelopePayload returns the document-mode envelope payload with
// each document's bytes embedded as base64. This is the canonical shape;
// each document stream is rewound before reading so a retry re-encodes
// the same content.
func documentEnvelopePayload(envelope *models.Envelope) (map[string]any, error) {
	data := envelope.Payload()
	documents := make([]map[string]any, 0, len(envelope.Documents))
	for _, document := range envelope.Documents {
		content, err := document.Bytes()
		if err != nil {
			return nil, err
		}
		payload := document.Payload()
		payload["documentBase64"] = base64.StdEncoding.EncodeToString(content)
		// DocuSign wants an extension; PDF is assumed.
		payload["fileExtension"] = "pdf"
		documents = append(documents, payload)
	}
	data["documents"] = documents
	return data, nil
}

// multipartEnvelopeBody builds the legacy multipart request body: a JSON
// part carrying the envelope payload, then one binary part per document
// whose headers name the document id. The returned content type carries
// the same boundary the body uses.
func multipartEnvelopeBody(envelope *models.Envelope) (body []byte, contentType string, err error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.SetBoundary(multipartBoundary); err != nil {
		return nil, "", fmt.Errorf("setting multipart boundary: %w", err)
	}

	jsonHeader := textproto.MIMEHeader{}
	jsonHeader.Set("Content-Type", "application/json; charset=UTF-8")
	jsonHeader.Set("Content-Disposition", "form-data")
	jsonPart, err := writer.CreatePart(jsonHeader)
	if err != nil {
		return nil, "", fmt.Errorf("creating envelope JSON part: %w", err)
	}
	if err := json.NewEncoder(jsonPart).Encode(envelope.Payload()); err != nil {
		return nil, "", fmt.Errorf("encoding envelope payload: %w", err)
	}

	for _, document := range envelope.Documents {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", "application/pdf")
		header.Set("Content-Disposition",
			fmt.Sprintf("file; filename=%q; documentid=%d", document.Name, document.ID))
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating part for document %d: %w", document.ID, err)
		}
		content, err := document.Bytes()
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(content); err != nil {
			return nil, "", fmt.Errorf("writing document %d: %w", document.ID, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
