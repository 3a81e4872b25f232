package models

import (
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document is a file to sign. ID is caller-assigned and must be unique
// within an envelope. Data holds the document bytes; the caller owns the
// stream's open/close lifecycle.
type Document struct {
	ID   int
	Name string
	Data io.ReadSeeker
}

// Payload returns the wire representation of the document's metadata.
// Byte content is attached separately by the request builder.
func (d *Document) Payload() map[string]any {
	return map[string]any{
		"documentId": d.ID,
		"name":       d.Name,
	}
}

// Bytes rewinds the document stream to the start and reads it to the end.
// The rewind happens on every call so the same stream can be encoded
// again on a retry.
func (d *Document) Bytes() ([]byte, error) {
	if d.Data == nil {
		return nil, fmt.Errorf("document %d (%s) has no content", d.ID, d.Name)
	}
	if _, err := d.Data.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding document %d (%s): %w", d.ID, d.Name, err)
	}
	content, err := io.ReadAll(d.Data)
	if err != nil {
		return nil, fmt.Errorf("reading document %d (%s): %w", d.ID, d.Name, err)
	}
	return content, nil
}

// Validate checks the document is complete enough to send.
func (d *Document) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.ID, validation.Min(1)),
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Data, validation.Required),
	)
}
