package models

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Envelope is the top-level DocuSign transaction grouping documents,
// recipients and routing rules. An envelope is built either from
// documents (Documents + Signers) or from a template (TemplateID +
// Roles); TemplateID being set selects template mode and the two shapes
// never serialize together.
//
// Concurrent mutation of the same Envelope is not supported; callers
// must serialize access themselves.
type Envelope struct {
	EmailBlurb   string
	EmailSubject string

	// Status is the creation target: EnvelopeStatusDraft parks the
	// envelope, EnvelopeStatusSent (the default) triggers delivery.
	Status EnvelopeStatus

	EnableWetSign bool

	Notification *EventNotification

	// Document mode.
	Documents []*Document
	Signers   []*Signer

	// Template mode.
	TemplateID string
	Roles      []*Role

	// EnvelopeID is assigned by the server at creation.
	EnvelopeID string
}

// FromTemplate reports whether the envelope serializes in template mode.
func (e *Envelope) FromTemplate() bool { return e.TemplateID != "" }

// Payload returns the wire representation of the envelope. Template-mode
// and document-mode fields never both appear.
func (e *Envelope) Payload() map[string]any {
	status := e.Status
	if status == "" {
		status = EnvelopeStatusSent
	}
	data := map[string]any{
		"status":       string(status),
		"emailBlurb":   e.EmailBlurb,
		"emailSubject": e.EmailSubject,
	}
	if e.Notification != nil {
		data["eventNotification"] = e.Notification.Payload()
	}
	if e.FromTemplate() {
		roles := make([]map[string]any, 0, len(e.Roles))
		for _, role := range e.Roles {
			roles = append(roles, role.Payload())
		}
		data["templateId"] = e.TemplateID
		data["templateRoles"] = roles
		return data
	}
	documents := make([]map[string]any, 0, len(e.Documents))
	for _, document := range e.Documents {
		documents = append(documents, document.Payload())
	}
	signers := make([]map[string]any, 0, len(e.Signers))
	for _, signer := range e.Signers {
		signers = append(signers, signer.Payload())
	}
	data["documents"] = documents
	data["recipients"] = map[string]any{"signers": signers}
	return data
}

// Validate aggregates everything wrong with the envelope's shape before
// it is sent: an empty mode, documents that fail their own validation,
// tabs referencing document ids the envelope does not carry, and an
// invalid notification target.
func (e *Envelope) Validate() error {
	var result *multierror.Error

	if e.FromTemplate() {
		if len(e.Roles) == 0 {
			result = multierror.Append(result,
				fmt.Errorf("template envelope has no template roles"))
		}
	} else {
		if len(e.Documents) == 0 {
			result = multierror.Append(result,
				fmt.Errorf("envelope has no documents and no template id"))
		}
		known := make(map[int]bool, len(e.Documents))
		for _, document := range e.Documents {
			if err := document.Validate(); err != nil {
				result = multierror.Append(result,
					fmt.Errorf("document %d: %w", document.ID, err))
			}
			if known[document.ID] {
				result = multierror.Append(result,
					fmt.Errorf("duplicate document id %d", document.ID))
			}
			known[document.ID] = true
		}
		for _, signer := range e.Signers {
			for _, tab := range signer.Tabs {
				if !known[tab.DocumentID] {
					result = multierror.Append(result, fmt.Errorf(
						"signer %q has a %s tab for unknown document id %d",
						signer.Email, tab.Kind, tab.DocumentID))
				}
			}
		}
	}

	if e.Notification != nil {
		if err := e.Notification.Validate(); err != nil {
			result = multierror.Append(result,
				fmt.Errorf("event notification: %w", err))
		}
	}

	return result.ErrorOrNil()
}
