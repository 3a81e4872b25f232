package models

import "fmt"

// EnvelopeStatus is the lifecycle status of an envelope, using DocuSign's
// title-cased wire labels.
type EnvelopeStatus string

const (
	EnvelopeStatusCreated   EnvelopeStatus = "Created"
	EnvelopeStatusDraft     EnvelopeStatus = "Draft"
	EnvelopeStatusSent      EnvelopeStatus = "Sent"
	EnvelopeStatusDelivered EnvelopeStatus = "Delivered"
	EnvelopeStatusCompleted EnvelopeStatus = "Completed"
	EnvelopeStatusDeclined  EnvelopeStatus = "Declined"
	EnvelopeStatusVoided    EnvelopeStatus = "Voided"
)

// EnvelopeStatuses is the canonical enumeration of envelope statuses that
// can appear in API responses and Connect notifications, in lifecycle
// order. Draft is a creation target only and never appears in callbacks.
var EnvelopeStatuses = []EnvelopeStatus{
	EnvelopeStatusCreated,
	EnvelopeStatusSent,
	EnvelopeStatusDelivered,
	EnvelopeStatusCompleted,
	EnvelopeStatusDeclined,
	EnvelopeStatusVoided,
}

// IsValid returns true if the status is part of the canonical enumeration.
func (s EnvelopeStatus) IsValid() bool {
	for _, known := range EnvelopeStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s EnvelopeStatus) String() string { return string(s) }

// ParseEnvelopeStatus resolves a status label to its canonical form.
func ParseEnvelopeStatus(s string) (EnvelopeStatus, error) {
	for _, known := range EnvelopeStatuses {
		if equalFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown envelope status %q", s)
}

// RecipientStatus is the lifecycle status of a recipient.
type RecipientStatus string

const (
	RecipientStatusAuthenticationFailed RecipientStatus = "AuthenticationFailed"
	RecipientStatusAutoResponded        RecipientStatus = "AutoResponded"
	RecipientStatusSigned               RecipientStatus = "Signed"
	RecipientStatusCompleted            RecipientStatus = "Completed"
	RecipientStatusDeclined             RecipientStatus = "Declined"
	RecipientStatusDelivered            RecipientStatus = "Delivered"
	RecipientStatusSent                 RecipientStatus = "Sent"
)

// RecipientStatuses is the canonical enumeration of recipient statuses.
var RecipientStatuses = []RecipientStatus{
	RecipientStatusAuthenticationFailed,
	RecipientStatusAutoResponded,
	RecipientStatusSigned,
	RecipientStatusCompleted,
	RecipientStatusDeclined,
	RecipientStatusDelivered,
	RecipientStatusSent,
}

// IsValid returns true if the status is part of the canonical enumeration.
func (s RecipientStatus) IsValid() bool {
	for _, known := range RecipientStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s RecipientStatus) String() string { return string(s) }

// ParseRecipientStatus resolves a status label to its canonical form.
func ParseRecipientStatus(s string) (RecipientStatus, error) {
	for _, known := range RecipientStatuses {
		if equalFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown recipient status %q", s)
}

// EnvelopeEvent registers interest in one envelope status transition for
// event notification callbacks.
type EnvelopeEvent struct {
	Status           EnvelopeStatus
	IncludeDocuments bool
}

// Payload returns the wire representation of the event registration.
func (e EnvelopeEvent) Payload() map[string]any {
	return map[string]any{
		"envelopeEventStatusCode": string(e.Status),
		"includeDocuments":        e.IncludeDocuments,
	}
}

// RecipientEvent registers interest in one recipient status transition.
type RecipientEvent struct {
	Status           RecipientStatus
	IncludeDocuments bool
}

// Payload returns the wire representation of the event registration.
func (e RecipientEvent) Payload() map[string]any {
	return map[string]any{
		"recipientEventStatusCode": string(e.Status),
		"includeDocuments":         e.IncludeDocuments,
	}
}

// DefaultEnvelopeEvents and DefaultRecipientEvents are the notification
// registrations used when the caller does not pick their own. Every
// non-draft envelope status is included; for recipients, Signed is left
// out because Completed supersedes it.
var (
	DefaultEnvelopeEvents  []EnvelopeEvent
	DefaultRecipientEvents []RecipientEvent
)

func init() {
	for _, status := range EnvelopeStatuses {
		if status == EnvelopeStatusCreated || status == EnvelopeStatusDraft {
			continue
		}
		DefaultEnvelopeEvents = append(DefaultEnvelopeEvents, EnvelopeEvent{Status: status})
	}
	for _, status := range RecipientStatuses {
		if status == RecipientStatusSigned {
			continue
		}
		DefaultRecipientEvents = append(DefaultRecipientEvents, RecipientEvent{Status: status})
	}
}
