package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// EventNotification configures the Connect callbacks DocuSign posts to a
// target URL as the envelope progresses.
type EventNotification struct {
	URL                               string
	LoggingEnabled                    bool
	RequireAcknowledgement            bool
	UseSoapInterface                  bool
	SoapNameSpace                     string
	IncludeCertificateWithSoap        bool
	SignMessageWithX509Cert           bool
	IncludeDocuments                  bool
	IncludeTimeZone                   bool
	IncludeSenderAccountAsCustomField bool
	EnvelopeEvents                    []EnvelopeEvent
	RecipientEvents                   []RecipientEvent
}

// NewEventNotification returns a notification configuration for the given
// callback URL, registered for the default envelope and recipient events.
func NewEventNotification(url string) *EventNotification {
	return &EventNotification{
		URL:                               url,
		LoggingEnabled:                    true,
		RequireAcknowledgement:            true,
		IncludeTimeZone:                   true,
		IncludeSenderAccountAsCustomField: true,
		EnvelopeEvents:                    DefaultEnvelopeEvents,
		RecipientEvents:                   DefaultRecipientEvents,
	}
}

// Payload returns the wire representation of the notification settings.
// Every field serializes; DocuSign treats these as a complete settings
// block, not a patch.
func (n *EventNotification) Payload() map[string]any {
	envelopeEvents := make([]map[string]any, 0, len(n.EnvelopeEvents))
	for _, event := range n.EnvelopeEvents {
		envelopeEvents = append(envelopeEvents, event.Payload())
	}
	recipientEvents := make([]map[string]any, 0, len(n.RecipientEvents))
	for _, event := range n.RecipientEvents {
		recipientEvents = append(recipientEvents, event.Payload())
	}
	return map[string]any{
		"url":                               n.URL,
		"loggingEnabled":                    n.LoggingEnabled,
		"requireAcknowledgement":            n.RequireAcknowledgement,
		"useSoapInterface":                  n.UseSoapInterface,
		"soapNameSpace":                     n.SoapNameSpace,
		"includeCertificateWithSoap":        n.IncludeCertificateWithSoap,
		"signMessageWithX509Cert":           n.SignMessageWithX509Cert,
		"includeDocuments":                  n.IncludeDocuments,
		"includeTimeZone":                   n.IncludeTimeZone,
		"includeSenderAccountAsCustomField": n.IncludeSenderAccountAsCustomField,
		"envelopeEvents":                    envelopeEvents,
		"recipientEvents":                   recipientEvents,
	}
}

// Validate checks the callback target is usable.
func (n *EventNotification) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.URL, validation.Required, is.URL),
	)
}
