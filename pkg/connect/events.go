package connect

import (
	"sort"
	"time"

	"github.com/peopledoc/go-docusign/pkg/models"
)

// EventObject tags which kind of object an event belongs to in a merged
// timeline.
type EventObject string

const (
	EventObjectEnvelope  EventObject = "envelope"
	EventObjectRecipient EventObject = "recipient"
)

// Event is one status transition reconstructed from the callback
// snapshot. Recipient carries the recipient's clientUserId and is kept
// alongside ClientUserID for backward compatibility; it is nil for
// envelope events.
type Event struct {
	Time         time.Time   `json:"datetime"`
	Object       EventObject `json:"object,omitempty"`
	Status       string      `json:"status"`
	Recipient    *string     `json:"recipient"`
	RecipientID  string      `json:"recipientId,omitempty"`
	ClientUserID string      `json:"clientUserId,omitempty"`
}

// EnvelopeEvents returns the envelope's status transitions to date,
// sorted ascending by time. Statuses are probed in canonical enumeration
// order but the output order is chronological.
func (p *Parser) EnvelopeEvents() ([]Event, error) {
	var events []Event
	for _, status := range models.EnvelopeStatuses {
		t, ok, err := p.EnvelopeStatusTime(status)
		if err != nil {
			return nil, err
		}
		if ok {
			events = append(events, Event{Time: t, Status: string(status)})
		}
	}
	sortEvents(events)
	return events, nil
}

// RecipientEvents returns every recipient's status transitions to date,
// sorted ascending by time. Only nodes carrying both a ClientUserId and
// a RecipientId count as recipients.
func (p *Parser) RecipientEvents() ([]Event, error) {
	var events []Event
	for _, node := range p.recipientNodes() {
		clientUserID := p.childText(node, "ClientUserId")
		recipientID := p.childText(node, "RecipientId")
		if clientUserID == "" || recipientID == "" {
			continue
		}
		for _, status := range models.RecipientStatuses {
			elem := node.SelectElement(recipientStatusElement(status))
			if elem == nil {
				continue
			}
			t, err := p.Time(elem.Text())
			if err != nil {
				return nil, err
			}
			id := clientUserID
			events = append(events, Event{
				Time:         t,
				Status:       string(status),
				Recipient:    &id,
				RecipientID:  recipientID,
				ClientUserID: clientUserID,
			})
		}
	}
	sortEvents(events)
	return events, nil
}

// Events returns the envelope and recipient timelines merged into one
// chronological sequence, each event tagged with its object kind.
func (p *Parser) Events() ([]Event, error) {
	envelopeEvents, err := p.EnvelopeEvents()
	if err != nil {
		return nil, err
	}
	recipientEvents, err := p.RecipientEvents()
	if err != nil {
		return nil, err
	}
	merged := make([]Event, 0, len(envelopeEvents)+len(recipientEvents))
	for _, event := range envelopeEvents {
		event.Object = EventObjectEnvelope
		merged = append(merged, event)
	}
	for _, event := range recipientEvents {
		event.Object = EventObjectRecipient
		merged = append(merged, event)
	}
	sortEvents(merged)
	return merged, nil
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
}
