// Package connect parses DocuSign Connect notification callbacks.
//
// A Connect callback is not a single event: DocuSign posts one XML
// document describing the cumulative status of one envelope at a point
// in time. The parser extracts envelope-level and recipient-level status
// timestamps, corrects them for the timezone the document declares, and
// reconstructs a single chronological event timeline.
package connect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"

	"github.com/peopledoc/go-docusign/pkg/models"
)

// Parser navigates one Connect notification document. Construction fails
// if the document is missing the fields without which no timestamp or
// status can be interpreted: the timezone offset and the envelope status.
type Parser struct {
	root     *etree.Element // DocuSignEnvelopeInformation
	envelope *etree.Element // EnvelopeStatus
	status   models.EnvelopeStatus
	offset   int
	location *time.Location
}

// NewParser parses a Connect notification XML document.
func NewParser(source []byte) (*Parser, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(source); err != nil {
		return nil, fmt.Errorf("parsing notification XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("notification XML has no root element")
	}

	p := &Parser{root: root}

	offsetElem := root.SelectElement("TimeZoneOffset")
	if offsetElem == nil {
		return nil, fmt.Errorf("notification is missing TimeZoneOffset")
	}
	offset, err := strconv.Atoi(strings.TrimSpace(offsetElem.Text()))
	if err != nil {
		return nil, fmt.Errorf("notification TimeZoneOffset %q is not an integer: %w",
			offsetElem.Text(), err)
	}
	p.offset = offset

	zone := "DocuSign"
	if tz := root.SelectElement("TimeZone"); tz != nil && strings.TrimSpace(tz.Text()) != "" {
		zone = strings.TrimSpace(tz.Text())
	}
	p.location = time.FixedZone(zone, offset*3600)

	p.envelope = root.SelectElement("EnvelopeStatus")
	if p.envelope == nil {
		return nil, fmt.Errorf("notification is missing EnvelopeStatus")
	}
	statusElem := p.envelope.SelectElement("Status")
	if statusElem == nil || strings.TrimSpace(statusElem.Text()) == "" {
		return nil, fmt.Errorf("notification is missing envelope Status")
	}
	status, err := models.ParseEnvelopeStatus(strings.TrimSpace(statusElem.Text()))
	if err != nil {
		return nil, fmt.Errorf("notification envelope status: %w", err)
	}
	p.status = status

	return p, nil
}

// TimezoneOffset returns the signed hour offset the document declares.
func (p *Parser) TimezoneOffset() int { return p.offset }

// Timezone returns the timezone name the document declares.
func (p *Parser) Timezone() string {
	if tz := p.root.SelectElement("TimeZone"); tz != nil {
		return strings.TrimSpace(tz.Text())
	}
	return ""
}

// EnvelopeStatus returns the envelope's current top-level status.
func (p *Parser) EnvelopeStatus() models.EnvelopeStatus { return p.status }

// EnvelopeID returns the envelope's id, or an empty string.
func (p *Parser) EnvelopeID() string {
	return p.childText(p.envelope, "EnvelopeID")
}

// Time converts a local timestamp string from the document into an
// offset-aware instant. Fractional seconds are optional and of any
// length. Every timestamp in the document goes through this single
// conversion so offset handling stays consistent.
func (p *Parser) Time(raw string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(raw), p.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", raw, err)
	}
	return t, nil
}

// TimeGenerated returns the instant the callback was generated.
func (p *Parser) TimeGenerated() (time.Time, error) {
	raw := p.childText(p.envelope, "TimeGenerated")
	if raw == "" {
		return time.Time{}, fmt.Errorf("notification is missing TimeGenerated")
	}
	return p.Time(raw)
}

// EnvelopeStatusTime returns the instant the envelope reached the given
// status, or ok=false if that status has not occurred in this snapshot.
// The lookup is restricted to direct children of the envelope status node
// so a same-named timestamp inside a recipient never matches.
func (p *Parser) EnvelopeStatusTime(status models.EnvelopeStatus) (time.Time, bool, error) {
	elem := p.envelope.SelectElement(envelopeStatusElement(status))
	if elem == nil {
		return time.Time{}, false, nil
	}
	t, err := p.Time(elem.Text())
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// RecipientStatusTime returns the instant the recipient identified by
// clientUserID reached the given status, or ok=false when the recipient
// or the status timestamp is absent. A Completed query reads the Signed
// node: DocuSign records signer completion under that name rather than
// the generic terminal label.
func (p *Parser) RecipientStatusTime(clientUserID string, status models.RecipientStatus) (time.Time, bool, error) {
	for _, node := range p.recipientNodes() {
		if p.childText(node, "ClientUserId") != clientUserID {
			continue
		}
		elem := node.SelectElement(recipientStatusElement(status))
		if elem == nil {
			return time.Time{}, false, nil
		}
		t, err := p.Time(elem.Text())
		if err != nil {
			return time.Time{}, false, err
		}
		return t, true, nil
	}
	return time.Time{}, false, nil
}

// recipientNodes returns the per-recipient status nodes in document order.
func (p *Parser) recipientNodes() []*etree.Element {
	statuses := p.envelope.SelectElement("RecipientStatuses")
	if statuses == nil {
		return nil
	}
	return statuses.ChildElements()
}

// childText returns the trimmed text of a direct child element, or "".
func (p *Parser) childText(parent *etree.Element, tag string) string {
	if parent == nil {
		return ""
	}
	elem := parent.SelectElement(tag)
	if elem == nil {
		return ""
	}
	return strings.TrimSpace(elem.Text())
}

// envelopeStatusElement maps an envelope status to its timestamp element
// name. Element names are case-sensitive and title-cased in the document.
func envelopeStatusElement(status models.EnvelopeStatus) string {
	return string(status)
}

// recipientStatusElement maps a recipient status to its timestamp element
// name, folding Completed onto the Signed node.
func recipientStatusElement(status models.RecipientStatus) string {
	if status == models.RecipientStatusCompleted {
		return string(models.RecipientStatusSigned)
	}
	return string(status)
}
