// Package dstest carries helpers for testing code built on the DocuSign
// client: a client factory reading test credentials from the
// environment, correlation key generation, and Connect notification XML
// fixtures.
package dstest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/peopledoc/go-docusign/pkg/client"
)

// NewEnvClient builds a client from DOCUSIGN_TEST_* environment
// variables: DOCUSIGN_TEST_ROOT_URL (defaults to the demo environment),
// DOCUSIGN_TEST_USERNAME, DOCUSIGN_TEST_PASSWORD and
// DOCUSIGN_TEST_INTEGRATOR_KEY.
func NewEnvClient() (*client.Client, error) {
	for _, name := range []string{
		"DOCUSIGN_TEST_USERNAME",
		"DOCUSIGN_TEST_PASSWORD",
		"DOCUSIGN_TEST_INTEGRATOR_KEY",
	} {
		if os.Getenv(name) == "" {
			return nil, fmt.Errorf("environment variable %s is not set", name)
		}
	}
	rootURL := os.Getenv("DOCUSIGN_TEST_ROOT_URL")
	if rootURL == "" {
		rootURL = client.DefaultRootURL
	}
	return client.New(client.Config{
		RootURL:       rootURL,
		Username:      os.Getenv("DOCUSIGN_TEST_USERNAME"),
		Password:      os.Getenv("DOCUSIGN_TEST_PASSWORD"),
		IntegratorKey: os.Getenv("DOCUSIGN_TEST_INTEGRATOR_KEY"),
	})
}

// NewClientUserID returns a fresh correlation key for an embedded signer.
func NewClientUserID() string { return uuid.NewString() }

// CallbackRecipient describes one recipient node in a generated Connect
// notification fixture.
type CallbackRecipient struct {
	ClientUserID string
	RecipientID  string
	RoutingOrder int
	Status       string

	// StatusTimes maps status element names (Sent, Delivered, Signed,
	// ...) to local timestamp strings.
	StatusTimes map[string]string
}

// CallbackDocument describes a Connect notification fixture.
type CallbackDocument struct {
	TimeZone       string
	TimeZoneOffset int
	EnvelopeID     string
	Status         string
	TimeGenerated  string

	// StatusTimes maps envelope status element names to local timestamp
	// strings.
	StatusTimes map[string]string

	Recipients []CallbackRecipient
}

// XML renders the fixture as a Connect notification document.
func (d CallbackDocument) XML() string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("DocuSignEnvelopeInformation")

	envelope := root.CreateElement("EnvelopeStatus")
	recipients := envelope.CreateElement("RecipientStatuses")
	for _, recipient := range d.Recipients {
		node := recipients.CreateElement("RecipientStatus")
		for element, value := range recipient.StatusTimes {
			node.CreateElement(element).SetText(value)
		}
		if recipient.Status != "" {
			node.CreateElement("Status").SetText(recipient.Status)
		}
		if recipient.RoutingOrder > 0 {
			node.CreateElement("RoutingOrder").SetText(strconv.Itoa(recipient.RoutingOrder))
		}
		if recipient.ClientUserID != "" {
			node.CreateElement("ClientUserId").SetText(recipient.ClientUserID)
		}
		if recipient.RecipientID != "" {
			node.CreateElement("RecipientId").SetText(recipient.RecipientID)
		}
	}
	for element, value := range d.StatusTimes {
		envelope.CreateElement(element).SetText(value)
	}
	if d.EnvelopeID != "" {
		envelope.CreateElement("EnvelopeID").SetText(d.EnvelopeID)
	}
	if d.Status != "" {
		envelope.CreateElement("Status").SetText(d.Status)
	}
	if d.TimeGenerated != "" {
		envelope.CreateElement("TimeGenerated").SetText(d.TimeGenerated)
	}

	timezone := d.TimeZone
	if timezone == "" {
		timezone = "Pacific Standard Time"
	}
	root.CreateElement("TimeZone").SetText(timezone)
	root.CreateElement("TimeZoneOffset").SetText(strconv.Itoa(d.TimeZoneOffset))

	doc.Indent(2)
	rendered, err := doc.WriteToString()
	if err != nil {
		// An in-memory write cannot fail in practice.
		panic(err)
	}
	return rendered
}
