// Package events implements the subcommand printing the chronological
// event timeline of a Connect notification document.
package events

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/iancoleman/strcase"

	"github.com/peopledoc/go-docusign/internal/cmd/base"
	"github.com/peopledoc/go-docusign/pkg/connect"
)

type Command struct {
	*base.Command

	flagFile   string
	flagFormat string
}

func (c *Command) Synopsis() string {
	return "Print the event timeline of a Connect notification"
}

func (c *Command) Help() string {
	return `Usage: docusign events -file <notification.xml>

  This command parses a DocuSign Connect notification document and prints
  the merged envelope and recipient event timeline in chronological
  order.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("events", flag.ExitOnError))

	f.StringVar(
		&c.flagFile, "file", "", "(Required) Path to the Connect notification XML file",
	)
	f.StringVar(
		&c.flagFormat, "format", "text", "Output format: text or json.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagFile == "" {
		ui.Error("file flag is required")
		return 1
	}

	source, err := os.ReadFile(c.flagFile)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading notification file: %v", err))
		return 1
	}

	parser, err := connect.NewParser(source)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing notification: %v", err))
		return 1
	}

	timeline, err := parser.Events()
	if err != nil {
		ui.Error(fmt.Sprintf("error extracting events: %v", err))
		return 1
	}

	switch c.flagFormat {
	case "json":
		encoded, err := json.MarshalIndent(timeline, "", "  ")
		if err != nil {
			ui.Error(fmt.Sprintf("error encoding events: %v", err))
			return 1
		}
		ui.Output(string(encoded))
	case "text":
		ui.Output(fmt.Sprintf("envelope %s (%s, offset %+d)",
			parser.EnvelopeID(), parser.EnvelopeStatus(), parser.TimezoneOffset()))
		for _, event := range timeline {
			label := strcase.ToSnake(event.Status)
			if event.Object == connect.EventObjectRecipient {
				ui.Output(fmt.Sprintf("%s  recipient %s  %s",
					event.Time.Format("2006-01-02 15:04:05 -07:00"),
					event.ClientUserID, label))
				continue
			}
			ui.Output(fmt.Sprintf("%s  envelope  %s",
				event.Time.Format("2006-01-02 15:04:05 -07:00"), label))
		}
	default:
		ui.Error(fmt.Sprintf("unknown format %q", c.flagFormat))
		return 1
	}

	return 0
}
