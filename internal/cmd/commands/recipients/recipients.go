// Package recipients implements the subcommand printing the recipient
// snapshot of a Connect notification document.
package recipients

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/peopledoc/go-docusign/internal/cmd/base"
	"github.com/peopledoc/go-docusign/pkg/connect"
	"github.com/peopledoc/go-docusign/pkg/models"
)

type Command struct {
	*base.Command

	flagFile string
}

func (c *Command) Synopsis() string {
	return "Print the recipient snapshot of a Connect notification"
}

func (c *Command) Help() string {
	return `Usage: docusign recipients -file <notification.xml>

  This command parses a DocuSign Connect notification document and prints
  each recipient's routing order, current status, and status timestamps,
  in routing order.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("recipients", flag.ExitOnError))

	f.StringVar(
		&c.flagFile, "file", "", "(Required) Path to the Connect notification XML file",
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

	snapshots, err := parser.Recipients()
	if err != nil {
		ui.Error(fmt.Sprintf("error extracting recipients: %v", err))
		return 1
	}

	for _, snapshot := range snapshots {
		ui.Output(fmt.Sprintf("recipient %s (routing order %d, status %s)",
			snapshot.ClientUserID, snapshot.RoutingOrder, snapshot.Fields["Status"]))

		statuses := make([]string, 0, len(snapshot.StatusTimes))
		for status := range snapshot.StatusTimes {
			statuses = append(statuses, string(status))
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			t := snapshot.StatusTimes[models.RecipientStatus(status)]
			ui.Output(fmt.Sprintf("  %s: %s", status, t.Format("2006-01-02 15:04:05 -07:00")))
		}
	}

	return 0
}
